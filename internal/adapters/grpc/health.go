package grpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"notepad/pkg/logger"
)

// ServiceName имя сервиса в ответах health.
const ServiceName = "notepad"

// DefaultHealthInterval используется, если интервал не положительный.
const DefaultHealthInterval = 10 * time.Second

// Pinger проверяет доступность зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthMonitor переводит результат Ping в статус health.
type HealthMonitor struct {
	health   *health.Server
	pinger   Pinger
	interval time.Duration
	timeout  time.Duration
}

// NewHealthMonitor создает монитор. Таймаут одной проверки равен интервалу.
func NewHealthMonitor(hs *health.Server, pinger Pinger, interval time.Duration) *HealthMonitor {
	if interval <= 0 {
		interval = DefaultHealthInterval
	}
	return &HealthMonitor{
		health:   hs,
		pinger:   pinger,
		interval: interval,
		timeout:  interval,
	}
}

// Check выполняет одну проверку и обновляет статус.
func (m *HealthMonitor) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	pingCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := m.pinger.Ping(pingCtx); err != nil {
		logger.Log(ctx).Warn(ctx, "database ping failed", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	m.health.SetServingStatus("", status)
	m.health.SetServingStatus(ServiceName, status)
	return status
}

// Run проверяет зависимость с интервалом до отмены ctx.
func (m *HealthMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
