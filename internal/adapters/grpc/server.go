// Package grpc предоставляет gRPC сервер проверки здоровья сервиса.
package grpc

import (
	"context"
	"fmt"
	"net"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"notepad/internal/config"
	"notepad/pkg/logger"
)

// Константы для логирования.
const (
	LogServerStarting = "Starting gRPC server"
	LogServerStarted  = "gRPC server started"
	LogServerStopping = "Stopping gRPC server"
	LogServerStopped  = "gRPC server stopped"
	ErrServerStart    = "failed to start gRPC server"
)

// Server представляет gRPC сервер.
type Server struct {
	cfg    *config.GRPCConfig
	server *grpc.Server
	health *health.Server

	mu       sync.Mutex
	listener net.Listener
}

// New создает новый экземпляр gRPC сервера с зарегистрированным сервисом health.
func New(cfg *config.GRPCConfig) *Server {
	s := &Server{
		cfg:    cfg,
		server: grpc.NewServer(),
		health: health.NewServer(),
	}
	healthpb.RegisterHealthServer(s.server, s.health)
	return s
}

// Health возвращает сервер статусов health.
func (s *Server) Health() *health.Server {
	return s.health
}

// Start запускает gRPC сервер.
func (s *Server) Start(ctx context.Context) error {
	log := logger.Log(ctx)
	address := s.cfg.GetAddress()

	log.Info(ctx, LogServerStarting, zap.String("address", address))

	listener, err := net.Listen("tcp", address)
	if err != nil {
		log.Error(ctx, ErrServerStart, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrServerStart, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	reflection.Register(s.server)

	go func() {
		if err := s.server.Serve(listener); err != nil {
			log.Error(ctx, ErrServerStart, zap.Error(err))
		}
	}()

	log.Info(ctx, LogServerStarted, zap.String("address", listener.Addr().String()))
	return nil
}

// Addr возвращает фактический адрес после Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop останавливает gRPC сервер.
func (s *Server) Stop(ctx context.Context) {
	log := logger.Log(ctx)

	log.Info(ctx, LogServerStopping)
	s.health.Shutdown()
	s.server.GracefulStop()
	log.Info(ctx, LogServerStopped)
}
