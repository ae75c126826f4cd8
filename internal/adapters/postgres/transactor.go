package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notepad/internal/ports/repositories"
	"notepad/pkg/logger"
)

const (
	errBeginTx    = "failed to begin transaction"
	errCommitTx   = "failed to commit transaction"
	errRollbackTx = "failed to rollback transaction"
)

// Transactor открывает транзакции уровня REPEATABLE READ.
type Transactor struct {
	pool PgxPoolInterface
	opts pgx.TxOptions
}

// NewTransactor создает Transactor поверх пула.
func NewTransactor(pool PgxPoolInterface) repositories.Transactor {
	return &Transactor{
		pool: pool,
		opts: pgx.TxOptions{IsoLevel: pgx.RepeatableRead},
	}
}

// WithinTx выполняет fn в транзакции. Вложенный вызов присоединяется к внешней транзакции.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	log := logger.Log(ctx).With(zap.String("method", "Transactor.WithinTx"))

	tx, err := t.pool.BeginTx(ctx, t.opts)
	if err != nil {
		log.Error(ctx, errBeginTx, zap.Error(err))
		return fmt.Errorf("%s: %w", errBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(contextWithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Error(ctx, errRollbackTx, zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, errCommitTx, zap.Error(err))
		return fmt.Errorf("%s: %w", errCommitTx, err)
	}

	return nil
}
