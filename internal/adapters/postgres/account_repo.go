package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notepad/internal/domain/entities"
	"notepad/internal/ports/repositories"
	"notepad/pkg/logger"
)

const (
	queryCreateAccount = `
        INSERT INTO accounts (email, password_hash)
        VALUES ($1, $2)
        RETURNING id
    `
	queryFindAccountByEmail = `
        SELECT id, email, password_hash
        FROM accounts
        WHERE email = $1
    `
)

// AccountRepository реализует интерфейс repositories.AccountRepository для работы с Postgres.
type AccountRepository struct {
	pool PgxPoolInterface
}

// NewAccountRepository создает новый экземпляр репозитория учетных записей.
func NewAccountRepository(pool PgxPoolInterface) repositories.AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create вставляет учетную запись. Конкурентная вставка того же email
// ждет фиксации первой и получает 23505 даже под REPEATABLE READ.
func (r *AccountRepository) Create(ctx context.Context, email, passwordHash string) (int64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "account"), zap.String("method", "Create"))

	var id int64
	err := conn(ctx, r.pool).QueryRow(ctx, queryCreateAccount, email, passwordHash).Scan(&id)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			log.Debug(ctx, "email already registered")
			return 0, entities.ErrEmailTaken
		}
		log.Error(ctx, "error creating account", zap.Error(err))
		return 0, fmt.Errorf("error creating account: %w", err)
	}

	log.Debug(ctx, "account created", zap.Int64("account_id", id))
	return id, nil
}

// FindByEmail находит учетную запись по email.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("repository", "account"), zap.String("method", "FindByEmail"))

	var account entities.Account
	err := conn(ctx, r.pool).QueryRow(ctx, queryFindAccountByEmail, email).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "account not found")
			return nil, entities.ErrAccountNotFound
		}
		log.Error(ctx, "error finding account by email", zap.Error(err))
		return nil, fmt.Errorf("error querying account by email: %w", err)
	}

	return &account, nil
}
