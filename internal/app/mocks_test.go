package app_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"notepad/internal/domain/entities"
)

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) Create(ctx context.Context, email, passwordHash string) (int64, error) {
	args := m.Called(ctx, email, passwordHash)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAccountRepository) FindByEmail(ctx context.Context, email string) (*entities.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*entities.Note, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Delete(ctx context.Context, noteID, ownerID int64) error {
	args := m.Called(ctx, noteID, ownerID)
	return args.Error(0)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

// stubTransactor выполняет fn сразу и считает открытые транзакции.
type stubTransactor struct {
	calls int
	err   error
}

func (s *stubTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	return fn(ctx)
}

// memoryAccountRepository хранит учетные записи в памяти с уникальным email.
type memoryAccountRepository struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[string]entities.Account
}

func newMemoryAccountRepository() *memoryAccountRepository {
	return &memoryAccountRepository{accounts: make(map[string]entities.Account)}
}

func (r *memoryAccountRepository) Create(_ context.Context, email, passwordHash string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[email]; ok {
		return 0, entities.ErrEmailTaken
	}
	r.nextID++
	r.accounts[email] = entities.Account{ID: r.nextID, Email: email, PasswordHash: passwordHash}
	return r.nextID, nil
}

func (r *memoryAccountRepository) FindByEmail(_ context.Context, email string) (*entities.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[email]
	if !ok {
		return nil, entities.ErrAccountNotFound
	}
	return &account, nil
}
