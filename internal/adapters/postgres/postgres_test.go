package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notepad/internal/adapters/postgres"
	"notepad/internal/domain/entities"
	"notepad/pkg/logger"
)

var noteColumns = []string{"id", "user_id", "title", "content", "modified_at"}

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestAccountRepository_Create(t *testing.T) {
	ctx := testContext(t)

	t.Run("returns generated id", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`^\s*INSERT INTO accounts \(email, password_hash\)\s+VALUES \(\$1, \$2\)\s+RETURNING id\s*$`).
			WithArgs("a@x.io", "hash").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

		id, err := postgres.NewAccountRepository(mock).Create(ctx, "a@x.io", "hash")

		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation means email taken", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO accounts .+").
			WithArgs("a@x.io", "hash").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err := postgres.NewAccountRepository(mock).Create(ctx, "a@x.io", "hash")

		assert.ErrorIs(t, err, entities.ErrEmailTaken)
	})

	t.Run("generic failure is wrapped", func(t *testing.T) {
		mock := newMock(t)
		dbErr := errors.New("connection reset")
		mock.ExpectQuery("INSERT INTO accounts .+").
			WithArgs("a@x.io", "hash").
			WillReturnError(dbErr)

		_, err := postgres.NewAccountRepository(mock).Create(ctx, "a@x.io", "hash")

		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, entities.ErrEmailTaken)
		assert.Contains(t, err.Error(), "error creating account")
	})
}

func TestAccountRepository_FindByEmail(t *testing.T) {
	ctx := testContext(t)

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT id, email, password_hash FROM accounts WHERE email = \\$1").
			WithArgs("a@x.io").
			WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash"}).
				AddRow(int64(3), "a@x.io", "$2a$10$hash"))

		account, err := postgres.NewAccountRepository(mock).FindByEmail(ctx, "a@x.io")

		require.NoError(t, err)
		assert.Equal(t, &entities.Account{ID: 3, Email: "a@x.io", PasswordHash: "$2a$10$hash"}, account)
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT id, email, password_hash FROM accounts .+").
			WithArgs("nobody@x.io").
			WillReturnError(pgx.ErrNoRows)

		account, err := postgres.NewAccountRepository(mock).FindByEmail(ctx, "nobody@x.io")

		assert.Nil(t, account)
		assert.ErrorIs(t, err, entities.ErrAccountNotFound)
	})
}

func TestNoteRepository_ListByOwner(t *testing.T) {
	ctx := testContext(t)

	t.Run("returns rows in query order", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT .+ FROM notes WHERE user_id = \\$1 ORDER BY modified_at DESC, id DESC").
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow(int64(2), int64(1), "second", "b", int64(200)).
				AddRow(int64(1), int64(1), "first", "a", int64(100)))

		notes, err := postgres.NewNoteRepository(mock).ListByOwner(ctx, 1)

		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, int64(2), notes[0].ID)
		assert.Equal(t, "first", notes[1].Title)
		assert.Equal(t, int64(100), notes[1].ModifiedAt)
	})

	t.Run("no notes gives empty slice", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT .+ FROM notes .+").
			WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows(noteColumns))

		notes, err := postgres.NewNoteRepository(mock).ListByOwner(ctx, 5)

		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
	})

	t.Run("query failure", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT .+ FROM notes .+").
			WithArgs(int64(5)).
			WillReturnError(errors.New("boom"))

		notes, err := postgres.NewNoteRepository(mock).ListByOwner(ctx, 5)

		assert.Nil(t, notes)
		assert.Contains(t, err.Error(), "failed to list notes")
	})
}

func TestNoteRepository_Create(t *testing.T) {
	ctx := testContext(t)
	note := &entities.Note{UserID: 1, Title: "t", Content: "c", ModifiedAt: 1000}

	t.Run("returns stored note", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO notes .+ RETURNING id, user_id, title, content, modified_at").
			WithArgs(int64(1), "t", "c", int64(1000)).
			WillReturnRows(pgxmock.NewRows(noteColumns).AddRow(int64(10), int64(1), "t", "c", int64(1000)))

		created, err := postgres.NewNoteRepository(mock).Create(ctx, note)

		require.NoError(t, err)
		assert.Equal(t, &entities.Note{ID: 10, UserID: 1, Title: "t", Content: "c", ModifiedAt: 1000}, created)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("foreign key violation means unknown owner", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO notes .+").
			WithArgs(int64(1), "t", "c", int64(1000)).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		created, err := postgres.NewNoteRepository(mock).Create(ctx, note)

		assert.Nil(t, created)
		assert.ErrorIs(t, err, entities.ErrOwnerNotFound)
	})
}

func TestNoteRepository_Update(t *testing.T) {
	ctx := testContext(t)
	note := &entities.Note{ID: 10, UserID: 1, Title: "new", Content: "body", ModifiedAt: 2000}

	t.Run("owner match updates all fields", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("UPDATE notes SET title = \\$1, content = \\$2, modified_at = \\$3 WHERE id = \\$4 AND user_id = \\$5 RETURNING .+").
			WithArgs("new", "body", int64(2000), int64(10), int64(1)).
			WillReturnRows(pgxmock.NewRows(noteColumns).AddRow(int64(10), int64(1), "new", "body", int64(2000)))

		updated, err := postgres.NewNoteRepository(mock).Update(ctx, note)

		require.NoError(t, err)
		assert.Equal(t, note, updated)
	})

	t.Run("zero rows means not found or not owned", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("UPDATE notes .+").
			WithArgs("new", "body", int64(2000), int64(10), int64(1)).
			WillReturnRows(pgxmock.NewRows(noteColumns))

		updated, err := postgres.NewNoteRepository(mock).Update(ctx, note)

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, entities.ErrNoteNotFoundOrNotOwned)
	})
}

func TestNoteRepository_Delete(t *testing.T) {
	ctx := testContext(t)

	t.Run("deleted", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM notes WHERE id = \\$1 AND user_id = \\$2").
			WithArgs(int64(10), int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, postgres.NewNoteRepository(mock).Delete(ctx, 10, 1))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows means not found or not owned", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM notes .+").
			WithArgs(int64(10), int64(2)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := postgres.NewNoteRepository(mock).Delete(ctx, 10, 2)

		assert.ErrorIs(t, err, entities.ErrNoteNotFoundOrNotOwned)
	})

	t.Run("exec failure", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM notes .+").
			WithArgs(int64(10), int64(1)).
			WillReturnError(errors.New("boom"))

		err := postgres.NewNoteRepository(mock).Delete(ctx, 10, 1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete note")
	})
}

func TestTransactor_WithinTx(t *testing.T) {
	ctx := testContext(t)
	repeatableRead := pgx.TxOptions{IsoLevel: pgx.RepeatableRead}

	t.Run("commits and routes repository calls through tx", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBeginTx(repeatableRead)
		mock.ExpectExec("DELETE FROM notes .+").
			WithArgs(int64(10), int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		factory := postgres.NewRepositoryFactory(mock)
		err := factory.Transactor().WithinTx(ctx, func(ctx context.Context) error {
			return factory.NoteRepository().Delete(ctx, 10, 1)
		})

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBeginTx(repeatableRead)
		mock.ExpectRollback()

		fnErr := errors.New("fn failed")
		err := postgres.NewTransactor(mock).WithinTx(ctx, func(context.Context) error {
			return fnErr
		})

		assert.ErrorIs(t, err, fnErr)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested call joins outer tx", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBeginTx(repeatableRead)
		mock.ExpectCommit()

		tr := postgres.NewTransactor(mock)
		calls := 0
		err := tr.WithinTx(ctx, func(ctx context.Context) error {
			return tr.WithinTx(ctx, func(context.Context) error {
				calls++
				return nil
			})
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBeginTx(repeatableRead).WillReturnError(errors.New("pool exhausted"))

		err := postgres.NewTransactor(mock).WithinTx(ctx, func(context.Context) error {
			t.Fatal("fn must not run")
			return nil
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to begin transaction")
	})

	t.Run("commit failure", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBeginTx(repeatableRead)
		mock.ExpectCommit().WillReturnError(&pgconn.PgError{Code: "40001"})

		err := postgres.NewTransactor(mock).WithinTx(ctx, func(context.Context) error { return nil })

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to commit transaction")
	})
}
