package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapters "notepad/internal/adapters/services"
	"notepad/internal/domain/services"
)

//nolint:gosec
const (
	testPassword  = "validPassword123"
	wrongPassword = "wrongPassword123"
	minCost       = 4
)

func TestHashProducesDistinctSaltedHashes(t *testing.T) {
	service := adapters.NewBcrypt(minCost)
	ctx := context.Background()

	first, err := service.Hash(ctx, testPassword)
	require.NoError(t, err)
	second, err := service.Hash(ctx, testPassword)
	require.NoError(t, err)

	assert.NotEqual(t, testPassword, first, "hash must not equal plaintext")
	assert.NotEqual(t, first, second, "each hash should use a fresh salt")
	assert.True(t, strings.HasPrefix(first, "$2a$04$"), "hash should carry configured cost")
}

func TestHashRejectsPasswordOverLimit(t *testing.T) {
	service := adapters.NewBcrypt(minCost)

	_, err := service.Hash(context.Background(), strings.Repeat("x", services.MaxPasswordBytes+1))
	assert.ErrorIs(t, err, services.ErrPasswordTooLong)

	_, err = service.Hash(context.Background(), strings.Repeat("x", services.MaxPasswordBytes))
	assert.NoError(t, err, "exactly 72 bytes is allowed")
}

func TestNewBcryptFallsBackToDefaultCost(t *testing.T) {
	for _, cost := range []int{0, 1, 99} {
		hash, err := adapters.NewBcrypt(cost).Hash(context.Background(), testPassword)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$2a$10$"), "cost %d should fall back to default", cost)
	}
}

func TestVerify(t *testing.T) {
	service := adapters.NewBcrypt(minCost)
	ctx := context.Background()

	hash, err := service.Hash(ctx, testPassword)
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		ok, err := service.Verify(ctx, testPassword, hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong password is false without error", func(t *testing.T) {
		ok, err := service.Verify(ctx, wrongPassword, hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("malformed hash", func(t *testing.T) {
		for _, bad := range []string{"", "short", "xx" + strings.Repeat("a", 60)} {
			ok, err := service.Verify(ctx, testPassword, bad)
			assert.False(t, ok)
			assert.ErrorIs(t, err, services.ErrMalformedHash, "hash %q", bad)
		}
	})
}

func TestServiceFactory(t *testing.T) {
	factory := adapters.NewServiceFactory(minCost)
	require.NotNil(t, factory.PasswordService())

	hash, err := factory.PasswordService().Hash(context.Background(), testPassword)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$04$"))
}
