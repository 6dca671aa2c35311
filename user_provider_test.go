package yoga_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-yoga"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserProvider_Resolve(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	tokens := newTestTokenService(now, time.Hour)
	user := &yoga.User{ID: 3, Email: "yoga@studio.com"}

	token, err := tokens.Issue(user.Email, now)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		store := new(MockPrincipalStore)
		store.On("FindByUsername", mock.Anything, "yoga@studio.com").Return(user, nil)

		provider := yoga.NewUserProvider(store, tokens).WithLogger(yoga.NopLogger{})
		got, err := provider.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("invalid token", func(t *testing.T) {
		store := new(MockPrincipalStore)
		provider := yoga.NewUserProvider(store, tokens).WithLogger(yoga.NopLogger{})

		_, err := provider.Resolve(ctx, token+"x")
		assert.ErrorIs(t, err, yoga.ErrInvalidToken)
		store.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
	})

	t.Run("expired token", func(t *testing.T) {
		store := new(MockPrincipalStore)
		later := newTestTokenService(now.Add(2*time.Hour), time.Hour)
		provider := yoga.NewUserProvider(store, later).WithLogger(yoga.NopLogger{})

		_, err := provider.Resolve(ctx, token)
		assert.ErrorIs(t, err, yoga.ErrInvalidToken)
	})

	t.Run("user gone", func(t *testing.T) {
		store := new(MockPrincipalStore)
		store.On("FindByUsername", mock.Anything, "yoga@studio.com").Return(nil, yoga.ErrRecordNotFound)

		provider := yoga.NewUserProvider(store, tokens).WithLogger(yoga.NopLogger{})
		_, err := provider.Resolve(ctx, token)
		assert.ErrorIs(t, err, yoga.ErrPrincipalNotFound)
		assert.True(t, yoga.IsUnauthorized(err))
	})

	t.Run("store failure", func(t *testing.T) {
		store := new(MockPrincipalStore)
		store.On("FindByUsername", mock.Anything, "yoga@studio.com").Return(nil, errors.New("db down"))

		provider := yoga.NewUserProvider(store, tokens).WithLogger(yoga.NopLogger{})
		_, err := provider.Resolve(ctx, token)

		var richErr *goerrors.Error
		require.True(t, goerrors.As(err, &richErr))
		assert.Equal(t, goerrors.CategoryInternal, richErr.Category)
	})

	t.Run("subject extraction failure", func(t *testing.T) {
		store := new(MockPrincipalStore)
		mockTokens := new(MockTokenService)
		mockTokens.On("Validate", "tok").Return(true)
		mockTokens.On("ExtractSubject", "tok").Return("", yoga.ErrTokenMalformed)

		provider := yoga.NewUserProvider(store, mockTokens).WithLogger(yoga.NopLogger{})
		_, err := provider.Resolve(ctx, "tok")
		assert.ErrorIs(t, err, yoga.ErrInvalidToken)
		mockTokens.AssertExpectations(t)
	})
}

func TestUserProvider_ResolveClaims(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	tokens := newTestTokenService(now, time.Hour)
	user := &yoga.User{ID: 3, Email: "yoga@studio.com"}

	token, err := tokens.Issue(user.Email, now)
	require.NoError(t, err)

	store := new(MockPrincipalStore)
	store.On("FindByUsername", mock.Anything, "yoga@studio.com").Return(user, nil)

	provider := yoga.NewUserProvider(store, tokens).WithLogger(yoga.NopLogger{})
	got, claims, err := provider.ResolveClaims(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user, got)
	assert.Equal(t, "yoga@studio.com", claims.Subject())

	_, _, err = provider.ResolveClaims(ctx, "")
	assert.ErrorIs(t, err, yoga.ErrInvalidToken)
}
