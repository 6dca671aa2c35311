package yoga_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-yoga"
	"github.com/stretchr/testify/assert"
)

func TestPrincipalContext(t *testing.T) {
	_, ok := yoga.PrincipalFromContext(context.Background())
	assert.False(t, ok)

	user := &yoga.User{ID: 1, Email: "yoga@studio.com"}
	ctx := yoga.WithPrincipal(context.Background(), user)

	got, ok := yoga.PrincipalFromContext(ctx)
	assert.True(t, ok)
	assert.Same(t, user, got)

	_, ok = yoga.PrincipalFromContext(yoga.WithPrincipal(context.Background(), nil))
	assert.False(t, ok)
}

func TestClaimsContext(t *testing.T) {
	_, ok := yoga.ClaimsFromContext(context.Background())
	assert.False(t, ok)

	claims := &yoga.JWTClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "yoga@studio.com", ID: "jti"}}
	ctx := yoga.WithClaimsContext(context.Background(), claims)

	got, ok := yoga.ClaimsFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "yoga@studio.com", got.Subject())
	assert.Equal(t, "jti", got.TokenID())
	assert.True(t, got.Expires().IsZero())
	assert.True(t, got.IssuedAt().IsZero())
}
