package yoga

import (
	"context"
)

var principalCtxKey = &contextKey{"principal"}
var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithPrincipal sets the authenticated User in the given context
func WithPrincipal(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, principalCtxKey, user)
}

// PrincipalFromContext finds the authenticated user in the context
func PrincipalFromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(principalCtxKey).(*User)
	if !ok || raw == nil {
		return nil, false
	}
	return raw, true
}

// WithClaimsContext sets the token claims in the given context
func WithClaimsContext(ctx context.Context, claims *JWTClaims) context.Context {
	return context.WithValue(ctx, claimsCtxKey, claims)
}

// ClaimsFromContext extracts the token claims from the context
func ClaimsFromContext(ctx context.Context) (*JWTClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(*JWTClaims)
	if !ok || raw == nil {
		return nil, false
	}
	return raw, true
}
