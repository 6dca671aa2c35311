package yoga

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims carries sub, iat, exp and jti
type JWTClaims struct {
	jwt.RegisteredClaims
}

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// TokenID returns the jti claim
func (c *JWTClaims) TokenID() string {
	return c.RegisteredClaims.ID
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	return millis(c.RegisteredClaims.ExpiresAt)
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	return millis(c.RegisteredClaims.IssuedAt)
}

// GetExpirationTime is used by the jwt validator. Fractional dates come
// back from JSON as floats, so they are rounded to the millisecond they
// were issued with.
func (c *JWTClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	if c.RegisteredClaims.ExpiresAt == nil {
		return nil, nil
	}
	return &jwt.NumericDate{Time: millis(c.RegisteredClaims.ExpiresAt)}, nil
}

// GetIssuedAt is used by the jwt validator
func (c *JWTClaims) GetIssuedAt() (*jwt.NumericDate, error) {
	if c.RegisteredClaims.IssuedAt == nil {
		return nil, nil
	}
	return &jwt.NumericDate{Time: millis(c.RegisteredClaims.IssuedAt)}, nil
}

func millis(d *jwt.NumericDate) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time.Round(time.Millisecond)
}
