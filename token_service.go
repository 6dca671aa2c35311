package yoga

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

func init() {
	// token lifetimes are configured in milliseconds, whole second dates
	// would let a token expire before now+ttl
	jwt.TimePrecision = time.Microsecond
}

// TokenServiceImpl implements the TokenService interface with HS512
type TokenServiceImpl struct {
	signingKey      []byte
	tokenExpiration time.Duration
	clock           func() time.Time
	logger          Logger
}

// TokenOption configures a TokenServiceImpl
type TokenOption func(*TokenServiceImpl)

// WithTokenClock sets the clock used to check expiration
func WithTokenClock(clock func() time.Time) TokenOption {
	return func(ts *TokenServiceImpl) {
		if clock != nil {
			ts.clock = clock
		}
	}
}

// WithTokenLogger sets the logger
func WithTokenLogger(logger Logger) TokenOption {
	return func(ts *TokenServiceImpl) {
		ts.logger = normalizeLogger(logger)
	}
}

// NewTokenService creates a new TokenService instance
func NewTokenService(signingKey []byte, tokenExpiration time.Duration, opts ...TokenOption) *TokenServiceImpl {
	ts := &TokenServiceImpl{
		signingKey:      signingKey,
		tokenExpiration: tokenExpiration,
		clock:           time.Now,
		logger:          defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ts)
		}
	}
	return ts
}

// NewTokenServiceFromConfig builds the service from the signing key and
// expiration found in cfg
func NewTokenServiceFromConfig(cfg Config, opts ...TokenOption) *TokenServiceImpl {
	return NewTokenService([]byte(cfg.GetSigningKey()), cfg.GetTokenExpiration(), opts...)
}

// Issue signs a token for subject valid from now until now+expiration.
// Both dates are kept at millisecond precision.
func (ts *TokenServiceImpl) Issue(subject string, now time.Time) (string, error) {
	now = now.Truncate(time.Millisecond)
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.tokenExpiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign JWT")
	}

	return signed, nil
}

// Validate reports whether token is well formed, HS512 signed with our key
// and not expired. It never panics.
func (ts *TokenServiceImpl) Validate(token string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ts.logger.Error("TokenService validate recovered", "panic", r)
			ok = false
		}
	}()

	if _, err := ts.Parse(token); err != nil {
		ts.logger.Debug("TokenService validate rejected token", "kind", failureKind(err))
		return false
	}
	return true
}

// ExtractSubject returns the sub claim of a valid token
func (ts *TokenServiceImpl) ExtractSubject(token string) (string, error) {
	claims, err := ts.Parse(token)
	if err != nil {
		return "", err
	}
	return claims.Subject(), nil
}

// Parse validates token and returns its claims
func (ts *TokenServiceImpl) Parse(tokenString string) (*JWTClaims, error) {
	if tokenString == "" {
		return nil, ErrTokenMalformed
	}

	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return ts.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ts.clock),
	)

	if err != nil {
		return nil, classifyTokenError(token, err)
	}

	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

func classifyTokenError(token *jwt.Token, err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case token != nil && token.Method != nil && token.Method.Alg() != jwt.SigningMethodHS512.Alg():
		return ErrTokenAlgorithm
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenAlgorithm
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		return ErrTokenMalformed
	}
}

func failureKind(err error) string {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.TextCode
	}
	return "unknown"
}
