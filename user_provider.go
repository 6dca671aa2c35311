package yoga

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// UserProvider resolves the principal behind a bearer token
type UserProvider struct {
	store        PrincipalStore
	tokenService TokenService
	logger       Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store PrincipalStore, tokenService TokenService) *UserProvider {
	return &UserProvider{
		store:        store,
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	u.logger = normalizeLogger(l)
	return u
}

// Resolve validates token and loads the user named by its subject.
// Invalid tokens fail with ErrInvalidToken, a valid token whose user is
// gone fails with ErrPrincipalNotFound.
func (u *UserProvider) Resolve(ctx context.Context, token string) (*User, error) {
	if !u.tokenService.Validate(token) {
		return nil, ErrInvalidToken
	}

	username, err := u.tokenService.ExtractSubject(token)
	if err != nil {
		u.logger.Debug("Resolve could not extract subject", "error", err)
		return nil, ErrInvalidToken
	}

	user, err := u.store.FindByUsername(ctx, username)
	if err != nil {
		if IsRecordNotFound(err) || goerrors.IsNotFound(err) {
			u.logger.Debug("Resolve principal not found", "username", username)
			return nil, ErrPrincipalNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve principal")
	}

	return user, nil
}

// ResolveClaims is like Resolve but also returns the parsed claims
func (u *UserProvider) ResolveClaims(ctx context.Context, token string) (*User, *JWTClaims, error) {
	claims, err := u.tokenService.Parse(token)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}

	user, err := u.Resolve(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	return user, claims, nil
}
