package yoga

import (
	"context"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// TokenType is the scheme returned to clients along with the token
const TokenType = "Bearer"

// LoginResult is the outcome of a successful login
type LoginResult struct {
	Token     string
	Type      string
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Admin     bool
}

// RegisterUserMessage carries the sign up payload
type RegisterUserMessage struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// Auther implements Authenticator on top of a PrincipalStore
type Auther struct {
	store        PrincipalStore
	tokenService TokenService
	hasher       PasswordHasher
	clock        func() time.Time
	logger       Logger
	activitySink ActivitySink
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(store PrincipalStore, tokenService TokenService, hasher PasswordHasher) *Auther {
	if hasher == nil {
		hasher = NewBcryptHasher(DefaultBcryptCost)
	}
	return &Auther{
		store:        store,
		tokenService: tokenService,
		hasher:       hasher,
		clock:        time.Now,
		logger:       defLogger{},
		activitySink: noopActivitySink{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = normalizeLogger(logger)
	return s
}

// WithActivitySink configures an ActivitySink for emitting auth events.
func (s *Auther) WithActivitySink(sink ActivitySink) *Auther {
	s.activitySink = normalizeActivitySink(sink)
	return s
}

// WithClock sets the clock used as the token issue time
func (s *Auther) WithClock(clock func() time.Time) *Auther {
	if clock != nil {
		s.clock = clock
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login looks up username with an exact match and verifies password.
// Unknown users and wrong passwords both fail with ErrInvalidCredentials.
func (s *Auther) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if IsRecordNotFound(err) || goerrors.IsNotFound(err) {
			s.loginFailed(ctx, username, "unknown user")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login find user error", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during login")
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.loginFailed(ctx, username, "password mismatch")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenService.Issue(user.Email, s.clock())
	if err != nil {
		s.logger.Error("Login issue token error", "error", err)
		return nil, err
	}

	recordActivity(ctx, s.activitySink, s.logger, ActivityEvent{
		EventType: ActivityEventLoginSuccess,
		UserID:    user.ID,
		Username:  user.Email,
	})

	return &LoginResult{
		Token:     token,
		Type:      TokenType,
		ID:        user.ID,
		Username:  user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Admin:     user.Admin,
	}, nil
}

func (s *Auther) loginFailed(ctx context.Context, username, reason string) {
	s.logger.Debug("Login rejected", "username", username, "reason", reason)
	recordActivity(ctx, s.activitySink, s.logger, ActivityEvent{
		EventType: ActivityEventLoginFailure,
		Username:  username,
		Metadata:  map[string]any{"reason": reason},
	})
}

// Register creates a new non admin account. It fails with ErrUsernameTaken
// when the email is already registered.
func (s *Auther) Register(ctx context.Context, msg RegisterUserMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled during user registration")
	default:
	}

	exists, err := s.store.ExistsByUsername(ctx, msg.Email)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check username")
	}
	if exists {
		return ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(msg.Password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user, err := s.store.Save(ctx, &User{
		Email:        msg.Email,
		FirstName:    msg.FirstName,
		LastName:     msg.LastName,
		PasswordHash: hash,
		Admin:        false,
	})
	if err != nil {
		// lost a race against another registration for the same email
		if errors.Is(err, ErrUsernameTaken) {
			return ErrUsernameTaken
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create user")
	}

	recordActivity(ctx, s.activitySink, s.logger, ActivityEvent{
		EventType: ActivityEventUserRegistered,
		UserID:    user.ID,
		Username:  user.Email,
	})

	return nil
}
