package yoga_test

import (
	"context"
	"time"

	"github.com/goliatone/go-yoga"
	"github.com/stretchr/testify/mock"
)

// MockLogger implements yoga.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, args ...any) {
	m.Called(msg, args)
}

func (m *MockLogger) Info(msg string, args ...any) {
	m.Called(msg, args)
}

func (m *MockLogger) Warn(msg string, args ...any) {
	m.Called(msg, args)
}

func (m *MockLogger) Error(msg string, args ...any) {
	m.Called(msg, args)
}

// MockConfig implements yoga.Config
type MockConfig struct {
	mock.Mock
}

func (m *MockConfig) GetSigningKey() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConfig) GetTokenExpiration() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

func (m *MockConfig) GetAuthScheme() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConfig) GetContextKey() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConfig) GetTokenLookup() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConfig) GetBcryptCost() int {
	args := m.Called()
	return args.Int(0)
}

// MockPrincipalStore implements yoga.PrincipalStore
type MockPrincipalStore struct {
	mock.Mock
}

func (m *MockPrincipalStore) FindByUsername(ctx context.Context, username string) (*yoga.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*yoga.User), args.Error(1)
}

func (m *MockPrincipalStore) FindByID(ctx context.Context, id int64) (*yoga.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*yoga.User), args.Error(1)
}

func (m *MockPrincipalStore) Save(ctx context.Context, user *yoga.User) (*yoga.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*yoga.User), args.Error(1)
}

func (m *MockPrincipalStore) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPrincipalStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// MockSessionStore implements yoga.SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) FindByID(ctx context.Context, id int64) (*yoga.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// hand out copies so callers mutating the result do not alter expectations
	return args.Get(0).(*yoga.Session).Clone(), args.Error(1)
}

func (m *MockSessionStore) Save(ctx context.Context, session *yoga.Session) (*yoga.Session, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*yoga.Session), args.Error(1)
}

func (m *MockSessionStore) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionStore) FindAll(ctx context.Context) ([]*yoga.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*yoga.Session), args.Error(1)
}

// MockTeacherStore implements yoga.TeacherStore
type MockTeacherStore struct {
	mock.Mock
}

func (m *MockTeacherStore) FindByID(ctx context.Context, id int64) (*yoga.Teacher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*yoga.Teacher), args.Error(1)
}

func (m *MockTeacherStore) FindAll(ctx context.Context) ([]*yoga.Teacher, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*yoga.Teacher), args.Error(1)
}

// MockPasswordHasher implements yoga.PasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(plaintext, hash string) bool {
	args := m.Called(plaintext, hash)
	return args.Bool(0)
}

// MockTokenService implements yoga.TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(subject string, now time.Time) (string, error) {
	args := m.Called(subject, now)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Validate(token string) bool {
	args := m.Called(token)
	return args.Bool(0)
}

func (m *MockTokenService) ExtractSubject(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Parse(token string) (*yoga.JWTClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*yoga.JWTClaims), args.Error(1)
}

// recordingSink keeps every event it receives
type recordingSink struct {
	events []yoga.ActivityEvent
	err    error
}

func (r *recordingSink) Record(_ context.Context, event yoga.ActivityEvent) error {
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingSink) types() []yoga.ActivityEventType {
	out := make([]yoga.ActivityEventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType)
	}
	return out
}
