package yoga

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Logger takes a message followed by key/value pairs
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() time.Duration
	GetAuthScheme() string
	GetContextKey() string
	GetTokenLookup() string
	GetBcryptCost() int
}

// Authenticator verifies credentials and registers new accounts
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, msg RegisterUserMessage) error
}

// TokenService issues and validates signed bearer tokens
type TokenService interface {
	Issue(subject string, now time.Time) (string, error)
	Validate(token string) bool
	ExtractSubject(token string) (string, error)
	Parse(token string) (*JWTClaims, error)
}

// PrincipalResolver rebuilds the acting user from a bearer token
type PrincipalResolver interface {
	Resolve(ctx context.Context, token string) (*User, error)
}

// ClaimsResolver also hands back the claims of the token
type ClaimsResolver interface {
	PrincipalResolver
	ResolveClaims(ctx context.Context, token string) (*User, *JWTClaims, error)
}

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// PrincipalStore ensure we have a store to retrieve registered users.
// Lookups report missing records with ErrRecordNotFound.
type PrincipalStore interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	Save(ctx context.Context, user *User) (*User, error)
	DeleteByID(ctx context.Context, id int64) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// SessionStore persists sessions together with their member set.
// Save must persist the whole aggregate in one unit and fail with
// ErrSessionConflict when the stored version differs from session.Version.
type SessionStore interface {
	FindByID(ctx context.Context, id int64) (*Session, error)
	Save(ctx context.Context, session *Session) (*Session, error)
	DeleteByID(ctx context.Context, id int64) error
	FindAll(ctx context.Context) ([]*Session, error)
}

// TeacherStore is a read only store for teachers
type TeacherStore interface {
	FindByID(ctx context.Context, id int64) (*Teacher, error)
	FindAll(ctx context.Context) ([]*Teacher, error)
}

type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) {
	fmt.Print("[ERR] YOGA " + line(msg, args))
}

func (d defLogger) Warn(msg string, args ...any) {
	fmt.Print("[WRN] YOGA " + line(msg, args))
}

func (d defLogger) Info(msg string, args ...any) {
	fmt.Print("[INF] YOGA " + line(msg, args))
}

func (d defLogger) Debug(msg string, args ...any) {
	fmt.Print("[DBG] YOGA " + line(msg, args))
}

// line renders msg followed by key=value pairs
func line(msg string, args []any) string {
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
			continue
		}
		fmt.Fprintf(&b, " %v", args[i])
	}
	b.WriteString("\n")
	return b.String()
}

// NopLogger discards everything, handy in tests
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

func normalizeLogger(l Logger) Logger {
	if l == nil {
		return defLogger{}
	}
	return l
}
