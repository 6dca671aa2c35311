package yoga

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeRecordNotFound       = "RECORD_NOT_FOUND"
	TextCodeInvalidCredentials   = "INVALID_CREDENTIALS"
	TextCodeInvalidToken         = "INVALID_TOKEN"
	TextCodeTokenExpired         = "TOKEN_EXPIRED"
	TextCodeTokenMalformed       = "TOKEN_MALFORMED"
	TextCodeTokenSignature       = "TOKEN_SIGNATURE_INVALID"
	TextCodeTokenAlgorithm       = "TOKEN_ALGORITHM_UNSUPPORTED"
	TextCodePrincipalNotFound    = "PRINCIPAL_NOT_FOUND"
	TextCodeNotOwner             = "NOT_OWNER"
	TextCodeSessionNotFound      = "SESSION_NOT_FOUND"
	TextCodeUserNotFound         = "USER_NOT_FOUND"
	TextCodeTeacherNotFound      = "TEACHER_NOT_FOUND"
	TextCodeAlreadyParticipating = "ALREADY_PARTICIPATING"
	TextCodeNotParticipating     = "NOT_PARTICIPATING"
	TextCodeInvalidID            = "INVALID_ID"
	TextCodeUsernameTaken        = "USERNAME_TAKEN"
	TextCodeSessionConflict      = "SESSION_VERSION_CONFLICT"
	TextCodeEmptyPassword        = "EMPTY_PASSWORD"
	TextCodePasswordMismatch     = "PASSWORD_MISMATCH"
)

// ErrRecordNotFound is returned by stores when a lookup has no match
var ErrRecordNotFound = goerrors.New("record not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeRecordNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrInvalidCredentials is the uniform login failure, it never says
// whether the username or the password was wrong
var ErrInvalidCredentials = goerrors.New("bad credentials", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(goerrors.CodeUnauthorized)

// ErrInvalidToken is returned when a bearer token does not validate
var ErrInvalidToken = goerrors.New("invalid authentication token", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidToken).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired token exp is in the past
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed token could not be decoded
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenSignature signature does not verify with the configured key
var ErrTokenSignature = goerrors.New("token signature is invalid", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenSignature).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenAlgorithm token was not signed with the expected algorithm
var ErrTokenAlgorithm = goerrors.New("token signing method is not supported", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenAlgorithm).
	WithCode(goerrors.CodeUnauthorized)

// ErrPrincipalNotFound the token is valid but the account is gone
var ErrPrincipalNotFound = goerrors.New("principal not found", goerrors.CategoryAuth).
	WithTextCode(TextCodePrincipalNotFound).
	WithCode(goerrors.CodeUnauthorized)

// ErrNotOwner the principal is not allowed to act on another account
var ErrNotOwner = goerrors.New("principal does not own this account", goerrors.CategoryAuth).
	WithTextCode(TextCodeNotOwner).
	WithCode(goerrors.CodeUnauthorized)

var ErrSessionNotFound = goerrors.New("session not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeSessionNotFound).
	WithCode(goerrors.CodeNotFound)

var ErrUserNotFound = goerrors.New("user not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(goerrors.CodeNotFound)

var ErrTeacherNotFound = goerrors.New("teacher not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeTeacherNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrAlreadyParticipating user is already a member of the session
var ErrAlreadyParticipating = goerrors.New("user already participates in session", goerrors.CategoryBadInput).
	WithTextCode(TextCodeAlreadyParticipating).
	WithCode(goerrors.CodeBadRequest)

// ErrNotParticipating user is not a member of the session
var ErrNotParticipating = goerrors.New("user does not participate in session", goerrors.CategoryBadInput).
	WithTextCode(TextCodeNotParticipating).
	WithCode(goerrors.CodeBadRequest)

// ErrInvalidID path identifier is not a positive integer
var ErrInvalidID = goerrors.New("invalid identifier", goerrors.CategoryBadInput).
	WithTextCode(TextCodeInvalidID).
	WithCode(goerrors.CodeBadRequest)

// ErrUsernameTaken registration conflict. The client expects a 400 here.
var ErrUsernameTaken = goerrors.New("Error: Email is already taken!", goerrors.CategoryConflict).
	WithTextCode(TextCodeUsernameTaken).
	WithCode(goerrors.CodeBadRequest)

// ErrSessionConflict the session changed between read and write
var ErrSessionConflict = goerrors.New("session was modified concurrently", goerrors.CategoryConflict).
	WithTextCode(TextCodeSessionConflict).
	WithCode(goerrors.CodeConflict)

// ErrNoEmptyString password must not be empty
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(goerrors.CodeBadRequest)

// ErrMismatchedHashAndPassword password does not match hash
var ErrMismatchedHashAndPassword = goerrors.New("password does not match", goerrors.CategoryAuth).
	WithTextCode(TextCodePasswordMismatch).
	WithCode(goerrors.CodeUnauthorized)

// IsRecordNotFound reports whether a store lookup had no match
func IsRecordNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrRecordNotFound)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenExpired)
}

// IsMalformedError will check for undecodable tokens
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenMalformed)
}

// IsUnauthorized reports whether err should be answered with a 401
func IsUnauthorized(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.Category == goerrors.CategoryAuth
}
