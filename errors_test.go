package yoga_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-yoga"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
)

func TestIsRecordNotFound(t *testing.T) {
	assert.True(t, yoga.IsRecordNotFound(yoga.ErrRecordNotFound))
	assert.True(t, yoga.IsRecordNotFound(fmt.Errorf("lookup: %w", yoga.ErrRecordNotFound)))
	assert.False(t, yoga.IsRecordNotFound(yoga.ErrSessionNotFound))
	assert.False(t, yoga.IsRecordNotFound(nil))
}

func TestIsTokenExpiredError(t *testing.T) {
	assert.True(t, yoga.IsTokenExpiredError(yoga.ErrTokenExpired))
	assert.False(t, yoga.IsTokenExpiredError(yoga.ErrTokenMalformed))
	assert.False(t, yoga.IsTokenExpiredError(errors.New("token is expired")))
	assert.False(t, yoga.IsTokenExpiredError(nil))
}

func TestIsMalformedError(t *testing.T) {
	assert.True(t, yoga.IsMalformedError(yoga.ErrTokenMalformed))
	assert.False(t, yoga.IsMalformedError(yoga.ErrTokenSignature))
	assert.False(t, yoga.IsMalformedError(nil))
}

func TestIsUnauthorized(t *testing.T) {
	for _, err := range []error{
		yoga.ErrInvalidCredentials,
		yoga.ErrInvalidToken,
		yoga.ErrPrincipalNotFound,
		yoga.ErrNotOwner,
		yoga.ErrTokenAlgorithm,
	} {
		assert.True(t, yoga.IsUnauthorized(err), err)
	}

	assert.False(t, yoga.IsUnauthorized(yoga.ErrSessionNotFound))
	assert.False(t, yoga.IsUnauthorized(errors.New("plain")))
	assert.False(t, yoga.IsUnauthorized(nil))
}

func TestStructuredErrorProperties(t *testing.T) {
	tests := []struct {
		err      *goerrors.Error
		category any
		textCode string
		code     int
	}{
		{yoga.ErrInvalidCredentials, goerrors.CategoryAuth, yoga.TextCodeInvalidCredentials, goerrors.CodeUnauthorized},
		{yoga.ErrSessionNotFound, goerrors.CategoryNotFound, yoga.TextCodeSessionNotFound, goerrors.CodeNotFound},
		{yoga.ErrUserNotFound, goerrors.CategoryNotFound, yoga.TextCodeUserNotFound, goerrors.CodeNotFound},
		{yoga.ErrTeacherNotFound, goerrors.CategoryNotFound, yoga.TextCodeTeacherNotFound, goerrors.CodeNotFound},
		{yoga.ErrAlreadyParticipating, goerrors.CategoryBadInput, yoga.TextCodeAlreadyParticipating, goerrors.CodeBadRequest},
		{yoga.ErrNotParticipating, goerrors.CategoryBadInput, yoga.TextCodeNotParticipating, goerrors.CodeBadRequest},
		{yoga.ErrUsernameTaken, goerrors.CategoryConflict, yoga.TextCodeUsernameTaken, goerrors.CodeBadRequest},
		{yoga.ErrSessionConflict, goerrors.CategoryConflict, yoga.TextCodeSessionConflict, goerrors.CodeConflict},
		{yoga.ErrNoEmptyString, goerrors.CategoryValidation, yoga.TextCodeEmptyPassword, goerrors.CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.textCode, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Equal(t, tt.textCode, tt.err.TextCode)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}
