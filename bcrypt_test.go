package yoga_test

import (
	"testing"

	"github.com/goliatone/go-yoga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "Valid password",
			password: "securePassword123!",
			wantErr:  false,
		},
		{
			name:     "Empty password",
			password: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := yoga.HashPassword(tt.password)

			if tt.wantErr {
				assert.ErrorIs(t, err, yoga.ErrNoEmptyString)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NoError(t, yoga.ComparePasswordAndHash(tt.password, hash))
		})
	}
}

func TestComparePasswordAndHash(t *testing.T) {
	hash, err := yoga.HashPassword("testPassword123!")
	require.NoError(t, err)

	assert.NoError(t, yoga.ComparePasswordAndHash("testPassword123!", hash))
	assert.ErrorIs(t, yoga.ComparePasswordAndHash("wrong", hash), yoga.ErrMismatchedHashAndPassword)
	assert.Error(t, yoga.ComparePasswordAndHash("testPassword123!", "not-a-hash"))
}

func TestBcryptHasher(t *testing.T) {
	hasher := yoga.NewBcryptHasher(bcrypt.MinCost)
	assert.Equal(t, bcrypt.MinCost, hasher.Cost())

	hash, err := hasher.Hash("test!1234")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.True(t, hasher.Verify("test!1234", hash))
	assert.False(t, hasher.Verify("test!12345", hash))
	assert.False(t, hasher.Verify("test!1234", ""))
}

func TestBcryptHasherCostFallback(t *testing.T) {
	assert.Equal(t, yoga.DefaultBcryptCost, yoga.NewBcryptHasher(0).Cost())
	assert.Equal(t, yoga.DefaultBcryptCost, yoga.NewBcryptHasher(bcrypt.MaxCost+1).Cost())
}
