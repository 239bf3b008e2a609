package auth

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_GenerateSalt(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hexRe := regexp.MustCompile(`^[0-9a-f]{64}$`)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		salt, err := h.GenerateSalt()
		require.NoError(t, err)
		assert.Regexp(t, hexRe, salt, "salt should be 64 hex characters")
		assert.False(t, seen[salt], "salts should not repeat")
		seen[salt] = true
	}
}

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	otherSalt, err := h.GenerateSalt()
	require.NoError(t, err)

	hash, err := h.Hash(salt, "attendee-password")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	tests := []struct {
		name     string
		salt     string
		password string
		wantErr  bool
	}{
		{name: "matching salt and password", salt: salt, password: "attendee-password"},
		{name: "wrong password", salt: salt, password: "organizer-password", wantErr: true},
		{name: "wrong salt", salt: otherSalt, password: "attendee-password", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Compare(hash, tt.salt, tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBcryptHasher_LongPassword(t *testing.T) {
	// bcrypt truncates at 72 bytes; the SHA256 pre-hash keeps long inputs
	// distinguishable.
	h := NewBcryptHasher(bcrypt.MinCost)
	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	long := strings.Repeat("a", 100)

	hash, err := h.Hash(salt, long)
	require.NoError(t, err)

	require.NoError(t, h.Compare(hash, salt, long))
	assert.Error(t, h.Compare(hash, salt, long+"b"))
}
