package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	a := NewArgon()

	hash, err := a.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, a.VerifyPassword("correct horse battery staple", hash))
	assert.False(t, a.VerifyPassword("correct horse battery stapl", hash))
	assert.NotContains(t, hash, "correct horse")
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	a := NewArgon()

	h1, err := a.HashPassword("secret12")
	require.NoError(t, err)

	h2, err := a.HashPassword("secret12")
	require.NoError(t, err)

	// Same password must hash differently, both must still verify
	assert.NotEqual(t, h1, h2)
	assert.True(t, a.VerifyPassword("secret12", h1))
	assert.True(t, a.VerifyPassword("secret12", h2))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	a := NewArgon()

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not a hash", "hunter2"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{"bad parameters", "$argon2id$v=19$nonsense$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA"},
		{"bad hash encoding", "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$!!!"},
		{"truncated", "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Malformed input is a mismatch, never a panic
			assert.False(t, a.VerifyPassword("secret12", tt.hash))
		})
	}
}
