package config

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name       string
		bcryptCost string
		pepper     string
		wantCost   int
		wantErr    bool
	}{
		{name: "default cost", bcryptCost: "", wantCost: DefaultBcryptCost},
		{name: "valid cost", bcryptCost: "11", wantCost: 11},
		{name: "minimum cost", bcryptCost: "10", wantCost: 10},
		{name: "maximum cost", bcryptCost: "14", wantCost: 14},
		{name: "cost too low", bcryptCost: "9", wantErr: true},
		{name: "cost too high", bcryptCost: "15", wantErr: true},
		{name: "non-numeric cost", bcryptCost: "invalid", wantErr: true},
		{name: "with pepper", bcryptCost: "10", pepper: "test-pepper", wantCost: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.bcryptCost)
			t.Setenv("PASSWORD_PEPPER", tt.pepper)

			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
			assert.Equal(t, tt.pepper, cfg.Pepper)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: MinBcryptCost}

	hash, err := cfg.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"))

	assert.True(t, cfg.VerifyPassword("correct horse", hash))
	assert.False(t, cfg.VerifyPassword("wrong horse", hash))
	assert.False(t, cfg.VerifyPassword("correct horse", "not-a-hash"))
}

func TestPasswordConfig_SaltMakesHashesUnique(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: MinBcryptCost}

	h1, err := cfg.HashPassword("same-password")
	require.NoError(t, err)
	h2, err := cfg.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, cfg.VerifyPassword("same-password", h1))
	assert.True(t, cfg.VerifyPassword("same-password", h2))
}

func TestPasswordConfig_Pepper(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: MinBcryptCost, Pepper: "pepper-a"}
	hash, err := peppered.HashPassword("secret123")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("secret123", hash))

	rotated := &PasswordConfig{BcryptCost: MinBcryptCost, Pepper: "pepper-b"}
	assert.False(t, rotated.VerifyPassword("secret123", hash), "rotating the pepper invalidates hashes")

	plain := &PasswordConfig{BcryptCost: MinBcryptCost}
	assert.False(t, plain.VerifyPassword("secret123", hash))
}

func TestPasswordConfig_PasswordExceeding72Bytes(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: MinBcryptCost}

	hash, err := cfg.HashPassword(strings.Repeat("a", 100))
	assert.Error(t, err, "bcrypt rejects inputs longer than 72 bytes")
	assert.Empty(t, hash)
}

func TestPasswordConfig_ConcurrentAccess(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: MinBcryptCost}
	hash, err := cfg.HashPassword("shared")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]bool, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cfg.VerifyPassword("shared", hash)
		}(i)
	}
	wg.Wait()

	for _, ok := range results {
		assert.True(t, ok)
	}
}
