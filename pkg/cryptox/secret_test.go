package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	SetPepper("test-pepper")
	os.Exit(m.Run())
}

func TestHashSecret(t *testing.T) {
	hash, err := HashSecret("workshop_secret_123")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	require.Len(t, strings.Split(hash, "$"), 6)
}

func TestHashSecret_UniqueSalts(t *testing.T) {
	hash1, err := HashSecret("same")
	require.NoError(t, err)
	hash2, err := HashSecret("same")
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
	require.NoError(t, VerifySecret("same", hash1))
	require.NoError(t, VerifySecret("same", hash2))
}

func TestVerifySecret_Mismatch(t *testing.T) {
	hash, err := HashSecret("correct-secret")
	require.NoError(t, err)

	for _, wrong := range []string{"wrong-secret", "Correct-Secret", "correct-secret ", "", "correct-secre"} {
		require.ErrorIs(t, VerifySecret(wrong, hash), ErrSecretMismatch, wrong)
	}
}

func TestVerifySecret_PepperChangesOutcome(t *testing.T) {
	hash, err := HashSecret("peppered")
	require.NoError(t, err)

	SetPepper("another-pepper")
	t.Cleanup(func() { SetPepper("test-pepper") })

	require.ErrorIs(t, VerifySecret("peppered", hash), ErrSecretMismatch)
}

func TestVerifySecret_InvalidHashFormat(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty hash", ""},
		{"plaintext", "workshop_secret_123"},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, VerifySecret("x", tt.hash), ErrHashFormat)
		})
	}
}

func TestLoadPepper(t *testing.T) {
	t.Cleanup(func() { SetPepper("test-pepper") })

	path := filepath.Join(t.TempDir(), "nested", "pepper")

	require.NoError(t, LoadPepper(path))
	generated := Pepper()
	require.NotEmpty(t, generated)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	SetPepper("")
	require.NoError(t, LoadPepper(path))
	require.Equal(t, generated, Pepper(), "pepper should be reloaded from disk")
}
