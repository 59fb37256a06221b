package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"), "hash must be PHC encoded")
	assert.NotContains(t, hash, "admin123")

	require.NoError(t, VerifyPassword("admin123", hash))
	assert.ErrorIs(t, VerifyPassword("wrong", hash), ErrPasswordMismatch)
}

func TestHashPasswordUsesUniqueSalt(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("admin123")
	require.NoError(t, err)
	second, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	t.Parallel()

	err := VerifyPassword("admin123", "not-a-phc-string")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}

func TestSealOpenRoundTrip(t *testing.T) {
	t.Parallel()

	sealer, err := NewSealer([]byte("local machine secret"))
	require.NoError(t, err)

	sealed, err := sealer.Seal([]byte(`{"username":"admin"}`))
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "admin")

	opened, err := sealer.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, `{"username":"admin"}`, string(opened))
}

func TestSealProducesFreshNonce(t *testing.T) {
	t.Parallel()

	sealer, err := NewSealer([]byte("local machine secret"))
	require.NoError(t, err)

	first, err := sealer.Seal([]byte("payload"))
	require.NoError(t, err)
	second, err := sealer.Seal([]byte("payload"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestOpenRejectsTamperedCiphertext(t *testing.T) {
	t.Parallel()

	sealer, err := NewSealer([]byte("local machine secret"))
	require.NoError(t, err)

	sealed, err := sealer.Seal([]byte("payload"))
	require.NoError(t, err)
	sealed[len(sealed)-1] ^= 0xff

	_, err = sealer.Open(sealed)
	require.Error(t, err)
}

func TestOpenRejectsShortCiphertext(t *testing.T) {
	t.Parallel()

	sealer, err := NewSealer([]byte("local machine secret"))
	require.NoError(t, err)

	_, err = sealer.Open([]byte{0x01, 0x02})
	assert.ErrorIs(t, err, ErrCiphertextTooShort)
}

func TestNewSealerRejectsEmptyKey(t *testing.T) {
	t.Parallel()

	_, err := NewSealer(nil)
	require.Error(t, err)
}

func TestNewSealerFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.key")
	require.NoError(t, os.WriteFile(path, []byte("key material"), 0o600))

	fromFile, err := NewSealerFromFile(path)
	require.NoError(t, err)
	direct, err := NewSealer([]byte("key material"))
	require.NoError(t, err)

	sealed, err := fromFile.Seal([]byte("payload"))
	require.NoError(t, err)
	opened, err := direct.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(opened))

	_, err = NewSealerFromFile(filepath.Join(t.TempDir(), "missing.key"))
	require.Error(t, err)
}
