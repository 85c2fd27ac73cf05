package store_test

import (
	"crypto/ed25519"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imkit/internal/domain"
	"imkit/internal/store"
)

func TestSigningKey_SaveLoad_OK(t *testing.T) {
	store.UseFastKDF(t.Cleanup)
	home := t.TempDir()
	pass := "correct horse"

	var keys domain.SigningKeyStore = store.NewKeyFileStore(home)

	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	require.NoError(t, keys.SaveSigningKey(pass, priv))

	got, err := keys.LoadSigningKey(pass)
	require.NoError(t, err)
	assert.True(t, priv.Equal(got), "mismatch after load")

	info, err := os.Stat(filepath.Join(home, "signing_key.json.enc"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSigningKey_WrongPassphrase_Fails(t *testing.T) {
	store.UseFastKDF(t.Cleanup)
	home := t.TempDir()
	keys := store.NewKeyFileStore(home)

	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	require.NoError(t, keys.SaveSigningKey("correct", priv))

	_, err = keys.LoadSigningKey("wrong")
	assert.ErrorIs(t, err, store.ErrWrongPassphrase)
}

func TestSigningKey_Missing(t *testing.T) {
	_, err := store.NewKeyFileStore(t.TempDir()).LoadSigningKey("x")
	assert.ErrorIs(t, err, store.ErrNoSigningKey)
}

func TestSigningKey_RejectsShortKey(t *testing.T) {
	err := store.NewKeyFileStore(t.TempDir()).SaveSigningKey("x", ed25519.PrivateKey{1, 2, 3})
	assert.Error(t, err)
}
