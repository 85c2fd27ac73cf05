package store

import (
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"imkit/internal/crypto"
	"imkit/internal/domain"
)

const keyFilename = "signing_key.json.enc"

// ErrNoSigningKey is returned when no key has been generated yet.
var ErrNoSigningKey = errors.New("no signing key; run keygen first")

// sealedKey is the plaintext sealed inside the key file.
type sealedKey struct {
	Seed []byte `json:"seed"`
}

// KeyFileStore persists the signing key to disk.
type KeyFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewKeyFileStore returns a KeyFileStore rooted at dir.
func NewKeyFileStore(dir string) *KeyFileStore {
	return &KeyFileStore{dir: dir}
}

// SaveSigningKey writes the key's seed, encrypted with passphrase.
func (s *KeyFileStore) SaveSigningKey(passphrase string, key ed25519.PrivateKey) error {
	if len(key) != ed25519.PrivateKeySize {
		return fmt.Errorf("signing key: want %d bytes, got %d", ed25519.PrivateKeySize, len(key))
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(sealedKey{Seed: key.Seed()})
	if err != nil {
		return err
	}
	defer crypto.Wipe(raw)

	N, r, p := scryptParamsDefault()
	ct, err := encrypt(passphrase, raw, N, r, p)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, keyFilename), ct, 0o600)
}

// LoadSigningKey reads and decrypts the signing key.
func (s *KeyFileStore) LoadSigningKey(passphrase string) (ed25519.PrivateKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(filepath.Join(s.dir, keyFilename))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSigningKey
	}
	if err != nil {
		return nil, err
	}
	pt, err := decrypt(passphrase, b)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(pt)

	var k sealedKey
	if err := json.Unmarshal(pt, &k); err != nil {
		return nil, err
	}
	defer crypto.Wipe(k.Seed)
	if len(k.Seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("signing key: corrupt seed of %d bytes", len(k.Seed))
	}
	return ed25519.NewKeyFromSeed(k.Seed), nil
}

// Compile-time assertion that KeyFileStore implements domain.SigningKeyStore.
var _ domain.SigningKeyStore = (*KeyFileStore)(nil)
