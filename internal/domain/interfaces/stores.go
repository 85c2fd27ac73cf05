package interfaces

import (
	"crypto/ed25519"

	domaintypes "imkit/internal/domain/types"
)

// SigningKeyStore persists the reference signer's Ed25519 key, sealed with a
// passphrase.
type SigningKeyStore interface {
	SaveSigningKey(passphrase string, key ed25519.PrivateKey) error
	LoadSigningKey(passphrase string) (ed25519.PrivateKey, error)
}

// SettingsStore persists host preferences.
type SettingsStore interface {
	SaveSettings(settings domaintypes.Settings) error
	LoadSettings() (domaintypes.Settings, error)
	// UpdateSettings applies fn to the stored settings and saves the result
	// atomically with respect to other callers.
	UpdateSettings(fn func(*domaintypes.Settings)) (domaintypes.Settings, error)
}
