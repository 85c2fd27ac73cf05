// Package store provides file-based persistence for imkit's local state.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk. All methods are concurrency-safe via
// internal locking. Stored files typically live under the configured home
// directory.
//
// The package includes stores for:
//   - The reference signer's Ed25519 key, sealed with a passphrase
//     (KeyFileStore)
//   - Host preferences: log toggle, push certificate, sound and vibration
//     cues (SettingsFileStore)
package store
