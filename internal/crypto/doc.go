// Package crypto exposes the minimal primitives used by imkit.
//
// Contents
//
//   - Ed25519 key generation and public key parsing for the reference
//     signer (GenerateEd25519, PublicKey, ParsePublicKey)
//   - Base64 helpers for keys shown to or read from users (B64, B64URL,
//     DecodeB64)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Callers should treat private keys as sensitive and rely on Wipe when
// practical to reduce their lifetime in memory.
package crypto
