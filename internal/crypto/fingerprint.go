package crypto

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
)

const fingerprintLabel = "imkit signing key v1\x00"

// Fingerprint names a signing key: the first 10 bytes of
// SHA-256(label || pub), hex encoded. It doubles as the JWS key id.
func Fingerprint(pub ed25519.PublicKey) string {
	h := sha256.New()
	h.Write([]byte(fingerprintLabel))
	h.Write(pub)
	return hex.EncodeToString(h.Sum(nil)[:10])
}
