package crypto

import (
	"encoding/base64"
	"strings"
)

// B64 returns standard base64 encoding without newlines.
func B64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// B64URL returns unpadded base64url encoding, the form used in JOSE headers
// and in the imbackend --verify-key flag.
func B64URL(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }

// DecodeB64 accepts either B64 or B64URL output.
func DecodeB64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "+/=") {
		return base64.StdEncoding.DecodeString(s)
	}
	return base64.RawURLEncoding.DecodeString(s)
}
