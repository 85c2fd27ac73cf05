package types

// Signature is what the host signing callback produces for one action. The
// backend defines the scheme; imkit passes every field through unchanged.
type Signature struct {
	Value     string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	Nonce     string `json:"nonce"`
}

// SignatureResult is the gateway's normalized outcome of a successful
// authorization. Exactly one of Signature and Unsigned is set.
type SignatureResult struct {
	Signature *Signature
	Unsigned  bool
}
