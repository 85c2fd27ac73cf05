// Package signer is a reference host signing implementation.
//
// A Signer holds an Ed25519 key and answers the gateway's signing callback
// with a compact EdDSA JWS whose payload binds the four action fields plus
// a timestamp and a random nonce. A Verifier checks such a token against
// the action it is attached to; the development backend uses it when a
// verification key is configured.
//
// Production hosts normally sign on their own server; this package exists
// so the CLI and the development backend can exercise signed mode end to
// end.
package signer
