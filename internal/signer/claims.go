package signer

import (
	"slices"

	"imkit/internal/domain"
)

// tokenType is the JOSE "typ" header of action signatures.
const tokenType = "imkit-action+jwt"

// Claims is the signed payload.
type Claims struct {
	ClientID       domain.ClientID       `json:"cid"`
	ConversationID domain.ConversationID `json:"conv,omitempty"`
	Action         string                `json:"act"`
	Members        []domain.ClientID     `json:"members,omitempty"`
	IssuedAt       int64                 `json:"iat"`
	Nonce          string                `json:"nonce"`
}

// Action identifies what a signature is for, as seen by a verifier.
type Action struct {
	ClientID       domain.ClientID
	ConversationID domain.ConversationID
	Action         string
	ClientIDs      []domain.ClientID
}

// canonicalMembers sorts a copy so member order does not affect signatures.
func canonicalMembers(ids []domain.ClientID) []domain.ClientID {
	if len(ids) == 0 {
		return nil
	}
	out := slices.Clone(ids)
	slices.Sort(out)
	return out
}
