package backend

import "imkit/internal/domain"

type openRequest struct {
	ClientID  domain.ClientID   `json:"client_id"`
	Signature *domain.Signature `json:"signature,omitempty"`
}

type closeRequest struct {
	ClientID domain.ClientID `json:"client_id"`
}

type createRequest struct {
	ClientID     domain.ClientID                  `json:"client_id"`
	Conversation domain.CreateConversationRequest `json:"conversation"`
	Signature    *domain.Signature                `json:"signature,omitempty"`
}

type membersRequest struct {
	ClientID  domain.ClientID   `json:"client_id"`
	ClientIDs []domain.ClientID `json:"client_ids"`
	Signature *domain.Signature `json:"signature,omitempty"`
}

type badgeRequest struct {
	ClientID domain.ClientID `json:"client_id"`
	Count    int             `json:"count"`
	DevPush  bool            `json:"dev_push"`
}

type errorResponse struct {
	Error string `json:"error"`
}
