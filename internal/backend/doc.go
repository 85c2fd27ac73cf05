// Package backend talks to the IM backend over JSON/HTTP.
//
// HTTP implements domain.IMClient. It is bound to one client: Open records
// the client id and later conversation calls act on its behalf. Signatures
// are sent as opaque {signature, timestamp, nonce} objects and omitted in
// unsigned mode.
//
// Server is an in-memory development backend speaking the same API. With a
// signer.Verifier configured it rejects actions whose signature is missing
// or does not match the action.
//
// HTTP API
//
//	POST /v1/sessions/open                 {client_id, signature?}
//	POST /v1/sessions/close                {client_id}
//	POST /v1/conversations                 {client_id, conversation, signature?}
//	POST /v1/conversations/{id}/invite     {client_id, client_ids, signature?}
//	POST /v1/conversations/{id}/kick       {client_id, client_ids, signature?}
//	POST /v1/badge                         {client_id, count, dev_push}
//	GET  /v1/conversations/{id}
//
// Non-2xx responses carry {"error": "..."} and surface as *StatusError.
package backend
