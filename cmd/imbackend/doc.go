// Package main runs the in-memory IM backend used with imkit during
// development and tests.
//
// HTTP API
//
//	POST /v1/sessions/open
//	    Log a client in. With --verify-key the body must carry an "open"
//	    signature for the client.
//
//	POST /v1/sessions/close
//	    Log a client out.
//
//	POST /v1/conversations
//	    Create a conversation; signed as "start" for its id and members.
//
//	GET /v1/conversations/{id}
//	    Return a conversation.
//
//	POST /v1/conversations/{id}/invite
//	POST /v1/conversations/{id}/kick
//	    Add or remove members; signed as "add" or "remove".
//
//	POST /v1/badge
//	    Record a client's badge count.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Responses are JSON. Non-2xx statuses carry {"error": "..."}.
//   - An access log records method, path, status and duration per request.
//   - With --config, edits to logging.verbose apply without a restart.
package main
