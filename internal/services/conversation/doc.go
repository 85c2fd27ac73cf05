// Package conversation creates conversations and changes their membership.
//
// Each operation maps to one action kind: CreateConversation to start,
// AddMembers to add and RemoveMembers to remove. The action is authorized by
// the signature gateway on behalf of the open session's client before the
// backend is called; a denied action never reaches the backend.
package conversation
