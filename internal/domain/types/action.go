package types

import "fmt"

// ActionKind is the canonical tag of a security-sensitive action. The set is
// closed; callers must not construct other values.
type ActionKind string

const (
	ActionOpen   ActionKind = "open"   // log in a client
	ActionStart  ActionKind = "start"  // create a conversation
	ActionAdd    ActionKind = "add"    // invite members to a conversation
	ActionRemove ActionKind = "remove" // kick members out of a conversation
)

// String returns the wire form handed to the signing callback.
func (k ActionKind) String() string { return string(k) }

// Valid reports whether k is one of the four known kinds.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionOpen, ActionStart, ActionAdd, ActionRemove:
		return true
	}
	return false
}

// ParseActionKind maps a wire string back to its ActionKind.
func ParseActionKind(s string) (ActionKind, error) {
	k := ActionKind(s)
	if !k.Valid() {
		return "", InvalidDescriptor(fmt.Sprintf("unknown action kind %q", s))
	}
	return k, nil
}

// ActionDescriptor describes one authorization request. It is immutable:
// fields are read through accessors and the target list is copied in and out.
type ActionDescriptor struct {
	initiator    ClientID
	conversation ConversationID
	kind         ActionKind
	targets      []ClientID
}

// NewActionDescriptor builds and validates a descriptor.
//
// Rules:
//   - initiator is non-empty;
//   - open carries no conversation id and no targets;
//   - start, add and remove carry a conversation id;
//   - add and remove carry at least one target;
//   - no target id is empty.
func NewActionDescriptor(
	initiator ClientID,
	conversation ConversationID,
	kind ActionKind,
	targets []ClientID,
) (ActionDescriptor, error) {
	d := ActionDescriptor{
		initiator:    initiator,
		conversation: conversation,
		kind:         kind,
		targets:      append([]ClientID(nil), targets...),
	}
	if err := d.Validate(); err != nil {
		return ActionDescriptor{}, err
	}
	return d, nil
}

// Validate checks the descriptor invariants. The zero value is invalid.
func (d ActionDescriptor) Validate() error {
	if d.initiator == "" {
		return InvalidDescriptor("initiator id is empty")
	}
	if !d.kind.Valid() {
		return InvalidDescriptor(fmt.Sprintf("unknown action kind %q", d.kind))
	}
	switch d.kind {
	case ActionOpen:
		if d.conversation != "" {
			return InvalidDescriptor("open must not target a conversation")
		}
		if len(d.targets) > 0 {
			return InvalidDescriptor("open must not carry target clients")
		}
	case ActionStart:
		if d.conversation == "" {
			return InvalidDescriptor("start requires the proposed conversation id")
		}
	case ActionAdd, ActionRemove:
		if d.conversation == "" {
			return InvalidDescriptor(fmt.Sprintf("%s requires a conversation id", d.kind))
		}
		if len(d.targets) == 0 {
			return InvalidDescriptor(fmt.Sprintf("%s requires at least one target client", d.kind))
		}
	}
	for i, t := range d.targets {
		if t == "" {
			return InvalidDescriptor(fmt.Sprintf("target client %d is empty", i))
		}
	}
	return nil
}

// InitiatorID returns the id of the acting client.
func (d ActionDescriptor) InitiatorID() ClientID { return d.initiator }

// ConversationID returns the target conversation, or "" for open.
func (d ActionDescriptor) ConversationID() ConversationID { return d.conversation }

// Kind returns the action kind.
func (d ActionDescriptor) Kind() ActionKind { return d.kind }

// TargetClientIDs returns a copy of the affected peers, in caller order.
func (d ActionDescriptor) TargetClientIDs() []ClientID {
	if len(d.targets) == 0 {
		return nil
	}
	return append([]ClientID(nil), d.targets...)
}
