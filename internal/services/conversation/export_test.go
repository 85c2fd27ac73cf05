package conversation

import "imkit/internal/domain"

// SetIDGenerator replaces the conversation id source.
func (s *Service) SetIDGenerator(fn func() domain.ConversationID) { s.newID = fn }
