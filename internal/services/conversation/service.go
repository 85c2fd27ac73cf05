package conversation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"imkit/internal/domain"
	"imkit/internal/services/session"
)

// Service performs conversation actions for the current session's client.
//
// It does not serialize actions per conversation. Two concurrent AddMembers
// calls on the same conversation are authorized and sent independently.
type Service struct {
	sessions domain.SessionService
	gateway  domain.SignatureService
	client   domain.IMClient
	logger   *slog.Logger

	newID func() domain.ConversationID
}

// New constructs a conversation Service.
func New(
	sessions domain.SessionService,
	gateway domain.SignatureService,
	client domain.IMClient,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		sessions: sessions,
		gateway:  gateway,
		client:   client,
		logger:   logger.With("component", "conversation"),
		newID:    func() domain.ConversationID { return uuid.NewString() },
	}
}

// CreateConversation authorizes a start action for a fresh conversation id
// and creates the conversation with the given initial members.
func (s *Service) CreateConversation(
	ctx context.Context,
	members []domain.ClientID,
	name string,
	attributes map[string]string,
) (domain.Conversation, error) {
	me, err := s.initiator()
	if err != nil {
		return domain.Conversation{}, err
	}
	id := s.newID()
	sig, err := s.authorize(ctx, me, id, domain.ActionStart, members)
	if err != nil {
		return domain.Conversation{}, err
	}

	req := domain.CreateConversationRequest{
		ID:         id,
		Creator:    me,
		Members:    append([]domain.ClientID(nil), members...),
		Name:       name,
		Attributes: attributes,
	}
	conv, err := s.client.CreateConversation(ctx, req, sig)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("create conversation %q: %w", id, err)
	}
	s.logger.Info("conversation created", "conversation", conv.ID, "members", len(conv.Members))
	return conv, nil
}

// AddMembers authorizes an add action and invites clientIDs.
func (s *Service) AddMembers(
	ctx context.Context,
	conversationID domain.ConversationID,
	clientIDs []domain.ClientID,
) error {
	me, err := s.initiator()
	if err != nil {
		return err
	}
	sig, err := s.authorize(ctx, me, conversationID, domain.ActionAdd, clientIDs)
	if err != nil {
		return err
	}
	if err := s.client.Invite(ctx, conversationID, clientIDs, sig); err != nil {
		return fmt.Errorf("invite to %q: %w", conversationID, err)
	}
	s.logger.Info("members added", "conversation", conversationID, "count", len(clientIDs))
	return nil
}

// RemoveMembers authorizes a remove action and kicks clientIDs.
func (s *Service) RemoveMembers(
	ctx context.Context,
	conversationID domain.ConversationID,
	clientIDs []domain.ClientID,
) error {
	me, err := s.initiator()
	if err != nil {
		return err
	}
	sig, err := s.authorize(ctx, me, conversationID, domain.ActionRemove, clientIDs)
	if err != nil {
		return err
	}
	if err := s.client.Kick(ctx, conversationID, clientIDs, sig); err != nil {
		return fmt.Errorf("kick from %q: %w", conversationID, err)
	}
	s.logger.Info("members removed", "conversation", conversationID, "count", len(clientIDs))
	return nil
}

func (s *Service) initiator() (domain.ClientID, error) {
	if s.sessions.State() != domain.SessionOpen {
		return "", session.ErrSessionClosed
	}
	return s.sessions.ClientID(), nil
}

// authorize builds the descriptor and returns the signature to forward, nil
// in unsigned mode. Gateway errors are returned unchanged.
func (s *Service) authorize(
	ctx context.Context,
	initiator domain.ClientID,
	conversationID domain.ConversationID,
	kind domain.ActionKind,
	targets []domain.ClientID,
) (*domain.Signature, error) {
	d, err := domain.NewActionDescriptor(initiator, conversationID, kind, targets)
	if err != nil {
		return nil, err
	}
	res, err := s.gateway.Authorize(ctx, d)
	if err != nil {
		return nil, err
	}
	return res.Signature, nil
}

// Compile-time assertion that Service implements domain.ConversationService.
var _ domain.ConversationService = (*Service)(nil)
