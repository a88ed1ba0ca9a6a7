package services

import (
	"context"

	"github.com/arzan03/TalentBridge/internal/models"
	"github.com/arzan03/TalentBridge/internal/repository"
	"github.com/arzan03/TalentBridge/internal/validation"
)

type MessageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
}

// NewMessageService wires the message and user repositories.
func NewMessageService(repos *repository.Repositories) *MessageService {
	return &MessageService{messages: repos.Messages, users: repos.Users}
}

// Send delivers a message from the user registered for senderUID.
func (s *MessageService) Send(ctx context.Context, senderUID string, req validation.SendMessageRequest) (*models.Message, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	sender, err := s.users.FindByUID(ctx, senderUID)
	if err != nil {
		return nil, missing("sender", err)
	}
	recipientID := validation.ObjectID(req.Recipient)
	if _, err := s.users.FindByID(ctx, recipientID); err != nil {
		return nil, missing("recipient", err)
	}

	msg := &models.Message{
		Sender:    sender.ID,
		Recipient: recipientID,
		Content:   req.Content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Inbox lists messages received by userID.
func (s *MessageService) Inbox(ctx context.Context, userID string) ([]models.Message, error) {
	uid, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	return s.messages.ListByRecipient(ctx, uid)
}

// Conversation lists messages exchanged between two users in either direction.
func (s *MessageService) Conversation(ctx context.Context, userA, userB string) ([]models.Message, error) {
	a, err := parseID(userA, "user")
	if err != nil {
		return nil, err
	}
	b, err := parseID(userB, "user")
	if err != nil {
		return nil, err
	}
	return s.messages.ListConversation(ctx, a, b)
}

// MarkRead flags a message as read.
func (s *MessageService) MarkRead(ctx context.Context, id string) (*models.Message, error) {
	oid, err := parseID(id, "message")
	if err != nil {
		return nil, err
	}
	return s.messages.MarkRead(ctx, oid)
}
