package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/anonto42/warbler/internal/models"
	"github.com/anonto42/warbler/internal/repositories"
	"go.uber.org/zap"
)

type MessageService struct {
	logger   *zap.Logger
	messages repositories.MessageRepository
}

func NewMessageService(logger *zap.Logger, messages repositories.MessageRepository) *MessageService {
	return &MessageService{
		logger:   logger,
		messages: messages,
	}
}

// Create posts text as author. The timestamp is assigned by the store.
func (s *MessageService) Create(ctx context.Context, author *models.User, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" || utf8.RuneCountInString(text) > models.MaxMessageLength {
		return nil, ErrInvalidMessage
	}

	message := &models.Message{Text: text, UserID: author.ID}
	if err := s.messages.CreateMessage(ctx, message); err != nil {
		s.logger.Sugar().Errorf("failed to create message for user(%d): %s", author.ID, err.Error())
		return nil, ErrInternal
	}
	message.User = *author
	return message, nil
}

func (s *MessageService) Get(ctx context.Context, id uint) (*models.Message, error) {
	message, err := s.messages.GetMessageByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to get message(%d): %s", id, err.Error())
		return nil, ErrInternal
	}
	return message, nil
}

// Delete removes message id when actor wrote it and returns ErrNotOwner otherwise.
func (s *MessageService) Delete(ctx context.Context, actor *models.User, id uint) error {
	message, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if message.UserID != actor.ID {
		return ErrNotOwner
	}
	if err := s.messages.DeleteMessage(ctx, id); err != nil {
		s.logger.Sugar().Errorf("failed to delete message(%d): %s", id, err.Error())
		return ErrInternal
	}
	return nil
}
