package services

import (
	"context"

	"github.com/anonto42/warbler/internal/models"
	"github.com/anonto42/warbler/internal/repositories"
	"go.uber.org/zap"
)

// FeedLimit caps both the home feed and profile timelines. There is no pagination.
const FeedLimit = 100

type FeedAssembler struct {
	logger   *zap.Logger
	follows  repositories.FollowRepository
	messages repositories.MessageRepository
}

func NewFeedAssembler(logger *zap.Logger, follows repositories.FollowRepository, messages repositories.MessageRepository) *FeedAssembler {
	return &FeedAssembler{
		logger:   logger,
		follows:  follows,
		messages: messages,
	}
}

// BuildFeed returns the newest FeedLimit messages written by user or anyone user follows.
// An anonymous caller (nil user) gets nothing.
func (f *FeedAssembler) BuildFeed(ctx context.Context, user *models.User) ([]models.Message, error) {
	if user == nil {
		return nil, nil
	}

	authorIDs, err := f.follows.GetFollowingIDs(ctx, user.ID)
	if err != nil {
		f.logger.Sugar().Errorf("failed to get following ids of user(%d): %s", user.ID, err.Error())
		return nil, ErrInternal
	}
	authorIDs = append(authorIDs, user.ID)

	messages, err := f.messages.GetMessagesByAuthors(ctx, authorIDs, FeedLimit)
	if err != nil {
		f.logger.Sugar().Errorf("failed to get feed of user(%d): %s", user.ID, err.Error())
		return nil, ErrInternal
	}
	return messages, nil
}

// UserMessages returns the newest FeedLimit messages written by userID.
func (f *FeedAssembler) UserMessages(ctx context.Context, userID uint) ([]models.Message, error) {
	messages, err := f.messages.GetMessagesByUserID(ctx, userID, FeedLimit)
	if err != nil {
		f.logger.Sugar().Errorf("failed to get messages of user(%d): %s", userID, err.Error())
		return nil, ErrInternal
	}
	return messages, nil
}
