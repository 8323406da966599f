package services

import (
	"context"
	"errors"

	"github.com/anonto42/warbler/internal/models"
	"github.com/anonto42/warbler/internal/repositories"
	"go.uber.org/zap"
)

type LikeResult string

const (
	LikeAdded   LikeResult = "like added"
	LikeRemoved LikeResult = "like removed"
)

// ProfileStats are the counters shown on a profile header.
type ProfileStats struct {
	Messages  int64
	Following int64
	Followers int64
	Likes     int64
}

// SocialGraph manages follow edges between users and like edges between users and messages.
type SocialGraph struct {
	logger   *zap.Logger
	users    repositories.UserRepository
	messages repositories.MessageRepository
	follows  repositories.FollowRepository
	likes    repositories.LikeRepository
}

func NewSocialGraph(logger *zap.Logger, repos Repositories) *SocialGraph {
	return &SocialGraph{
		logger:   logger,
		users:    repos.Users,
		messages: repos.Messages,
		follows:  repos.Follows,
		likes:    repos.Likes,
	}
}

// Follow adds the edge follower -> targetID. Following someone twice leaves one edge.
// The existence check and insert are not atomic; the (follower_id, followed_id) primary
// key is what stops a concurrent duplicate.
func (s *SocialGraph) Follow(ctx context.Context, follower *models.User, targetID uint) (*models.User, error) {
	target, err := s.lookupUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.ID == follower.ID {
		return nil, ErrSelfFollow
	}

	following, err := s.follows.IsFollowing(ctx, follower.ID, target.ID)
	if err != nil {
		return nil, s.internal("failed to check follow", err)
	}
	if following {
		return target, nil
	}

	if err := s.follows.CreateFollow(ctx, &models.Follow{FollowerID: follower.ID, FollowedID: target.ID}); err != nil {
		return nil, s.internal("failed to create follow", err)
	}
	return target, nil
}

// Unfollow removes the edge follower -> targetID; a missing edge is not an error.
func (s *SocialGraph) Unfollow(ctx context.Context, follower *models.User, targetID uint) (*models.User, error) {
	target, err := s.lookupUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := s.follows.DeleteFollow(ctx, follower.ID, target.ID); err != nil {
		return nil, s.internal("failed to delete follow", err)
	}
	return target, nil
}

// IsFollowing reports whether a follows b.
func (s *SocialGraph) IsFollowing(ctx context.Context, a, b uint) (bool, error) {
	ok, err := s.follows.IsFollowing(ctx, a, b)
	if err != nil {
		return false, s.internal("failed to check follow", err)
	}
	return ok, nil
}

// IsFollowedBy reports whether a is followed by b.
func (s *SocialGraph) IsFollowedBy(ctx context.Context, a, b uint) (bool, error) {
	return s.IsFollowing(ctx, b, a)
}

func (s *SocialGraph) Following(ctx context.Context, userID uint) ([]models.User, error) {
	users, err := s.follows.GetFollowing(ctx, userID)
	if err != nil {
		return nil, s.internal("failed to list following", err)
	}
	return users, nil
}

func (s *SocialGraph) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	users, err := s.follows.GetFollowers(ctx, userID)
	if err != nil {
		return nil, s.internal("failed to list followers", err)
	}
	return users, nil
}

// Like adds the edge user -> message. Liking one's own message is refused.
func (s *SocialGraph) Like(ctx context.Context, user *models.User, message *models.Message) error {
	if message.UserID == user.ID {
		return ErrOwnMessage
	}
	if err := s.likes.CreateLike(ctx, &models.Like{UserID: user.ID, MessageID: message.ID}); err != nil {
		return s.internal("failed to create like", err)
	}
	return nil
}

// Unlike removes the edge user -> message if present.
func (s *SocialGraph) Unlike(ctx context.Context, user *models.User, message *models.Message) error {
	if err := s.likes.DeleteLike(ctx, user.ID, message.ID); err != nil {
		return s.internal("failed to delete like", err)
	}
	return nil
}

func (s *SocialGraph) HasLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	ok, err := s.likes.HasUserLikedMessage(ctx, userID, messageID)
	if err != nil {
		return false, s.internal("failed to check like", err)
	}
	return ok, nil
}

// ToggleLike flips whether user likes messageID. It returns ErrOwnMessage, without
// touching any edge, when the user wrote the message.
func (s *SocialGraph) ToggleLike(ctx context.Context, user *models.User, messageID uint) (LikeResult, error) {
	message, err := s.messages.GetMessageByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", s.internal("failed to get message", err)
	}
	if message.UserID == user.ID {
		return "", ErrOwnMessage
	}

	liked, err := s.HasLiked(ctx, user.ID, message.ID)
	if err != nil {
		return "", err
	}
	if liked {
		if err := s.Unlike(ctx, user, message); err != nil {
			return "", err
		}
		return LikeRemoved, nil
	}
	if err := s.Like(ctx, user, message); err != nil {
		return "", err
	}
	return LikeAdded, nil
}

func (s *SocialGraph) LikedMessages(ctx context.Context, userID uint) ([]models.Message, error) {
	messages, err := s.likes.GetLikedMessages(ctx, userID)
	if err != nil {
		return nil, s.internal("failed to list liked messages", err)
	}
	return messages, nil
}

// LikedIn reports which of messages userID has liked.
func (s *SocialGraph) LikedIn(ctx context.Context, userID uint, messages []models.Message) (map[uint]bool, error) {
	ids := make([]uint, len(messages))
	for i, m := range messages {
		ids[i] = m.ID
	}
	liked, err := s.likes.GetLikedMessageIDs(ctx, userID, ids)
	if err != nil {
		return nil, s.internal("failed to list liked message ids", err)
	}
	return liked, nil
}

func (s *SocialGraph) Stats(ctx context.Context, userID uint) (ProfileStats, error) {
	var (
		stats ProfileStats
		err   error
	)
	if stats.Messages, err = s.messages.GetMessagesCountByUserID(ctx, userID); err != nil {
		return ProfileStats{}, s.internal("failed to count messages", err)
	}
	if stats.Following, err = s.follows.GetFollowingCount(ctx, userID); err != nil {
		return ProfileStats{}, s.internal("failed to count following", err)
	}
	if stats.Followers, err = s.follows.GetFollowersCount(ctx, userID); err != nil {
		return ProfileStats{}, s.internal("failed to count followers", err)
	}
	if stats.Likes, err = s.likes.GetLikesCountByUserID(ctx, userID); err != nil {
		return ProfileStats{}, s.internal("failed to count likes", err)
	}
	return stats, nil
}

// User returns the user with id or ErrNotFound.
func (s *SocialGraph) User(ctx context.Context, id uint) (*models.User, error) {
	return s.lookupUser(ctx, id)
}

// Users lists every user ordered by username, or those whose username contains query.
func (s *SocialGraph) Users(ctx context.Context, query string) ([]models.User, error) {
	var (
		users []models.User
		err   error
	)
	if query == "" {
		users, err = s.users.GetUsers(ctx)
	} else {
		users, err = s.users.SearchUsers(ctx, query)
	}
	if err != nil {
		return nil, s.internal("failed to list users", err)
	}
	return users, nil
}

func (s *SocialGraph) lookupUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, s.internal("failed to get user", err)
	}
	return user, nil
}

func (s *SocialGraph) internal(msg string, err error) error {
	s.logger.Sugar().Errorf("%s: %s", msg, err.Error())
	return ErrInternal
}
