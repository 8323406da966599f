package repositories

import (
	"context"

	"github.com/anonto42/warbler/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, userID, messageID uint) error
	HasUserLikedMessage(ctx context.Context, userID, messageID uint) (bool, error)
	GetLikedMessages(ctx context.Context, userID uint) ([]models.Message, error)
	GetLikedMessageIDs(ctx context.Context, userID uint, messageIDs []uint) (map[uint]bool, error)
	GetLikesCountByUserID(ctx context.Context, userID uint) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts the edge; liking twice keeps a single row.
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like).Error
	return errors.Wrap(err, "creating like failed")
}

// DeleteLike removes the edge if present
func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, userID, messageID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{}).Error
	return errors.Wrap(err, "deleting like failed")
}

func (r *PostgresLikeRepository) HasUserLikedMessage(ctx context.Context, userID, messageID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "checking like failed")
	}
	return count > 0, nil
}

// GetLikedMessages returns the messages userID liked, newest first
func (r *PostgresLikeRepository) GetLikedMessages(ctx context.Context, userID uint) ([]models.Message, error) {
	db := r.db.WithContext(ctx)
	var messages []models.Message
	err := db.Preload("User").
		Where("id IN (?)", db.Model(&models.Like{}).Select("message_id").Where("user_id = ?", userID)).
		Order("messages.timestamp desc, messages.id desc").
		Find(&messages).Error
	return messages, errors.Wrap(err, "listing liked messages failed")
}

// GetLikedMessageIDs reports which of messageIDs userID has liked
func (r *PostgresLikeRepository) GetLikedMessageIDs(ctx context.Context, userID uint, messageIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(messageIDs))
	if len(messageIDs) == 0 {
		return liked, nil
	}

	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND message_id IN ?", userID, messageIDs).
		Pluck("message_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "listing liked message ids failed")
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (r *PostgresLikeRepository) GetLikesCountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("user_id = ?", userID).Count(&count).Error
	return count, errors.Wrap(err, "counting likes failed")
}
