package repositories

import (
	"context"

	"github.com/anonto42/warbler/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(ctx context.Context, follow *models.Follow) error
	DeleteFollow(ctx context.Context, followerID, followedID uint) error
	IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error)
	GetFollowers(ctx context.Context, userID uint) ([]models.User, error)
	GetFollowing(ctx context.Context, userID uint) ([]models.User, error)
	GetFollowersCount(ctx context.Context, userID uint) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint) (int64, error)
	GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts the edge. An existing edge is left untouched.
func (r *PostgresFollowRepository) CreateFollow(ctx context.Context, follow *models.Follow) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow).Error
	return errors.Wrap(err, "creating follow failed")
}

// DeleteFollow removes the edge if it exists. A missing edge is not an error.
func (r *PostgresFollowRepository) DeleteFollow(ctx context.Context, followerID, followedID uint) error {
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
	return errors.Wrap(err, "deleting follow failed")
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "checking follow failed")
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) GetFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	db := r.db.WithContext(ctx)
	var users []models.User
	err := db.Where("id IN (?)",
		db.Model(&models.Follow{}).Select("follower_id").Where("followed_id = ?", userID),
	).Order("username").Find(&users).Error
	return users, errors.Wrap(err, "listing followers failed")
}

func (r *PostgresFollowRepository) GetFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	db := r.db.WithContext(ctx)
	var users []models.User
	err := db.Where("id IN (?)",
		db.Model(&models.Follow{}).Select("followed_id").Where("follower_id = ?", userID),
	).Order("username").Find(&users).Error
	return users, errors.Wrap(err, "listing following failed")
}

func (r *PostgresFollowRepository) GetFollowersCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("followed_id = ?", userID).Count(&count).Error
	return count, errors.Wrap(err, "counting followers failed")
}

func (r *PostgresFollowRepository) GetFollowingCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, errors.Wrap(err, "counting following failed")
}

func (r *PostgresFollowRepository) GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Pluck("followed_id", &ids).Error
	return ids, errors.Wrap(err, "listing following ids failed")
}
