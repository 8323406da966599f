package repositories

import (
	"context"
	"time"

	"github.com/anonto42/warbler/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	GetMessageByID(ctx context.Context, id uint) (*models.Message, error)
	GetMessagesByUserID(ctx context.Context, userID uint, limit int) ([]models.Message, error)
	GetMessagesByAuthors(ctx context.Context, authorIDs []uint, limit int) ([]models.Message, error)
	GetMessagesCountByUserID(ctx context.Context, userID uint) (int64, error)
	DeleteMessage(ctx context.Context, id uint) error
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// CreateMessage inserts the message, stamping it with the current time when unset.
func (r *PostgresMessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(message).Error
	return errors.Wrap(err, "creating message failed")
}

func (r *PostgresMessageRepository) GetMessageByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).Preload("User").First(&message, id).Error; err != nil {
		return nil, notFoundOr(err, "getting message failed")
	}
	return &message, nil
}

// GetMessagesByUserID returns up to limit messages by userID, newest first
func (r *PostgresMessageRepository) GetMessagesByUserID(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	return r.GetMessagesByAuthors(ctx, []uint{userID}, limit)
}

// GetMessagesByAuthors returns up to limit messages written by any of authorIDs, newest first
func (r *PostgresMessageRepository) GetMessagesByAuthors(ctx context.Context, authorIDs []uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	if len(authorIDs) == 0 {
		return messages, nil
	}
	err := r.db.WithContext(ctx).Preload("User").
		Where("user_id IN ?", authorIDs).
		Order("messages.timestamp desc, messages.id desc").
		Limit(limit).
		Find(&messages).Error
	return messages, errors.Wrap(err, "listing messages failed")
}

func (r *PostgresMessageRepository) GetMessagesCountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).Where("user_id = ?", userID).Count(&count).Error
	return count, errors.Wrap(err, "counting messages failed")
}

// DeleteMessage deletes a message by ID; likes of it cascade
func (r *PostgresMessageRepository) DeleteMessage(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Delete(&models.Message{}, id).Error
	return errors.Wrap(err, "deleting message failed")
}
