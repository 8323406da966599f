package repositories

import (
	"context"

	"github.com/anonto42/warbler/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation = "23505"

	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	SearchUsers(ctx context.Context, query string) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id uint) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser inserts the user in its own transaction. A unique violation is rolled back
// and reported as ErrDuplicateEmail or ErrDuplicateUsername.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err != nil {
		user.ID = 0
		return r.classifyWriteError(ctx, err, user, 0)
	}
	return nil
}

// GetUserByID retrieves a user by ID from PostgreSQL
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFoundOr(err, "getting user by id failed")
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFoundOr(err, "getting user by username failed")
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFoundOr(err, "getting user by email failed")
	}
	return &user, nil
}

// GetUsers retrieves all users ordered by username
func (r *PostgresUserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("username").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "listing users failed")
	}
	return users, nil
}

// SearchUsers returns users whose username contains query
func (r *PostgresUserRepository) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("username LIKE ?", "%"+query+"%").
		Order("username").
		Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "searching users failed")
	}
	return users, nil
}

// UpdateUser saves every column of user in one transaction.
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(user).Error
	})
	if err != nil {
		return r.classifyWriteError(ctx, err, user, user.ID)
	}
	return nil
}

// DeleteUser deletes a user; messages, follows and likes go with it through ON DELETE CASCADE.
func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return errors.Wrap(err, "deleting user failed")
	}
	return nil
}

// classifyWriteError turns a unique violation into a duplicate error. Postgres only names
// the first index it trips over, so the email is re-checked first to make email win when
// both collide.
func (r *PostgresUserRepository) classifyWriteError(ctx context.Context, err error, user *models.User, selfID uint) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return errors.Wrap(err, "saving user failed")
	}

	if r.takenByOther(ctx, "email = ?", user.Email, selfID) {
		return ErrDuplicateEmail
	}

	switch pgErr.ConstraintName {
	case usernameConstraint:
		return ErrDuplicateUsername
	case emailConstraint:
		return ErrDuplicateEmail
	}
	return errors.Wrapf(err, "saving user violated constraint %q", pgErr.ConstraintName)
}

func (r *PostgresUserRepository) takenByOther(ctx context.Context, where string, value string, selfID uint) bool {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where(where, value).
		Where("id <> ?", selfID).
		Count(&count).Error
	return err == nil && count > 0
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return errors.Wrap(err, msg)
}
