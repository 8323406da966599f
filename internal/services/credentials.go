package services

import (
	"context"
	"errors"

	"github.com/anonto42/warbler/internal/models"
	"github.com/anonto42/warbler/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type SignupInput struct {
	Username       string
	Email          string
	Password       string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
}

type ProfileInput struct {
	Username       string
	Email          string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
}

// CredentialService owns password hashing, login checks and account lifecycle.
type CredentialService struct {
	logger *zap.Logger
	users  repositories.UserRepository
	cost   int
}

func NewCredentialService(logger *zap.Logger, users repositories.UserRepository) *CredentialService {
	return &CredentialService{
		logger: logger,
		users:  users,
		cost:   bcrypt.DefaultCost,
	}
}

// Signup hashes the password and stores the new user. It returns ErrDuplicateEmail or
// ErrDuplicateUsername when the account clashes with an existing one.
func (s *CredentialService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate password hash: %s", err.Error())
		return nil, ErrInternal
	}

	user := &models.User{
		Username:       in.Username,
		Email:          in.Email,
		Password:       string(hash),
		ImageURL:       orDefault(in.ImageURL, models.DefaultImageURL),
		HeaderImageURL: orDefault(in.HeaderImageURL, models.DefaultHeaderImageURL),
		Bio:            in.Bio,
		Location:       in.Location,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, err
		}
		s.logger.Sugar().Errorf("failed to create user(%s): %s", in.Username, err.Error())
		return nil, ErrInternal
	}
	return user, nil
}

// Authenticate returns the user when password matches. Unknown usernames and wrong
// passwords both yield ErrInvalidCredentials.
func (s *CredentialService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Sugar().Errorf("failed to get user(%s): %s", username, err.Error())
		return nil, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateProfile re-checks password before touching anything, then saves in. The returned
// user is a fresh copy; user itself is never modified.
func (s *CredentialService) UpdateProfile(ctx context.Context, user *models.User, password string, in ProfileInput) (*models.User, error) {
	current, err := s.Authenticate(ctx, user.Username, password)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Username = in.Username
	updated.Email = in.Email
	updated.ImageURL = orDefault(in.ImageURL, models.DefaultImageURL)
	updated.HeaderImageURL = orDefault(in.HeaderImageURL, models.DefaultHeaderImageURL)
	updated.Bio = in.Bio
	updated.Location = in.Location

	if err := s.users.UpdateUser(ctx, &updated); err != nil {
		if isDuplicate(err) {
			return nil, err
		}
		s.logger.Sugar().Errorf("failed to update user(%d): %s", user.ID, err.Error())
		return nil, ErrInternal
	}
	return &updated, nil
}

// DeleteAccount removes the user along with their messages and relationships.
func (s *CredentialService) DeleteAccount(ctx context.Context, user *models.User) error {
	if err := s.users.DeleteUser(ctx, user.ID); err != nil {
		s.logger.Sugar().Errorf("failed to delete user(%d): %s", user.ID, err.Error())
		return ErrInternal
	}
	return nil
}

// FindByEmail is used by federated sign-in, where the identity provider vouches for the email.
func (s *CredentialService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Sugar().Errorf("failed to get user by email: %s", err.Error())
		return nil, ErrInternal
	}
	return user, nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateEmail) || errors.Is(err, ErrDuplicateUsername)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
