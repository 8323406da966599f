package services

import (
	"errors"

	"github.com/anonto42/warbler/internal/repositories"
)

var (
	ErrInternal           = errors.New("internal server error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrOwnMessage         = errors.New("cannot like your own message")
	ErrNotOwner           = errors.New("message belongs to another user")
	ErrInvalidMessage     = errors.New("message must be between 1 and 140 characters")

	ErrNotFound          = repositories.ErrNotFound
	ErrDuplicateUsername = repositories.ErrDuplicateUsername
	ErrDuplicateEmail    = repositories.ErrDuplicateEmail
)
