// Package session keeps per-client state on the server. The client only holds a signed
// cookie naming its session key; user id and flash messages live in a Store.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("session not found")

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Message  string `json:"message" bson:"message"`
	Category string `json:"category" bson:"category"`
}

// Data is what a Store persists for one session key.
type Data struct {
	UserID  uint    `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Flashes []Flash `json:"flashes,omitempty" bson:"flashes,omitempty"`
}

// Store is a key/value store scoped to one client session.
type Store interface {
	Get(ctx context.Context, key string) (*Data, error)
	Save(ctx context.Context, key string, data *Data, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Session is the request-scoped view of one client's data.
type Session struct {
	key      string
	staleKey string
	data     Data
	dirty    bool
}

func newSession() *Session {
	return &Session{key: uuid.NewString()}
}

func (s *Session) Key() string {
	return s.key
}

// UserID returns the logged in user, if any.
func (s *Session) UserID() (uint, bool) {
	return s.data.UserID, s.data.UserID != 0
}

// SetUser records a login. The session key is rotated so a key issued before login
// cannot be reused after it.
func (s *Session) SetUser(id uint) {
	s.rotate()
	s.data.UserID = id
	s.dirty = true
}

// ClearUser forgets the logged in user and rotates the key, so a cookie captured while
// logged in no longer addresses this session. Calling it on an anonymous session is a
// no-op.
func (s *Session) ClearUser() {
	if s.data.UserID == 0 {
		return
	}
	s.rotate()
	s.data.UserID = 0
	s.dirty = true
}

func (s *Session) AddFlash(message, category string) {
	s.data.Flashes = append(s.data.Flashes, Flash{Message: message, Category: category})
	s.dirty = true
}

// Flashes returns the pending flash messages and removes them from the session.
func (s *Session) Flashes() []Flash {
	if len(s.data.Flashes) == 0 {
		return nil
	}
	flashes := s.data.Flashes
	s.data.Flashes = nil
	s.dirty = true
	return flashes
}

func (s *Session) Dirty() bool {
	return s.dirty
}

func (s *Session) empty() bool {
	return s.data.UserID == 0 && len(s.data.Flashes) == 0
}

func (s *Session) rotate() {
	if s.staleKey == "" {
		s.staleKey = s.key
	}
	s.key = uuid.NewString()
}
