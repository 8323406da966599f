// Package memory keeps every repository in process memory. It honors the same invariants
// as the Postgres schema (unique username and email, one edge per pair, cascading deletes)
// and backs tests and DATABASE_URL=memory development runs.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/warbler/internal/models"
	"github.com/anonto42/warbler/internal/repositories"
	"github.com/pkg/errors"
)

type edge struct {
	from, to uint
}

type Store struct {
	mu            sync.RWMutex
	nextUserID    uint
	nextMessageID uint
	users         map[uint]models.User
	messages      map[uint]models.Message
	follows       map[edge]struct{} // follower -> followed
	likes         map[edge]struct{} // user -> message
}

var (
	_ repositories.UserRepository    = (*Store)(nil)
	_ repositories.MessageRepository = (*Store)(nil)
	_ repositories.FollowRepository  = (*Store)(nil)
	_ repositories.LikeRepository    = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		users:    make(map[uint]models.User),
		messages: make(map[uint]models.Message),
		follows:  make(map[edge]struct{}),
		likes:    make(map[edge]struct{}),
	}
}

// Users

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conflict(user, 0); err != nil {
		return err
	}
	s.nextUserID++
	now := time.Now().UTC()
	user.ID = s.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return s.findUser(func(u models.User) bool { return u.Username == username })
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return s.findUser(func(u models.User) bool { return u.Email == email })
}

func (s *Store) GetUsers(_ context.Context) ([]models.User, error) {
	return s.filterUsers(func(models.User) bool { return true }), nil
}

func (s *Store) SearchUsers(_ context.Context, query string) ([]models.User, error) {
	return s.filterUsers(func(u models.User) bool { return strings.Contains(u.Username, query) }), nil
}

func (s *Store) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	if err := s.conflict(user, user.ID); err != nil {
		return err
	}
	user.UpdatedAt = time.Now().UTC()
	s.users[user.ID] = *user
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	for msgID, msg := range s.messages {
		if msg.UserID == id {
			s.deleteMessageLocked(msgID)
		}
	}
	for e := range s.follows {
		if e.from == id || e.to == id {
			delete(s.follows, e)
		}
	}
	for e := range s.likes {
		if e.from == id {
			delete(s.likes, e)
		}
	}
	return nil
}

// conflict mirrors the unique indexes; email is checked first.
func (s *Store) conflict(user *models.User, selfID uint) error {
	for id, u := range s.users {
		if id != selfID && u.Email == user.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	for id, u := range s.users {
		if id != selfID && u.Username == user.Username {
			return repositories.ErrDuplicateUsername
		}
	}
	return nil
}

func (s *Store) findUser(match func(models.User) bool) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *Store) filterUsers(match func(models.User) bool) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := []models.User{}
	for _, u := range s.users {
		if match(u) {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users
}

func (s *Store) usersByID(ids []uint) []models.User {
	users := []models.User{}
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users
}

// Messages

func (s *Store) CreateMessage(_ context.Context, message *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[message.UserID]; !ok {
		return errors.Errorf("creating message failed: user %d does not exist", message.UserID)
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}
	s.nextMessageID++
	message.ID = s.nextMessageID
	stored := *message
	stored.User = models.User{}
	s.messages[message.ID] = stored
	return nil
}

func (s *Store) GetMessageByID(_ context.Context, id uint) (*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	msg.User = s.users[msg.UserID]
	return &msg, nil
}

func (s *Store) GetMessagesByUserID(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	return s.GetMessagesByAuthors(ctx, []uint{userID}, limit)
}

func (s *Store) GetMessagesByAuthors(_ context.Context, authorIDs []uint, limit int) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	authors := make(map[uint]bool, len(authorIDs))
	for _, id := range authorIDs {
		authors[id] = true
	}
	messages := s.collectMessages(func(m models.Message) bool { return authors[m.UserID] })
	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

func (s *Store) GetMessagesCountByUserID(_ context.Context, userID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, m := range s.messages {
		if m.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (s *Store) DeleteMessage(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteMessageLocked(id)
	return nil
}

func (s *Store) deleteMessageLocked(id uint) {
	delete(s.messages, id)
	for e := range s.likes {
		if e.to == id {
			delete(s.likes, e)
		}
	}
}

// collectMessages returns matching messages newest first, with authors attached.
func (s *Store) collectMessages(match func(models.Message) bool) []models.Message {
	messages := []models.Message{}
	for _, m := range s.messages {
		if match(m) {
			m.User = s.users[m.UserID]
			messages = append(messages, m)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].Timestamp.Equal(messages[j].Timestamp) {
			return messages[i].ID > messages[j].ID
		}
		return messages[i].Timestamp.After(messages[j].Timestamp)
	})
	return messages
}

// Follows

func (s *Store) CreateFollow(_ context.Context, follow *models.Follow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[follow.FollowerID]; !ok {
		return errors.Errorf("creating follow failed: user %d does not exist", follow.FollowerID)
	}
	if _, ok := s.users[follow.FollowedID]; !ok {
		return errors.Errorf("creating follow failed: user %d does not exist", follow.FollowedID)
	}
	s.follows[edge{follow.FollowerID, follow.FollowedID}] = struct{}{}
	return nil
}

func (s *Store) DeleteFollow(_ context.Context, followerID, followedID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.follows, edge{followerID, followedID})
	return nil
}

func (s *Store) IsFollowing(_ context.Context, followerID, followedID uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.follows[edge{followerID, followedID}]
	return ok, nil
}

func (s *Store) GetFollowers(_ context.Context, userID uint) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []uint
	for e := range s.follows {
		if e.to == userID {
			ids = append(ids, e.from)
		}
	}
	return s.usersByID(ids), nil
}

func (s *Store) GetFollowing(_ context.Context, userID uint) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.usersByID(s.followingIDsLocked(userID)), nil
}

func (s *Store) GetFollowersCount(_ context.Context, userID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for e := range s.follows {
		if e.to == userID {
			count++
		}
	}
	return count, nil
}

func (s *Store) GetFollowingCount(_ context.Context, userID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.followingIDsLocked(userID))), nil
}

func (s *Store) GetFollowingIDs(_ context.Context, userID uint) ([]uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.followingIDsLocked(userID), nil
}

func (s *Store) followingIDsLocked(userID uint) []uint {
	ids := []uint{}
	for e := range s.follows {
		if e.from == userID {
			ids = append(ids, e.to)
		}
	}
	return ids
}

// FollowCount is the number of follow edges; tests use it to check idempotence.
func (s *Store) FollowCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.follows)
}

// Likes

func (s *Store) CreateLike(_ context.Context, like *models.Like) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.messages[like.MessageID]; !ok {
		return errors.Errorf("creating like failed: message %d does not exist", like.MessageID)
	}
	s.likes[edge{like.UserID, like.MessageID}] = struct{}{}
	return nil
}

func (s *Store) DeleteLike(_ context.Context, userID, messageID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.likes, edge{userID, messageID})
	return nil
}

func (s *Store) HasUserLikedMessage(_ context.Context, userID, messageID uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.likes[edge{userID, messageID}]
	return ok, nil
}

func (s *Store) GetLikedMessages(_ context.Context, userID uint) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectMessages(func(m models.Message) bool {
		_, ok := s.likes[edge{userID, m.ID}]
		return ok
	}), nil
}

func (s *Store) GetLikedMessageIDs(_ context.Context, userID uint, messageIDs []uint) (map[uint]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	liked := make(map[uint]bool, len(messageIDs))
	for _, id := range messageIDs {
		if _, ok := s.likes[edge{userID, id}]; ok {
			liked[id] = true
		}
	}
	return liked, nil
}

func (s *Store) GetLikesCountByUserID(_ context.Context, userID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for e := range s.likes {
		if e.from == userID {
			count++
		}
	}
	return count, nil
}

// LikeCount is the number of like edges.
func (s *Store) LikeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.likes)
}
