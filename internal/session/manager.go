package session

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const CookieName = "warbler_session"

// Manager loads a Session for each request and writes it back before the response
// headers go out.
type Manager struct {
	store  Store
	codec  *CookieCodec
	ttl    time.Duration
	secure bool
	logger *zap.Logger
}

func NewManager(logger *zap.Logger, store Store, secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		store:  store,
		codec:  NewCookieCodec(secret, ttl),
		ttl:    ttl,
		secure: secure,
		logger: logger,
	}
}

// Load returns the session named by the request cookie. A missing, forged or expired
// cookie, or one whose data is gone from the store, yields a fresh empty session.
func (m *Manager) Load(ctx context.Context, r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return newSession()
	}

	key, err := m.codec.Decode(cookie.Value)
	if err != nil {
		m.logger.Debug("discarding session cookie", zap.Error(err))
		return newSession()
	}

	data, err := m.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.logger.Sugar().Errorf("failed to load session: %s", err.Error())
		}
		return newSession()
	}
	return &Session{key: key, data: *data}
}

// Commit persists a changed session and refreshes the cookie. Untouched sessions and
// new sessions that never received data write nothing.
func (m *Manager) Commit(ctx context.Context, w http.ResponseWriter, s *Session) {
	if !s.dirty {
		return
	}

	if s.staleKey != "" {
		if err := m.store.Delete(ctx, s.staleKey); err != nil {
			m.logger.Sugar().Errorf("failed to delete rotated session: %s", err.Error())
		}
		s.staleKey = ""
	}

	if s.empty() {
		if err := m.store.Delete(ctx, s.key); err != nil {
			m.logger.Sugar().Errorf("failed to delete session: %s", err.Error())
		}
		http.SetCookie(w, m.cookie("", -1))
		s.dirty = false
		return
	}

	if err := m.store.Save(ctx, s.key, &s.data, m.ttl); err != nil {
		m.logger.Sugar().Errorf("failed to save session: %s", err.Error())
		return
	}

	value, err := m.codec.Encode(s.key)
	if err != nil {
		m.logger.Sugar().Errorf("failed to encode session cookie: %s", err.Error())
		return
	}
	http.SetCookie(w, m.cookie(value, int(m.ttl.Seconds())))
	s.dirty = false
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
