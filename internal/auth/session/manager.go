package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/frahmantamala/parc-info/internal"
	"github.com/google/uuid"
)

// Manager ties the store, the cookie codec and the cookie settings together.
type Manager struct {
	store Store
	codec *CookieCodec
	cfg   internal.SessionConfig
	now   func() time.Time
}

func NewManager(store Store, cfg internal.SessionConfig) *Manager {
	return &Manager{
		store: store,
		codec: NewCookieCodec(cfg.Secret),
		cfg:   cfg,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create opens a new session for userID and sets the cookie on w.
func (m *Manager) Create(ctx context.Context, w http.ResponseWriter, userID string) (*Session, error) {
	now := m.now()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.cfg.TTL),
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	value, err := m.codec.Encode(sess.ID, sess.ExpiresAt)
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, m.cookie(value, sess.ExpiresAt, int(m.cfg.TTL.Seconds())))
	return sess, nil
}

// Load resolves the session named by the request cookie. It returns
// ErrNoSession when the cookie is missing, forged, expired or points at a
// session the store no longer knows.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	c, err := r.Cookie(m.cfg.CookieName)
	if err != nil || c.Value == "" {
		return nil, ErrNoSession
	}

	id, err := m.codec.Decode(c.Value)
	if err != nil {
		return nil, ErrNoSession
	}

	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil || sess.Expired(m.now()) {
		return nil, ErrNoSession
	}
	return sess, nil
}

// Destroy removes the session behind the request cookie, if any, and expires
// the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	defer http.SetCookie(w, m.cookie("", time.Unix(0, 0), -1))

	c, err := r.Cookie(m.cfg.CookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	id, err := m.codec.Decode(c.Value)
	if err != nil {
		return nil
	}
	return m.store.Destroy(ctx, id)
}

func (m *Manager) cookie(value string, expires time.Time, maxAge int) *http.Cookie {
	path := m.cfg.CookiePath
	if path == "" {
		path = "/"
	}
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     path,
		Domain:   m.cfg.CookieDomain,
		Expires:  expires,
		MaxAge:   maxAge,
		Secure:   m.cfg.CookieSecure,
		HttpOnly: m.cfg.CookieHTTPOnly,
		SameSite: m.cfg.SameSite(),
	}
}
