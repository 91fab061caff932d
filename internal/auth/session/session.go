// Package session keeps the server-side login sessions and the signed cookie
// that points at them.
package session

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNoSession      = errors.New("session: no session")
	ErrInvalidCookie  = errors.New("session: invalid cookie")
	ErrSessionExpired = errors.New("session: expired")
)

type Session struct {
	ID        string    `json:"-"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persists sessions by id. Get returns nil, nil for unknown or expired
// ids.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Destroy(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
