package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// DatabaseStore keeps sessions in the sessions table (sid, sess, expire),
// the layout used by connect-pg-simple so existing rows stay readable.
type DatabaseStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewDatabaseStore(db *sqlx.DB) *DatabaseStore {
	return &DatabaseStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

type sessionRow struct {
	SID    string    `db:"sid"`
	Sess   string    `db:"sess"`
	Expire time.Time `db:"expire"`
}

func (s *DatabaseStore) Get(ctx context.Context, id string) (*Session, error) {
	var row sessionRow
	query := s.db.Rebind(`SELECT sid, sess, expire FROM sessions WHERE sid = ? AND expire > ?`)
	if err := s.db.GetContext(ctx, &row, query, id, s.now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(row.Sess), &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	sess.ID = row.SID
	sess.ExpiresAt = row.Expire.UTC()
	return &sess, nil
}

func (s *DatabaseStore) Save(ctx context.Context, sess *Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	query := s.db.Rebind(`INSERT INTO sessions (sid, sess, expire) VALUES (?, ?, ?)
		ON CONFLICT (sid) DO UPDATE SET sess = excluded.sess, expire = excluded.expire`)
	if _, err := s.db.ExecContext(ctx, query, sess.ID, string(payload), sess.ExpiresAt.UTC()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *DatabaseStore) Destroy(ctx context.Context, id string) error {
	query := s.db.Rebind(`DELETE FROM sessions WHERE sid = ?`)
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *DatabaseStore) DeleteExpired(ctx context.Context) (int64, error) {
	query := s.db.Rebind(`DELETE FROM sessions WHERE expire <= ?`)
	res, err := s.db.ExecContext(ctx, query, s.now())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}
