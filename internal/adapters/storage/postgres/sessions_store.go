package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pet-adoption/internal/ports/auth"

	"github.com/jmoiron/sqlx"
)

// sessionPayload es lo que va en sessions.sess.
type sessionPayload struct {
	Claims auth.Claims `json:"claims"`
}

// SessionStore usa la tabla sessions (sid, sess, expire).
type SessionStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSessionStore(db *sqlx.DB) *SessionStore {
	return &SessionStore{db: db, now: time.Now}
}

func (s *SessionStore) Create(ctx context.Context, sess auth.Session) error {
	b, err := json.Marshal(sessionPayload{Claims: sess.Claims})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (sid, sess, expire)
		VALUES ($1, $2, $3)
		ON CONFLICT (sid) DO UPDATE SET sess = EXCLUDED.sess, expire = EXCLUDED.expire
	`, sess.ID, string(b), sess.ExpiresAt)
	return err
}

func (s *SessionStore) Get(ctx context.Context, sid string) (auth.Session, error) {
	var row struct {
		Sess   []byte    `db:"sess"`
		Expire time.Time `db:"expire"`
	}
	err := s.db.GetContext(ctx, &row, `
		SELECT sess, expire FROM sessions WHERE sid = $1 AND expire > $2
	`, sid, s.now())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.Session{}, auth.ErrSessionNotFound
		}
		return auth.Session{}, err
	}

	var p sessionPayload
	if err := json.Unmarshal(row.Sess, &p); err != nil {
		return auth.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return auth.Session{ID: sid, Claims: p.Claims, ExpiresAt: row.Expire}, nil
}

func (s *SessionStore) Delete(ctx context.Context, sid string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE sid = $1`, sid)
	return err
}

func (s *SessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expire <= $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
