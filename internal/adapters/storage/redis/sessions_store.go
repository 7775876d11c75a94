package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pet-adoption/internal/ports/auth"

	goredis "github.com/go-redis/redis/v8"
)

const keyPrefix = "sess:"

type sessionPayload struct {
	Claims    auth.Claims `json:"claims"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// SessionStore guarda cada sesión con TTL; Redis la expira solo.
type SessionStore struct {
	client *goredis.Client
	now    func() time.Time
}

// Open parsea REDIS_URL y verifica la conexión.
func Open(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func NewSessionStore(client *goredis.Client) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

func (s *SessionStore) Create(ctx context.Context, sess auth.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	b, err := json.Marshal(sessionPayload{Claims: sess.Claims, ExpiresAt: sess.ExpiresAt})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.client.Set(ctx, keyPrefix+sess.ID, b, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, sid string) (auth.Session, error) {
	b, err := s.client.Get(ctx, keyPrefix+sid).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return auth.Session{}, auth.ErrSessionNotFound
		}
		return auth.Session{}, err
	}

	var p sessionPayload
	if err := json.Unmarshal(b, &p); err != nil {
		return auth.Session{}, fmt.Errorf("decode session: %w", err)
	}
	sess := auth.Session{ID: sid, Claims: p.Claims, ExpiresAt: p.ExpiresAt}
	if sess.Expired(s.now()) {
		return auth.Session{}, auth.ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, sid string) error {
	return s.client.Del(ctx, keyPrefix+sid).Err()
}

// DeleteExpired no hace nada: las claves llevan TTL.
func (s *SessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
