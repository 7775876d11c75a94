package auth

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// SessionStore guarda sesiones por sid. Get devuelve ErrSessionNotFound
// tanto si no existe como si ya expiró.
type SessionStore interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sid string) (Session, error)
	Delete(ctx context.Context, sid string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// UserSyncer lo implementa el módulo users: upsert del perfil a partir de claims.
type UserSyncer interface {
	SyncFromClaims(ctx context.Context, c Claims) error
}
