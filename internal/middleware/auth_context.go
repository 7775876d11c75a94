package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"pet-adoption/internal/platform/httpx"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// DebugUserHeader solo se acepta cuando no hay verifier (modo dev).
const DebugUserHeader = "X-Debug-User-ID"

type AuthOptions struct {
	Verifier   auth.AuthVerifier
	Sessions   auth.SessionStore
	CookieName string
	// Syncer hace upsert del usuario al resolver claims por bearer o header dev;
	// si los claims coinciden con lo guardado no escribe.
	Syncer auth.UserSyncer
	Log    logger.Logger
}

// AuthContext resuelve la identidad en este orden:
// - cookie de sesión (si hay store) => claims guardados en la sesión.
// - Bearer token (si hay verifier) => Verify().
// - sin verifier => modo dev: header X-Debug-User-ID.
// Si nada aplica el request sigue sin claims; RequireAuth decide el 401.
func AuthContext(opts AuthOptions) func(http.Handler) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if opts.Sessions != nil && opts.CookieName != "" {
				if c, err := r.Cookie(opts.CookieName); err == nil && c.Value != "" {
					s, err := opts.Sessions.Get(ctx, c.Value)
					switch {
					case err == nil:
						next.ServeHTTP(w, r.WithContext(WithClaims(ctx, s.Claims)))
						return
					case !errors.Is(err, auth.ErrSessionNotFound):
						log.Warn("session lookup failed", map[string]any{"error": err})
					}
				}
			}

			if opts.Verifier == nil {
				if uid := strings.TrimSpace(r.Header.Get(DebugUserHeader)); uid != "" {
					claims := auth.Claims{UserID: uid}
					syncUser(ctx, opts.Syncer, claims, log)
					next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
					return
				}

				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := opts.Verifier.Verify(ctx, token)
			if err != nil {
				// No cortamos aquí. RequireAuth decide el 401.
				log.Debug("bearer token rejected", map[string]any{"error": err})
				next.ServeHTTP(w, r)
				return
			}

			syncUser(ctx, opts.Syncer, claims, log)
			next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
		})
	}
}

// RequireAuth corta con 401 si AuthContext no dejó claims.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetClaims(r.Context()); !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin: autenticado y con id en la lista de admins.
func RequireAdmin(adminIDs []string) func(http.Handler) http.Handler {
	admins := make(map[string]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		if id = strings.TrimSpace(id); id != "" {
			admins[id] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, ok := GetClaims(r.Context())
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if _, isAdmin := admins[c.UserID]; !isAdmin {
				httpx.WriteError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// UserID devuelve "" si el request es anónimo.
func UserID(ctx context.Context) string {
	c, _ := GetClaims(ctx)
	return c.UserID
}

func syncUser(ctx context.Context, syncer auth.UserSyncer, c auth.Claims, log logger.Logger) {
	if syncer == nil {
		return
	}
	if err := syncer.SyncFromClaims(ctx, c); err != nil {
		log.Warn("user sync failed", map[string]any{"error": err, "user_id": c.UserID})
	}
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
