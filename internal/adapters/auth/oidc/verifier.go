package oidc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/platform/httpclient"
	"pet-adoption/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("oidc userinfo url not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrUnauthorized  = errors.New("oidc token rejected")
	ErrUpstream      = errors.New("oidc upstream error")
)

type Config struct {
	UserInfoURL string
	Timeout     time.Duration
}

// Verifier implementa auth.AuthVerifier consultando el endpoint userinfo del IdP.
type Verifier struct {
	userInfoURL string
	client      *httpclient.Client
}

func NewVerifier(cfg Config) (*Verifier, error) {
	u := strings.TrimSpace(cfg.UserInfoURL)
	if u == "" {
		return nil, ErrNotConfigured
	}
	c, err := httpclient.New(httpclient.Options{Timeout: cfg.Timeout})
	if err != nil {
		return nil, err
	}
	return &Verifier{userInfoURL: u, client: c}, nil
}

// userInfo acepta tanto los claims estándar (given_name, picture) como los propios del IdP.
type userInfo struct {
	Sub             string `json:"sub"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	GivenName       string `json:"given_name"`
	FamilyName      string `json:"family_name"`
	ProfileImageURL string `json:"profile_image_url"`
	Picture         string `json:"picture"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var out userInfo
	if err := v.client.GetJSON(ctx, v.userInfoURL, token, &out); err != nil {
		switch httpclient.StatusCode(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return auth.Claims{}, ErrUnauthorized
		default:
			return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	}

	sub := strings.TrimSpace(out.Sub)
	if sub == "" {
		return auth.Claims{}, fmt.Errorf("%w: userinfo missing sub", ErrUpstream)
	}

	return auth.Claims{
		UserID:          sub,
		Email:           strings.TrimSpace(out.Email),
		FirstName:       firstNonEmpty(out.FirstName, out.GivenName),
		LastName:        firstNonEmpty(out.LastName, out.FamilyName),
		ProfileImageURL: firstNonEmpty(out.ProfileImageURL, out.Picture),
	}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
