package oidc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserInfoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer good":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"sub":"user-42","email":"jo@example.com","given_name":"Jo","family_name":"Lee","picture":"https://img.test/jo.png"}`))
		case "Bearer broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVerify_MapsStandardClaims(t *testing.T) {
	srv := newUserInfoServer(t)
	v, err := NewVerifier(Config{UserInfoURL: srv.URL})
	require.NoError(t, err)

	c, err := v.Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "user-42", c.UserID)
	assert.Equal(t, "Jo", c.FirstName)
	assert.Equal(t, "Lee", c.LastName)
	assert.Equal(t, "https://img.test/jo.png", c.ProfileImageURL)
}

func TestVerify_Errors(t *testing.T) {
	srv := newUserInfoServer(t)
	v, err := NewVerifier(Config{UserInfoURL: srv.URL})
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = v.Verify(context.Background(), "broken")
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = v.Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	_, err = NewVerifier(Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
