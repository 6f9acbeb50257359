package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/painel-crm/painel-crm/internal/shared"
	"github.com/painel-crm/painel-crm/internal/upstream"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/signin", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "maria@example.com", body["email"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"accessToken": "token-xyz",
			"userData": map[string]any{
				"id": 7, "username": "maria", "email": "maria@example.com", "role": "supervisor",
			},
			"userAbilityRules": []map[string]any{
				{"action": "read", "subject": "Reports"},
			},
		})
	}))
	defer srv.Close()

	svc := NewService(upstream.NewClient(srv.URL, time.Second, nil))
	acct, err := svc.Login(context.Background(), "maria@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "token-xyz", acct.AccessToken)
	assert.Equal(t, int64(7), acct.UserData.ID)
	assert.Equal(t, "supervisor", acct.UserData.Role)
	require.Len(t, acct.AbilityRules, 1)
	assert.Equal(t, "Reports", acct.AbilityRules[0].Subject)
}

func TestLoginBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	svc := NewService(upstream.NewClient(srv.URL, time.Second, nil))
	_, err := svc.Login(context.Background(), "maria@example.com", "wrong")
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestLoginMissingTokenInResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"userData": map[string]any{"id": 1}})
	}))
	defer srv.Close()

	svc := NewService(upstream.NewClient(srv.URL, time.Second, nil))
	_, err := svc.Login(context.Background(), "maria@example.com", "secret123")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestTokenExpired(t *testing.T) {
	assert.True(t, TokenExpired(""), "empty token counts as expired")
	assert.True(t, TokenExpired("not-a-jwt"), "garbage counts as expired")

	future := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	assert.False(t, TokenExpired(future))

	past := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
	assert.True(t, TokenExpired(past))

	noExp := signedToken(t, jwt.MapClaims{"sub": "7"})
	assert.False(t, TokenExpired(noExp), "tokens without exp never expire locally")
}
