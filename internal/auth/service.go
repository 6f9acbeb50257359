// Package auth owns the gateway's login and logout flows. Credentials are
// verified by the upstream backend; the gateway only stores the resulting
// session record and inspects token expiry.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/painel-crm/painel-crm/internal/ability"
	"github.com/painel-crm/painel-crm/internal/shared"
	"github.com/painel-crm/painel-crm/internal/upstream"
)

type signinResponse struct {
	AccessToken      string          `json:"accessToken"`
	UserData         shared.Identity `json:"userData"`
	UserAbilityRules []ability.Rule  `json:"userAbilityRules"`
}

// Service wraps the sign-in flow against the backend.
type Service struct {
	client *upstream.Client
}

// NewService constructs a Service.
func NewService(client *upstream.Client) *Service {
	return &Service{client: client}
}

// Login authenticates against the backend and returns the account record to
// store in the session.
func (s *Service) Login(ctx context.Context, email, password string) (shared.Account, error) {
	var res signinResponse
	err := s.client.Post(ctx, nil, "/api/auth/signin", map[string]string{
		"email":    email,
		"password": password,
	}, &res)
	if err != nil {
		return shared.Account{}, err
	}
	if res.AccessToken == "" {
		return shared.Account{}, fmt.Errorf("%w: backend returned no token", shared.ErrInvalidCredentials)
	}
	return shared.Account{
		AccessToken:  res.AccessToken,
		UserData:     res.UserData,
		AbilityRules: res.UserAbilityRules,
	}, nil
}

// TokenExpired inspects the exp claim of the backend-issued token. The
// gateway does not hold the signing key, so the claim is read without
// signature verification; the backend re-checks the token on every call.
// Unparseable tokens count as expired.
func TokenExpired(token string) bool {
	if token == "" {
		return true
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
