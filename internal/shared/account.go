package shared

import (
	"encoding/json"

	"github.com/painel-crm/painel-crm/internal/ability"
)

// AccountKey is the session key holding the persisted account blob.
const AccountKey = "user"

// Identity describes the authenticated user as returned by the backend.
type Identity struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	SupervisorID  *int64 `json:"supervisorId,omitempty"`
	CoordenadorID *int64 `json:"coordenadorId,omitempty"`
}

// ParsedRole returns the identity role as the closed enumeration.
func (i Identity) ParsedRole() ability.Role {
	return ability.ParseRole(i.Role)
}

// Account is the session record written on login and deleted on logout:
// the backend access token, the user identity, and any server-supplied
// ability rules.
type Account struct {
	AccessToken  string         `json:"accessToken"`
	UserData     Identity       `json:"userData"`
	AbilityRules []ability.Rule `json:"userAbilityRules,omitempty"`
}

// Abilities rebuilds the full rule set for the account: the role's default
// rules merged with server-supplied rules, duplicates dropped.
func (a Account) Abilities() *ability.Set {
	return ability.ResolveWithServerRules(a.UserData.ParsedRole(), a.UserData.ID, a.AbilityRules)
}

// Account decodes the account blob stored in the session. It returns nil
// when the session carries no account or the blob cannot be decoded.
func (s *Session) Account() *Account {
	if s == nil {
		return nil
	}
	raw := s.Get(AccountKey)
	if raw == "" {
		return nil
	}
	var acct Account
	if err := json.Unmarshal([]byte(raw), &acct); err != nil {
		return nil
	}
	if acct.AccessToken == "" {
		return nil
	}
	return &acct
}

// SetAccount stores the account blob in the session.
func (s *Session) SetAccount(acct Account) error {
	data, err := json.Marshal(acct)
	if err != nil {
		return err
	}
	s.Set(AccountKey, string(data))
	return nil
}

// ClearAccount removes the account blob from the session.
func (s *Session) ClearAccount() {
	s.Delete(AccountKey)
}
