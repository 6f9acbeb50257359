package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/painel-crm/painel-crm/internal/ability"
	"github.com/painel-crm/painel-crm/internal/shared"
)

func account(role string) *shared.Account {
	return &shared.Account{
		AccessToken: "token",
		UserData:    shared.Identity{ID: 7, Username: "maria", Role: role},
	}
}

func TestDecidePublicRoutesBypassEverything(t *testing.T) {
	assert.Equal(t, Allowed, Decide(nil, RouteMeta{Public: true}))
	assert.Equal(t, Allowed, Decide(nil, RouteMeta{UnauthenticatedOnly: true}))
	// Even an authenticated caller may hit unauthenticated-only routes;
	// the redirect-home behavior lives in the frontend.
	assert.Equal(t, Allowed, Decide(account("admin"), RouteMeta{UnauthenticatedOnly: true}))
}

func TestDecideMissingAccountRedirectsToLogin(t *testing.T) {
	decision := Decide(nil, RouteMeta{})
	assert.Equal(t, StateRedirected, decision.State)
	assert.Equal(t, TargetLogin, decision.Target)
}

func TestDecideAdminRequired(t *testing.T) {
	meta := RouteMeta{AdminRequired: true}

	assert.Equal(t, Allowed, Decide(account("admin"), meta))
	assert.Equal(t, Allowed, Decide(account("diretor"), meta))

	decision := Decide(account("supervisor"), meta)
	assert.Equal(t, StateRedirected, decision.State)
	assert.Equal(t, TargetNotAuthorized, decision.Target)
}

func TestDecideAbilityGate(t *testing.T) {
	meta := RouteMeta{Action: ability.ActionRead, Subject: ability.SubjectUsers}

	assert.Equal(t, Allowed, Decide(account("supervisor"), meta))

	decision := Decide(account("vendedor"), meta)
	assert.Equal(t, StateRedirected, decision.State)
	assert.Equal(t, TargetNotAuthorized, decision.Target)
}

func TestDecideCalendarGatePassesEveryRole(t *testing.T) {
	// The event routes gate on read:Calendar, which every role holds
	// unconditioned; ownership of concrete events is the service's job.
	meta := RouteMeta{Action: ability.ActionRead, Subject: ability.SubjectCalendar}
	for _, role := range []string{"admin", "diretor", "supervisor", "coordenador", "vendedor", "user"} {
		assert.Equal(t, Allowed, Decide(account(role), meta), "role %s", role)
	}
}

func TestDecideManageClientsGate(t *testing.T) {
	meta := RouteMeta{Action: ability.ActionManage, Subject: ability.SubjectClients}

	assert.Equal(t, Allowed, Decide(account("admin"), meta))
	assert.Equal(t, Allowed, Decide(account("diretor"), meta))
	assert.Equal(t, Allowed, Decide(account("supervisor"), meta))

	// coordenador only reads clients; vendedor's grant is record-scoped.
	for _, role := range []string{"coordenador", "vendedor", "user"} {
		decision := Decide(account(role), meta)
		assert.Equal(t, StateRedirected, decision.State, "role %s", role)
		assert.Equal(t, TargetNotAuthorized, decision.Target, "role %s", role)
	}
}

func TestDecideReadGrantDoesNotSatisfyManageGate(t *testing.T) {
	// read:Users must not satisfy a manage:Users gate.
	decision := Decide(account("supervisor"), RouteMeta{Action: ability.ActionManage, Subject: ability.SubjectUsers})
	assert.Equal(t, StateRedirected, decision.State)
	assert.Equal(t, TargetNotAuthorized, decision.Target)
}

func TestDecideServerRulesExtendTheGate(t *testing.T) {
	acct := account("user")
	acct.AbilityRules = []ability.Rule{{Action: ability.ActionRead, Subject: ability.SubjectReports}}

	meta := RouteMeta{Action: ability.ActionRead, Subject: ability.SubjectReports}
	assert.Equal(t, Allowed, Decide(acct, meta))
}

func TestDecideUnknownRoleFailsClosed(t *testing.T) {
	decision := Decide(account("gerente"), RouteMeta{Action: ability.ActionManage, Subject: ability.SubjectUsers})
	assert.Equal(t, StateRedirected, decision.State)
	assert.Equal(t, TargetNotAuthorized, decision.Target)
}

func TestDecideNoGateAllowsAuthenticated(t *testing.T) {
	assert.Equal(t, Allowed, Decide(account("user"), RouteMeta{}))
}
