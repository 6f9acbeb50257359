package ability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEveryRoleReadsCalendar(t *testing.T) {
	roles := []Role{RoleAdmin, RoleDiretor, RoleSupervisor, RoleCoordenador, RoleVendedor, RoleUser, RoleUnknown}
	for _, role := range roles {
		set := Resolve(role, 7)
		require.NotZero(t, set.Len(), "role %s must resolve to rules", role)
		eval := NewEvaluator(set, nil)
		assert.True(t, eval.Can(ActionRead, SubjectCalendar, nil), "role %s must read Calendar", role)
	}
}

func TestResolveAdminManagesEverything(t *testing.T) {
	eval := NewEvaluator(Resolve(RoleAdmin, 1), nil)

	assert.True(t, eval.Can(ActionManage, SubjectUsers, nil))
	assert.True(t, eval.Can(ActionManage, SubjectClients, nil))
	// The wildcard subject covers subjects no explicit rule names.
	assert.True(t, eval.Can(ActionManage, SubjectReports, nil))
}

func TestResolveManagerRolesReadManagedSubjects(t *testing.T) {
	// manage grants read as well, so the list views stay reachable for
	// the roles that only hold manage rules on a subject.
	admin := NewEvaluator(Resolve(RoleAdmin, 1), nil)
	assert.True(t, admin.Can(ActionRead, SubjectClients, nil))
	assert.True(t, admin.Can(ActionRead, SubjectUsers, nil))
	assert.True(t, admin.Can(ActionRead, SubjectSalespeople, nil))

	supervisor := NewEvaluator(Resolve(RoleSupervisor, 2), nil)
	assert.True(t, supervisor.Can(ActionRead, SubjectClients, nil))
	assert.True(t, supervisor.Can(ActionRead, SubjectSalespeople, nil))

	diretor := NewEvaluator(Resolve(RoleDiretor, 3), nil)
	assert.True(t, diretor.Can(ActionRead, SubjectClients, nil))
	assert.True(t, diretor.Can(ActionRead, SubjectUsers, nil))
}

func TestResolveDiretorLacksWildcard(t *testing.T) {
	eval := NewEvaluator(Resolve(RoleDiretor, 1), nil)

	assert.True(t, eval.Can(ActionManage, SubjectUsers, nil))
	assert.True(t, eval.Can(ActionRead, SubjectReports, nil))
	assert.False(t, eval.Can(ActionManage, SubjectReports, nil))
}

func TestResolveVendedorScopedToOwnRecords(t *testing.T) {
	eval := NewEvaluator(Resolve(RoleVendedor, 42), nil)

	assert.False(t, eval.Can(ActionRead, SubjectUsers, nil))
	assert.False(t, eval.Can(ActionManage, SubjectSalespeople, nil))
	assert.True(t, eval.Can(ActionManage, SubjectCalendar, Record{"userId": int64(42)}))
	assert.False(t, eval.Can(ActionManage, SubjectCalendar, Record{"userId": int64(9)}))
	assert.True(t, eval.Can(ActionRead, SubjectClients, Record{"salespersonId": int64(42)}))
	assert.False(t, eval.Can(ActionRead, SubjectClients, Record{"salespersonId": int64(1)}))
}

func TestResolveUnknownRoleFallsBackToBase(t *testing.T) {
	set := Resolve(RoleUnknown, 3)
	require.Equal(t, 2, set.Len())
	eval := NewEvaluator(set, nil)
	assert.True(t, eval.Can(ActionRead, SubjectCalendar, nil))
	assert.False(t, eval.Can(ActionManage, SubjectUsers, nil))
}

func TestResolveWithServerRulesDropsDuplicates(t *testing.T) {
	server := []Rule{
		// Duplicate pair: must not override the role default.
		{Action: ActionRead, Subject: SubjectCalendar, Conditions: map[string]any{"userId": int64(99)}},
		{Action: ActionRead, Subject: SubjectReports},
	}
	set := ResolveWithServerRules(RoleUser, 5, server)

	eval := NewEvaluator(set, nil)
	// Still the unconditioned default, not the server-narrowed version.
	assert.True(t, eval.Can(ActionRead, SubjectCalendar, nil))
	assert.True(t, eval.Can(ActionRead, SubjectReports, nil))
	assert.Equal(t, 3, set.Len())
}

func TestSetMergeReportsInsertions(t *testing.T) {
	set := NewSet(Rule{Action: ActionRead, Subject: SubjectCalendar})
	added := set.Merge([]Rule{
		{Action: ActionRead, Subject: SubjectCalendar},
		{Action: ActionManage, Subject: SubjectCalendar},
	})
	assert.Equal(t, 1, added)
	assert.Equal(t, 2, set.Len())
}

func TestSetRulesReturnsCopy(t *testing.T) {
	set := NewSet(Rule{Action: ActionRead, Subject: SubjectCalendar})
	rules := set.Rules()
	rules[0].Action = "mutated"
	assert.Equal(t, ActionRead, set.Rules()[0].Action)
}
