package ability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluatorEmptyActionOrSubjectAlwaysPasses(t *testing.T) {
	eval := NewEvaluator(NewSet(), nil)

	assert.True(t, eval.Can("", SubjectUsers, nil))
	assert.True(t, eval.Can(ActionRead, "", nil))
	assert.True(t, eval.Can("", "", nil))
}

func TestEvaluatorDeniesWithoutMatchingRule(t *testing.T) {
	eval := NewEvaluator(NewSet(Rule{Action: ActionRead, Subject: SubjectCalendar}), nil)

	assert.False(t, eval.Can(ActionManage, SubjectCalendar, nil))
	assert.False(t, eval.Can(ActionRead, SubjectUsers, nil))
}

func TestEvaluatorWildcardSubject(t *testing.T) {
	eval := NewEvaluator(NewSet(Rule{Action: ActionManage, Subject: SubjectAll}), nil)

	assert.True(t, eval.Can(ActionManage, SubjectUsers, nil))
	assert.True(t, eval.Can(ActionManage, SubjectClients, Record{"id": int64(1)}))
	assert.True(t, eval.Can(ActionRead, SubjectUsers, nil))
}

func TestEvaluatorManageCoversEveryAction(t *testing.T) {
	eval := NewEvaluator(NewSet(Rule{Action: ActionManage, Subject: SubjectClients}), nil)

	assert.True(t, eval.Can(ActionRead, SubjectClients, nil))
	assert.True(t, eval.Can(ActionManage, SubjectClients, nil))
	assert.False(t, eval.Can(ActionRead, SubjectUsers, nil))
}

func TestEvaluatorReadDoesNotGrantManage(t *testing.T) {
	eval := NewEvaluator(NewSet(Rule{Action: ActionRead, Subject: SubjectClients}), nil)

	assert.True(t, eval.Can(ActionRead, SubjectClients, nil))
	assert.False(t, eval.Can(ActionManage, SubjectClients, nil))
}

func TestEvaluatorConditionedManageCoversRead(t *testing.T) {
	eval := NewEvaluator(NewSet(
		Rule{Action: ActionManage, Subject: SubjectCalendar, Conditions: map[string]any{"userId": int64(7)}},
	), nil)

	// The widened action still honors the condition check.
	assert.True(t, eval.Can(ActionRead, SubjectCalendar, Record{"userId": int64(7)}))
	assert.False(t, eval.Can(ActionRead, SubjectCalendar, Record{"userId": int64(8)}))
	assert.False(t, eval.Can(ActionRead, SubjectCalendar, nil))
}

func TestEvaluatorConditionedRuleNeedsRecord(t *testing.T) {
	eval := NewEvaluator(NewSet(
		Rule{Action: ActionManage, Subject: SubjectCalendar, Conditions: map[string]any{"userId": int64(7)}},
	), nil)

	assert.False(t, eval.Can(ActionManage, SubjectCalendar, nil))
	assert.True(t, eval.Can(ActionManage, SubjectCalendar, Record{"userId": int64(7)}))
	assert.False(t, eval.Can(ActionManage, SubjectCalendar, Record{"userId": int64(8)}))
	assert.False(t, eval.Can(ActionManage, SubjectCalendar, Record{"id": int64(7)}))
}

func TestEvaluatorFirstMatchingRuleDecides(t *testing.T) {
	// The conditioned rule comes first; the unconditioned rule behind it
	// never gets a say.
	eval := NewEvaluator(NewSet(
		Rule{Action: ActionRead, Subject: SubjectClients, Conditions: map[string]any{"salespersonId": int64(3)}},
		Rule{Action: ActionRead, Subject: SubjectAll},
	), nil)

	assert.False(t, eval.Can(ActionRead, SubjectClients, Record{"salespersonId": int64(4)}))
	assert.True(t, eval.Can(ActionRead, SubjectClients, Record{"salespersonId": int64(3)}))
	assert.True(t, eval.Can(ActionRead, SubjectReports, nil))
}

func TestEvaluatorNumericCoercion(t *testing.T) {
	eval := NewEvaluator(NewSet(
		Rule{Action: ActionManage, Subject: SubjectCalendar, Conditions: map[string]any{"userId": int64(7)}},
	), nil)

	// JSON-decoded records carry float64 IDs.
	assert.True(t, eval.Can(ActionManage, SubjectCalendar, Record{"userId": float64(7)}))
	assert.True(t, eval.Can(ActionManage, SubjectCalendar, Record{"userId": 7}))
	assert.False(t, eval.Can(ActionManage, SubjectCalendar, Record{"userId": "7"}))
}

func TestEvaluatorNilSafety(t *testing.T) {
	var eval *Evaluator
	assert.True(t, eval.Can("", "", nil))
	assert.False(t, eval.Can(ActionRead, SubjectCalendar, nil))

	empty := NewEvaluator(nil, nil)
	assert.False(t, empty.Can(ActionRead, SubjectCalendar, nil))
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("ADMIN"))
	assert.Equal(t, RoleVendedor, ParseRole(" vendedor "))
	assert.Equal(t, RoleUnknown, ParseRole("gerente"))
	assert.Equal(t, RoleUnknown, ParseRole(""))
}

func TestRoleHeader(t *testing.T) {
	assert.Equal(t, "ADMIN", RoleAdmin.Header())
	assert.Equal(t, "COORDENADOR", RoleCoordenador.Header())
	assert.Equal(t, "USER", RoleUnknown.Header())
}

func TestRoleIsAdmin(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.True(t, RoleDiretor.IsAdmin())
	assert.False(t, RoleSupervisor.IsAdmin())
	assert.False(t, RoleUnknown.IsAdmin())
}
