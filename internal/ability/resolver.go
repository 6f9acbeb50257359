package ability

// baseRules is the minimal grant every authenticated user holds: view the
// calendar, manage own calendar entries.
func baseRules(userID int64) []Rule {
	return []Rule{
		{Action: ActionRead, Subject: SubjectCalendar},
		{Action: ActionManage, Subject: SubjectCalendar, Conditions: map[string]any{"userId": userID}},
	}
}

// Resolve maps a role and acting user onto its full rule set. Each role lists
// its complete set explicitly; no role inherits another's rules. Unknown
// roles fail closed to the base set.
func Resolve(role Role, userID int64) *Set {
	switch role {
	case RoleAdmin:
		return NewSet(append([]Rule{
			{Action: ActionManage, Subject: SubjectAll},
			{Action: ActionManage, Subject: SubjectUsers},
			{Action: ActionManage, Subject: SubjectSalespeople},
			{Action: ActionManage, Subject: SubjectClients},
		}, baseRules(userID)...)...)
	case RoleDiretor:
		return NewSet(append([]Rule{
			{Action: ActionManage, Subject: SubjectUsers},
			{Action: ActionManage, Subject: SubjectSalespeople},
			{Action: ActionManage, Subject: SubjectClients},
			{Action: ActionRead, Subject: SubjectReports},
		}, baseRules(userID)...)...)
	case RoleSupervisor:
		return NewSet(append([]Rule{
			{Action: ActionRead, Subject: SubjectUsers},
			{Action: ActionManage, Subject: SubjectSalespeople},
			{Action: ActionManage, Subject: SubjectClients},
			{Action: ActionRead, Subject: SubjectReports},
		}, baseRules(userID)...)...)
	case RoleCoordenador:
		return NewSet(append([]Rule{
			{Action: ActionRead, Subject: SubjectUsers},
			{Action: ActionManage, Subject: SubjectSalespeople},
			{Action: ActionRead, Subject: SubjectClients},
		}, baseRules(userID)...)...)
	case RoleVendedor:
		return NewSet(
			Rule{Action: ActionRead, Subject: SubjectCalendar},
			Rule{Action: ActionManage, Subject: SubjectCalendar, Conditions: map[string]any{"userId": userID}},
			Rule{Action: ActionRead, Subject: SubjectClients, Conditions: map[string]any{"salespersonId": userID}},
		)
	case RoleUser:
		return NewSet(baseRules(userID)...)
	default:
		return NewSet(baseRules(userID)...)
	}
}

// ResolveWithServerRules combines the role's default rules with rules
// supplied by the upstream backend. Server rules are appended only when no
// rule with the same (action, subject) pair exists yet.
func ResolveWithServerRules(role Role, userID int64, serverRules []Rule) *Set {
	set := Resolve(role, userID)
	set.Merge(serverRules)
	return set
}
