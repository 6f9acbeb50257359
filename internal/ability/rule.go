// Package ability implements the role-to-permission mapping used by the
// dashboard: rule resolution per role, rule merging, and permission checks
// against optional record-level conditions. The checks are a UX convenience
// layer only; the upstream backend stays authoritative.
package ability

// Action and subject vocabulary shared with the upstream backend.
const (
	ActionManage = "manage"
	ActionRead   = "read"

	SubjectAll         = "all"
	SubjectCalendar    = "Calendar"
	SubjectUsers       = "Users"
	SubjectSalespeople = "Salespeople"
	SubjectClients     = "Clients"
	SubjectReports     = "Reports"
)

// Rule is a single permission grant. Conditions, when present, restrict the
// grant to records whose fields match every condition entry.
type Rule struct {
	Action     string         `json:"action"`
	Subject    string         `json:"subject"`
	Conditions map[string]any `json:"conditions,omitempty"`
}

type ruleKey struct {
	action  string
	subject string
}

// Set is an ordered rule collection with insert-if-absent semantics keyed by
// (action, subject): the first rule for a pair wins, later duplicates are
// dropped silently.
type Set struct {
	rules []Rule
	seen  map[ruleKey]struct{}
}

// NewSet builds a Set from the given rules, left to right.
func NewSet(rules ...Rule) *Set {
	s := &Set{seen: make(map[ruleKey]struct{}, len(rules))}
	s.Merge(rules)
	return s
}

// Add inserts the rule unless a rule with the same (action, subject) pair is
// already present. It reports whether the rule was inserted.
func (s *Set) Add(r Rule) bool {
	key := ruleKey{action: r.Action, subject: r.Subject}
	if _, ok := s.seen[key]; ok {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[ruleKey]struct{})
	}
	s.seen[key] = struct{}{}
	s.rules = append(s.rules, r)
	return true
}

// Merge appends rules left to right, skipping (action, subject) duplicates.
// It returns the number of rules inserted.
func (s *Set) Merge(rules []Rule) int {
	added := 0
	for _, r := range rules {
		if s.Add(r) {
			added++
		}
	}
	return added
}

// Rules returns a copy of the ordered rule list.
func (s *Set) Rules() []Rule {
	if s == nil {
		return nil
	}
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Len returns the number of rules in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}
