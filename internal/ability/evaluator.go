package ability

import "log/slog"

// Record carries the fields of a candidate record for condition checks.
type Record map[string]any

// Evaluator answers permission questions against a rule set. Evaluation
// never panics outward: any internal failure resolves to deny.
type Evaluator struct {
	set    *Set
	logger *slog.Logger
}

// NewEvaluator wraps a rule set. The logger may be nil.
func NewEvaluator(set *Set, logger *slog.Logger) *Evaluator {
	return &Evaluator{set: set, logger: logger}
}

// Set returns the underlying rule set.
func (e *Evaluator) Set() *Set {
	if e == nil {
		return nil
	}
	return e.set
}

// Can reports whether the rule set grants the action on the subject,
// optionally checked against a candidate record. An empty action or subject
// always passes: ungated items are visible by convention, not a security
// boundary.
func (e *Evaluator) Can(action, subject string, record Record) (allowed bool) {
	defer func() {
		if r := recover(); r != nil {
			if e != nil && e.logger != nil {
				e.logger.Warn("ability check recovered", slog.Any("panic", r),
					slog.String("action", action), slog.String("subject", subject))
			}
			allowed = false
		}
	}()
	if action == "" || subject == "" {
		return true
	}
	if e == nil || e.set == nil {
		return false
	}
	return e.set.can(action, subject, record)
}

// can scans for the first rule structurally matching (action, subject or the
// wildcard subject). That rule decides the outcome: unconditioned rules grant
// outright; conditioned rules grant only when a record is supplied and every
// condition field matches. A manage rule covers every action on its subject,
// so holding manage:Clients also answers read:Clients.
func (s *Set) can(action, subject string, record Record) bool {
	for _, rule := range s.rules {
		if rule.Action != action && rule.Action != ActionManage {
			continue
		}
		if rule.Subject != subject && rule.Subject != SubjectAll {
			continue
		}
		if len(rule.Conditions) == 0 {
			return true
		}
		if record == nil {
			return false
		}
		return conditionsMatch(rule.Conditions, record)
	}
	return false
}

func conditionsMatch(conditions map[string]any, record Record) bool {
	for field, want := range conditions {
		got, ok := record[field]
		if !ok {
			return false
		}
		if !looselyEqual(want, got) {
			return false
		}
	}
	return true
}

// looselyEqual compares condition values across the numeric types JSON
// decoding produces (float64) and the int64 IDs used internally.
func looselyEqual(a, b any) bool {
	if a == b {
		return true
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af == bf
	}
	return false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
