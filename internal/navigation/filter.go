package navigation

// CanFunc answers whether the current session may perform action on subject.
// Navigation items carry no record context.
type CanFunc func(action, subject string) bool

// Visible reports whether the item should be shown.
//
// A leaf with no gate is always visible. A gated leaf is visible iff the
// check passes. A group is visible iff its own gate passes (default true
// when absent) and at least one child is visible; children are evaluated
// first.
func Visible(item Item, can CanFunc) bool {
	if item.IsGroup() {
		anyChild := false
		for _, child := range item.Children {
			if Visible(child, can) {
				anyChild = true
				break
			}
		}
		if !anyChild {
			return false
		}
		return gatePasses(item, can)
	}
	return gatePasses(item, can)
}

// Prune returns a new tree with invisible subtrees removed. The input is
// never mutated, so a shared source tree can serve every session.
func Prune(items []Item, can CanFunc) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.IsGroup() {
			children := Prune(item.Children, can)
			if len(children) == 0 {
				continue
			}
			if !gatePasses(item, can) {
				continue
			}
			copied := item
			copied.Children = children
			out = append(out, copied)
			continue
		}
		if gatePasses(item, can) {
			out = append(out, item)
		}
	}
	return out
}

func gatePasses(item Item, can CanFunc) bool {
	if item.Action == "" || item.Subject == "" {
		return true
	}
	if can == nil {
		return false
	}
	return can(item.Action, item.Subject)
}
