// Package guard decides whether a navigation may proceed: it composes the
// session account with the ability evaluator and resolves every request to
// an allow or a redirect, never an error.
package guard

import (
	"github.com/painel-crm/painel-crm/internal/ability"
	"github.com/painel-crm/painel-crm/internal/shared"
)

// State is the outcome of a guard evaluation.
type State int

const (
	// StateAllowed lets the navigation proceed.
	StateAllowed State = iota
	// StateRedirected sends the caller to Decision.Target instead.
	StateRedirected
)

// Target names the view a redirected navigation lands on.
type Target string

const (
	// TargetLogin is the login view.
	TargetLogin Target = "login"
	// TargetNotAuthorized is the not-authorized view.
	TargetNotAuthorized Target = "not-authorized"
)

// Decision is the resolved guard outcome.
type Decision struct {
	State  State
	Target Target
}

// Allowed is the decision that lets a navigation proceed.
var Allowed = Decision{State: StateAllowed}

func redirected(target Target) Decision {
	return Decision{State: StateRedirected, Target: target}
}

// RouteMeta is the metadata a protected route declares.
type RouteMeta struct {
	Public              bool
	UnauthenticatedOnly bool
	AdminRequired       bool
	Action              string
	Subject             string
}

// Decide evaluates the route metadata against the session account. Public
// and unauthenticated-only routes bypass all checks. A missing account
// redirects to login; failed admin or ability gates redirect to
// not-authorized. Any internal failure fails closed to login.
func Decide(acct *shared.Account, meta RouteMeta) (decision Decision) {
	defer func() {
		if r := recover(); r != nil {
			decision = redirected(TargetLogin)
		}
	}()

	if meta.Public || meta.UnauthenticatedOnly {
		return Allowed
	}
	if acct == nil {
		return redirected(TargetLogin)
	}
	if meta.AdminRequired && !acct.UserData.ParsedRole().IsAdmin() {
		return redirected(TargetNotAuthorized)
	}
	if meta.Action != "" && meta.Subject != "" {
		evaluator := ability.NewEvaluator(acct.Abilities(), nil)
		if !evaluator.Can(meta.Action, meta.Subject, nil) {
			return redirected(TargetNotAuthorized)
		}
	}
	return Allowed
}
