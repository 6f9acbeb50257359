package shared

import "context"

type sessionContextKey struct{}

// ContextWithSession stores the session in context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext extracts the session from context.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

// AccountFromContext returns the account stored on the context's session,
// or nil when there is no session or no authenticated account.
func AccountFromContext(ctx context.Context) *Account {
	return SessionFromContext(ctx).Account()
}
