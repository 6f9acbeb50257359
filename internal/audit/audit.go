// Package audit persists gateway-side auth and export events in PostgreSQL.
// It records what the gateway itself did; business data stays upstream.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is a record stored in gateway_audit.
type Entry struct {
	ActorID int64
	Action  string
	Detail  map[string]any
	At      time.Time
}

// Actions recorded by the gateway.
const (
	ActionLogin           = "auth.login"
	ActionLogout          = "auth.logout"
	ActionExportRequested = "events.export_requested"
)

// Logger writes entries into gateway_audit. A nil Logger is a no-op so
// callers need no guards.
type Logger struct {
	pool *pgxpool.Pool
}

// NewLogger returns a Logger backed by the pool.
func NewLogger(pool *pgxpool.Pool) *Logger {
	return &Logger{pool: pool}
}

// Record persists the entry. Auditing is best effort: callers log the
// returned error but do not fail the request on it.
func (l *Logger) Record(ctx context.Context, entry Entry) error {
	if l == nil || l.pool == nil {
		return nil
	}
	detailJSON, err := json.Marshal(entry.Detail)
	if err != nil {
		return err
	}
	at := entry.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err = l.pool.Exec(ctx,
		`INSERT INTO gateway_audit (actor_id, action, detail, occurred_at) VALUES ($1, $2, $3, $4)`,
		entry.ActorID, entry.Action, detailJSON, at)
	return err
}
