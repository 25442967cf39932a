package domain

import "time"

// AuditEvent records one mutating API operation for the administrative audit
// trail. Events are persisted asynchronously; per-actor ordering is preserved.
type AuditEvent struct {
	ID       string    `json:"id"`
	Actor    string    `json:"actor"`
	Method   string    `json:"method"`
	Path     string    `json:"path"`
	Status   int       `json:"status"`
	Occurred time.Time `json:"occurred"`
}
