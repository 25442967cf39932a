package ports

import (
	"context"
	"time"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/authz"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
)

// AuditRepository persists audit trail events.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
	// FindByActor returns an actor's events in [from, to), newest first.
	FindByActor(ctx context.Context, actor string, from, to time.Time) ([]domain.AuditEvent, error)
}

// AuditRecorder accepts audit events for asynchronous persistence. Recording
// never blocks the request path beyond the recorder's internal buffering.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditService exposes the audit trail to administrators.
type AuditService interface {
	ListByActor(ctx context.Context, actor authz.Actor, username string, from, to time.Time) ([]domain.AuditEvent, error)
}
