package service

import (
	"context"
	"time"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/authz"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/ports"
)

// defaultAuditWindow bounds the lookup when the caller gives no range.
const defaultAuditWindow = 30 * 24 * time.Hour

// AuditService reads the audit trail. Writing happens out of band through the
// recorder pipeline; this service only answers administrator queries.
type AuditService struct {
	audits ports.AuditRepository
	now    func() time.Time
}

func NewAuditService(audits ports.AuditRepository, now func() time.Time) *AuditService {
	if now == nil {
		now = time.Now
	}
	return &AuditService{audits: audits, now: now}
}

// ListByActor returns username's audit events in [from, to), newest first.
// Zero times default to the last 30 days.
func (s *AuditService) ListByActor(ctx context.Context, actor authz.Actor, username string, from, to time.Time) ([]domain.AuditEvent, error) {
	if d := authz.Can(actor, authz.ActionAuditList, authz.Target{}); !d.Allowed {
		return nil, denied(d)
	}

	if to.IsZero() {
		to = s.now().UTC()
	}
	if from.IsZero() {
		from = to.Add(-defaultAuditWindow)
	}
	if !from.Before(to) {
		return nil, domain.ErrInvalidDateRange
	}

	return s.audits.FindByActor(ctx, username, from, to)
}
