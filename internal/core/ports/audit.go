package ports

import (
	"context"

	"github.com/inkwell/content-service/internal/core/domain"
)

// AuditRecorder accepts audit events for asynchronous persistence.
// Implementations must not block the request path.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
