package services

import (
	"context"
	"time"

	"github.com/taskforge/backend/internal/infrastructure/auditlog"
	"github.com/taskforge/backend/usecase"
)

// AuditBridge adapts the BoltDB audit store to the use-case port.
type AuditBridge struct {
	store *auditlog.Store
}

func NewAuditBridge(store *auditlog.Store) *AuditBridge {
	return &AuditBridge{store: store}
}

func (b *AuditBridge) Record(_ context.Context, event usecase.AuditEvent) error {
	if b == nil || b.store == nil {
		return nil
	}
	return b.store.Append(auditlog.Entry{
		Action:    event.Action,
		SubjectID: event.SubjectID,
		TaskID:    event.TaskID,
		Detail:    event.Detail,
		At:        time.Now().UTC(),
	})
}

var _ usecase.AuditRecorder = (*AuditBridge)(nil)
