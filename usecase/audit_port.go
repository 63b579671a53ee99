package usecase

import "context"

// Audit actions recorded by the use cases.
const (
	AuditUserVerified      = "user.verified"
	AuditTaskSaved         = "task.saved"
	AuditTaskStatusChanged = "task.status_changed"
	AuditTaskDeleted       = "task.deleted"
)

// AuditEvent describes a single recorded action.
type AuditEvent struct {
	Action    string `json:"action"`
	SubjectID string `json:"subject_id"`
	TaskID    string `json:"task_id,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// AuditRecorder abstracts the audit trail so use cases stay storage-agnostic.
// Recording is best-effort and must never fail a request.
type AuditRecorder interface {
	Record(ctx context.Context, event AuditEvent) error
}
