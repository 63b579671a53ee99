package domain

import "time"

// User is the local record for an externally authenticated principal.
// It is created on first sight of a subject id and never mutated afterwards:
// claim drift (email or name changes at the provider) is intentionally not
// propagated to the stored row.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	SubjectID string    `json:"external_subject_id"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
