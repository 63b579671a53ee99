package domain

import "time"

// Task statuses. A task starts as incomplete and toggles between the two.
const (
	StatusIncomplete = "incomplete"
	StatusCompleted  = "completed"
)

// Task represents a saved, user-owned task. OwnerID holds the owner's
// external subject identifier, not the surrogate user id.
type Task struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"user_id"`
	Title     string    `json:"title"`
	Topic     string    `json:"topic,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// ValidStatus reports whether s is one of the two allowed task statuses.
func ValidStatus(s string) bool {
	return s == StatusIncomplete || s == StatusCompleted
}
