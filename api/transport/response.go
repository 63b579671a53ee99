package transport

import "github.com/taskforge/backend/domain"

// Response bodies mirror the public API contract exactly, so there is no
// generic envelope: each endpoint has its own shape.

type SuccessResponse struct {
	Success bool `json:"success"`
}

type TitlesResponse struct {
	Tasks []string `json:"tasks"`
}

type TaskResponse struct {
	Task *domain.Task `json:"task"`
}

type TaskListResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

// ErrorResponse carries a short, non-sensitive message and the semantic code.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
