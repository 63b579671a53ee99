package repository

import (
	"context"

	"github.com/taskforge/backend/domain"
)

type UserRepository interface {
	GetBySubjectID(ctx context.Context, subjectID string) (*domain.User, error)
	// EnsureExists inserts the user unless a row with the same subject id is
	// already present, in which case the stored row wins and incoming claims
	// are discarded. Safe under concurrent first-time logins.
	EnsureExists(ctx context.Context, user *domain.User) (*domain.User, error)
}
