package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/internal/identity"
	"github.com/taskforge/backend/repository"
	"github.com/taskforge/backend/usecase"
)

type UseCase struct {
	users  repository.UserRepository
	audit  usecase.AuditRecorder
	logger *zap.Logger
}

func New(users repository.UserRepository, audit usecase.AuditRecorder, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		audit:  audit,
		logger: logger,
	}
}

// EnsureUser maps verified claims to the local user record, creating it on
// first sight. Calling it again for the same subject returns the stored row
// unchanged; fresh claims never overwrite it.
func (uc *UseCase) EnsureUser(ctx context.Context, claims *identity.Claims) (*domain.User, error) {
	if claims == nil || claims.SubjectID == "" {
		return nil, domain.ErrUnauthorized
	}

	user, err := uc.users.EnsureExists(ctx, &domain.User{
		Email:     claims.Email,
		SubjectID: claims.SubjectID,
		Name:      claims.Name,
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, usecase.AuditEvent{
		Action:    usecase.AuditUserVerified,
		SubjectID: claims.SubjectID,
	})
	return user, nil
}

func (uc *UseCase) record(ctx context.Context, event usecase.AuditEvent) {
	if uc.audit == nil {
		return
	}
	if err := uc.audit.Record(ctx, event); err != nil {
		uc.logger.Warn("audit record failed", zap.String("action", event.Action), zap.Error(err))
	}
}
