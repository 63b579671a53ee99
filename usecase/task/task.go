package task

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
	"github.com/taskforge/backend/usecase"
)

// TitleGenerator produces candidate task titles for a free-text topic.
type TitleGenerator interface {
	Generate(ctx context.Context, topic string) ([]string, error)
}

type UseCase struct {
	tasks     repository.TaskRepository
	generator TitleGenerator
	cache     repository.GenerationCache
	audit     usecase.AuditRecorder
	logger    *zap.Logger
}

func New(
	tasks repository.TaskRepository,
	generator TitleGenerator,
	cache repository.GenerationCache,
	audit usecase.AuditRecorder,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:     tasks,
		generator: generator,
		cache:     cache,
		audit:     audit,
		logger:    logger,
	}
}

// GenerateTitles returns candidate titles for the topic without persisting
// anything. Cached results are reused within their TTL; cache failures fall
// through to a direct generation call.
func (uc *UseCase) GenerateTitles(ctx context.Context, subjectID, topic string) ([]string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "topic is required")
	}

	if uc.cache != nil {
		titles, hit, err := uc.cache.Get(ctx, subjectID, topic)
		if err != nil {
			uc.logger.Warn("generation cache read failed", zap.Error(err))
		} else if hit {
			return titles, nil
		}
	}

	titles, err := uc.generator.Generate(ctx, topic)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil && len(titles) > 0 {
		if err := uc.cache.Put(ctx, subjectID, topic, titles); err != nil {
			uc.logger.Warn("generation cache write failed", zap.Error(err))
		}
	}
	return titles, nil
}

// ListTasks returns every task owned by the subject.
func (uc *UseCase) ListTasks(ctx context.Context, subjectID string) ([]domain.Task, error) {
	return uc.tasks.ListByOwner(ctx, subjectID)
}

// SaveTask persists a generated title as an incomplete task. Saving the same
// title twice for one owner yields domain.ErrTaskDuplicate.
func (uc *UseCase) SaveTask(ctx context.Context, subjectID, title, topic string) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
	}

	saved, err := uc.tasks.Save(ctx, &domain.Task{
		OwnerID: subjectID,
		Title:   title,
		Topic:   strings.TrimSpace(topic),
		Status:  domain.StatusIncomplete,
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, usecase.AuditEvent{
		Action:    usecase.AuditTaskSaved,
		SubjectID: subjectID,
		TaskID:    saved.ID,
	})
	return saved, nil
}

// SetStatus toggles the task between completed and incomplete. The update is
// scoped to the owner: foreign ids are indistinguishable from missing ones.
func (uc *UseCase) SetStatus(ctx context.Context, subjectID, taskID, status string) error {
	if !domain.ValidStatus(status) {
		return domain.NewError(domain.ErrCodeInvalid, "status must be completed or incomplete")
	}
	if err := uc.tasks.SetStatus(ctx, taskID, subjectID, status); err != nil {
		return err
	}

	uc.record(ctx, usecase.AuditEvent{
		Action:    usecase.AuditTaskStatusChanged,
		SubjectID: subjectID,
		TaskID:    taskID,
		Detail:    status,
	})
	return nil
}

// DeleteTask removes an owned task.
func (uc *UseCase) DeleteTask(ctx context.Context, subjectID, taskID string) error {
	if err := uc.tasks.Delete(ctx, taskID, subjectID); err != nil {
		return err
	}

	uc.record(ctx, usecase.AuditEvent{
		Action:    usecase.AuditTaskDeleted,
		SubjectID: subjectID,
		TaskID:    taskID,
	})
	return nil
}

func (uc *UseCase) record(ctx context.Context, event usecase.AuditEvent) {
	if uc.audit == nil {
		return
	}
	if err := uc.audit.Record(ctx, event); err != nil {
		uc.logger.Warn("audit record failed", zap.String("action", event.Action), zap.Error(err))
	}
}
