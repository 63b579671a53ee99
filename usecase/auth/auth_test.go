package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/internal/identity"
	"github.com/taskforge/backend/usecase"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User // keyed by subject id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (r *fakeUserRepo) GetBySubjectID(_ context.Context, subjectID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[subjectID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) EnsureExists(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.users[user.SubjectID]; ok {
		return &existing, nil
	}
	stored := *user
	r.users[user.SubjectID] = stored
	return &stored, nil
}

type memoryRecorder struct {
	mu     sync.Mutex
	events []usecase.AuditEvent
}

func (r *memoryRecorder) Record(_ context.Context, event usecase.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func TestEnsureUserIdempotent(t *testing.T) {
	repo := newFakeUserRepo()
	uc := New(repo, nil, nil)

	claims := &identity.Claims{SubjectID: "sub-1", Email: "a@example.com", Name: "A"}

	first, err := uc.EnsureUser(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", first.SubjectID)
	assert.Equal(t, "a@example.com", first.Email)

	// Same subject again, with drifted claims: the stored record wins.
	second, err := uc.EnsureUser(context.Background(), &identity.Claims{
		SubjectID: "sub-1",
		Email:     "changed@example.com",
		Name:      "Changed",
	})
	require.NoError(t, err)
	assert.Equal(t, first.Email, second.Email)
	assert.Equal(t, first.Name, second.Name)
	assert.Len(t, repo.users, 1)
}

func TestEnsureUserRejectsMissingSubject(t *testing.T) {
	uc := New(newFakeUserRepo(), nil, nil)

	for _, claims := range []*identity.Claims{nil, {Email: "a@example.com"}} {
		_, err := uc.EnsureUser(context.Background(), claims)
		require.Error(t, err)
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))
	}
}

func TestEnsureUserRecordsAudit(t *testing.T) {
	recorder := &memoryRecorder{}
	uc := New(newFakeUserRepo(), recorder, nil)

	_, err := uc.EnsureUser(context.Background(), &identity.Claims{SubjectID: "sub-2"})
	require.NoError(t, err)

	require.Len(t, recorder.events, 1)
	assert.Equal(t, usecase.AuditUserVerified, recorder.events[0].Action)
	assert.Equal(t, "sub-2", recorder.events[0].SubjectID)
}
