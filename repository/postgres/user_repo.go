package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetBySubjectID(ctx context.Context, subjectID string) (*domain.User, error) {
	const query = `
	SELECT id, email, external_subject_id, name, created_at
	FROM users
	WHERE external_subject_id = $1
	`
	row := r.pool.QueryRow(ctx, query, subjectID)
	return scanUser(row)
}

func (r *userRepository) EnsureExists(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil || user.SubjectID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	// DO NOTHING keeps the first-seen claims: two racing first logins both
	// succeed and both observe the single surviving row on the re-select.
	const query = `
	INSERT INTO users (id, email, external_subject_id, name)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (external_subject_id) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, query, user.ID, user.Email, user.SubjectID, user.Name); err != nil {
		return nil, err
	}

	return r.GetBySubjectID(ctx, user.SubjectID)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var name *string

	if err := row.Scan(&user.ID, &user.Email, &user.SubjectID, &name, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if name != nil {
		user.Name = *name
	}
	return &user, nil
}
