package database

import (
	"context"

	"openconference/internal/domain/entities"
)

const userColumns = `id, external_subject, name, bio, created_at, updated_at`

type userRepo struct{ q querier }

// CreateIfAbsent relies on the subject key: a conflicting insert becomes a
// no-op update so RETURNING yields the row that won.
func (r userRepo) CreateIfAbsent(ctx context.Context, user *entities.User) error {
	stored, err := queryOne(ctx, r.q, "create user", userToDomain,
		`INSERT INTO users (id, external_subject, name, bio, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (external_subject) DO UPDATE SET external_subject = EXCLUDED.external_subject
		 RETURNING `+userColumns,
		user.ID, user.Subject, textOrNull(user.Name), textOrNull(user.Bio),
		timeToTimestamptz(user.CreatedAt), timeToTimestamptz(user.UpdatedAt))
	if err != nil {
		return err
	}
	*user = *stored
	return nil
}

func (r userRepo) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return queryOne(ctx, r.q, "get user by id", userToDomain,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r userRepo) FindBySubject(ctx context.Context, subject string) (*entities.User, error) {
	return queryOne(ctx, r.q, "get user by subject", userToDomain,
		`SELECT `+userColumns+` FROM users WHERE external_subject = $1`, subject)
}

func (r userRepo) FindByName(ctx context.Context, name string) (*entities.User, error) {
	return queryOne(ctx, r.q, "get user by name", userToDomain,
		`SELECT `+userColumns+` FROM users WHERE name = $1 ORDER BY seq LIMIT 1`, name)
}

func (r userRepo) Update(ctx context.Context, user *entities.User) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE users SET name = $2, bio = $3, updated_at = $4 WHERE id = $1`,
		user.ID, textOrNull(user.Name), textOrNull(user.Bio), timeToTimestamptz(user.UpdatedAt))
	return affectedOne("update user", tag, err)
}

func (r userRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return affectedOne("delete user", tag, err)
}
