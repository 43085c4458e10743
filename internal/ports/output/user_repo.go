package output

import (
	"context"

	"openconference/internal/domain/entities"
)

type UserRepository interface {
	// CreateIfAbsent inserts user unless a row with the same subject already
	// exists. Either way user is overwritten with the stored row.
	CreateIfAbsent(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindBySubject(ctx context.Context, subject string) (*entities.User, error)
	// FindByName returns the oldest user with this display name.
	FindByName(ctx context.Context, name string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id string) error
}
