package input

import (
	"context"

	"openconference/internal/domain/entities"
)

type IdentityUseCase interface {
	CurrentUser(ctx context.Context) (*entities.User, error)
	UpdateProfile(ctx context.Context, name, bio string) (*entities.User, error)
	DeleteTestUser(ctx context.Context, name string) error
}
