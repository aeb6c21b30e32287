package repository

import (
	"context"

	"github.com/correo/user-service/internal/domain/entity"
)

// UserRepository is the storage port the domain service depends on.
// Lookups return (nil, nil) when no user matches; absence only becomes an
// error at the domain-service layer. Each call is atomic with respect to
// concurrent readers.
type UserRepository interface {
	// Save inserts the user when its ID is empty (assigning one) and
	// replaces the stored row otherwise; replacing fails when no stored
	// row carries that ID. Returns the persisted state.
	Save(ctx context.Context, u *entity.User) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindAll returns every stored user; order is unspecified.
	FindAll(ctx context.Context) ([]*entity.User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// DeleteByID is a no-op when the id is absent.
	DeleteByID(ctx context.Context, id string) error
}
