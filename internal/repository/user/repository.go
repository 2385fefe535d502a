package user

import (
	"context"

	"gamestore-api/internal/domain"
)

// UpdateInput carries the profile fields a user may change. Nil pointers
// leave the stored value untouched.
type UpdateInput struct {
	Username *string
	Email    *string
	Gender   *string
	Phone    *string
}

type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
}
