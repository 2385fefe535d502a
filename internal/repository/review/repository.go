package review

import (
	"context"

	"gamestore-api/internal/domain"
)

type CreateInput struct {
	GameID  string
	UserID  string
	OrderID string
	Rating  int
	Comment string
}

type Repository interface {
	// Create persists the review. A duplicate (game, user) pair maps to
	// domain.ErrAlreadyReviewed; the unique index is the backstop against
	// concurrent submissions.
	Create(ctx context.Context, in CreateInput) (*domain.Review, error)
	ListByGame(ctx context.Context, gameID string) ([]domain.Review, error)
	// Summarize returns mean rating and count for a game (zeroes when
	// unreviewed).
	Summarize(ctx context.Context, gameID string) (*domain.ReviewSummary, error)
	GetByUserAndGame(ctx context.Context, userID, gameID string) (*domain.Review, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Review, error)
	// Update replaces rating and comment on the user's own review.
	Update(ctx context.Context, id, userID string, rating int, comment string) (*domain.Review, error)
	Delete(ctx context.Context, id, userID string) error
}
