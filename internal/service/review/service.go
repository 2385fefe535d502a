package review

import (
	"context"
	"errors"
	"strings"

	"gamestore-api/internal/domain"
	reviewrepo "gamestore-api/internal/repository/review"
)

type reviewRepo interface {
	Create(ctx context.Context, in reviewrepo.CreateInput) (*domain.Review, error)
	ListByGame(ctx context.Context, gameID string) ([]domain.Review, error)
	Summarize(ctx context.Context, gameID string) (*domain.ReviewSummary, error)
	GetByUserAndGame(ctx context.Context, userID, gameID string) (*domain.Review, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Review, error)
	Update(ctx context.Context, id, userID string, rating int, comment string) (*domain.Review, error)
	Delete(ctx context.Context, id, userID string) error
}

type orderRepo interface {
	ContainsGame(ctx context.Context, orderID, userID, gameID string) (bool, error)
}

type Service struct {
	repo   reviewRepo
	orders orderRepo
}

func New(repo reviewRepo, orders orderRepo) *Service {
	return &Service{repo: repo, orders: orders}
}

type CreateInput struct {
	GameID  string
	OrderID string
	Rating  int
	Comment string
}

// Create posts a review. The user must own the named order and that
// order must contain the game; a user reviews a game at most once. The
// duplicate check here is best-effort, the DB unique index is the
// backstop against concurrent submissions.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*domain.Review, error) {
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}
	comment, err := validateComment(in.Comment)
	if err != nil {
		return nil, err
	}

	eligible, err := s.orders.ContainsGame(ctx, in.OrderID, userID, in.GameID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, domain.ErrNotEligible
	}

	if _, err := s.repo.GetByUserAndGame(ctx, userID, in.GameID); err == nil {
		return nil, domain.ErrAlreadyReviewed
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	return s.repo.Create(ctx, reviewrepo.CreateInput{
		GameID:  in.GameID,
		UserID:  userID,
		OrderID: in.OrderID,
		Rating:  in.Rating,
		Comment: comment,
	})
}

// GameReviews lists a game's reviews with mean rating and count.
func (s *Service) GameReviews(ctx context.Context, gameID string) ([]domain.Review, *domain.ReviewSummary, error) {
	reviews, err := s.repo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	summary, err := s.repo.Summarize(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	return reviews, summary, nil
}

// UserGameReview returns the caller's review of a game, or
// domain.ErrNotFound when they have not reviewed it. The UI uses this to
// avoid offering a duplicate submission.
func (s *Service) UserGameReview(ctx context.Context, userID, gameID string) (*domain.Review, error) {
	return s.repo.GetByUserAndGame(ctx, userID, gameID)
}

// ListMine returns all reviews the user has written.
func (s *Service) ListMine(ctx context.Context, userID string) ([]domain.Review, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update changes rating and comment on the user's own review.
func (s *Service) Update(ctx context.Context, userID, reviewID string, rating int, comment string) (*domain.Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	trimmed, err := validateComment(comment)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, reviewID, userID, rating, trimmed)
}

// Delete removes the user's own review.
func (s *Service) Delete(ctx context.Context, userID, reviewID string) error {
	return s.repo.Delete(ctx, reviewID, userID)
}

func validateRating(rating int) error {
	if rating < domain.RatingMin || rating > domain.RatingMax {
		return domain.Validationf("rating must be between %d and %d", domain.RatingMin, domain.RatingMax)
	}
	return nil
}

func validateComment(comment string) (string, error) {
	trimmed := strings.TrimSpace(comment)
	if trimmed == "" {
		return "", domain.Validation("comment required")
	}
	if len(trimmed) > domain.CommentMaxLength {
		return "", domain.Validationf("comment must be at most %d characters", domain.CommentMaxLength)
	}
	return trimmed, nil
}
