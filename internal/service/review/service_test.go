package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gamestore-api/internal/domain"
	reviewrepo "gamestore-api/internal/repository/review"
)

type stubReviewRepo struct {
	created     *domain.Review
	createErr   error
	lastCreate  reviewrepo.CreateInput
	existing    *domain.Review
	existingErr error
	updated     *domain.Review
	updateErr   error
	lastRating  int
	lastComment string
	deleteErr   error
	lastDelete  string
}

func (s *stubReviewRepo) Create(_ context.Context, in reviewrepo.CreateInput) (*domain.Review, error) {
	s.lastCreate = in
	return s.created, s.createErr
}

func (s *stubReviewRepo) ListByGame(_ context.Context, _ string) ([]domain.Review, error) {
	return nil, nil
}

func (s *stubReviewRepo) Summarize(_ context.Context, _ string) (*domain.ReviewSummary, error) {
	return &domain.ReviewSummary{}, nil
}

func (s *stubReviewRepo) GetByUserAndGame(_ context.Context, _, _ string) (*domain.Review, error) {
	return s.existing, s.existingErr
}

func (s *stubReviewRepo) ListByUser(_ context.Context, _ string) ([]domain.Review, error) {
	return nil, nil
}

func (s *stubReviewRepo) Update(_ context.Context, _, _ string, rating int, comment string) (*domain.Review, error) {
	s.lastRating = rating
	s.lastComment = comment
	return s.updated, s.updateErr
}

func (s *stubReviewRepo) Delete(_ context.Context, id, _ string) error {
	s.lastDelete = id
	return s.deleteErr
}

type stubOrders struct {
	contains bool
	err      error
}

func (s *stubOrders) ContainsGame(_ context.Context, _, _, _ string) (bool, error) {
	return s.contains, s.err
}

func validInput() CreateInput {
	return CreateInput{GameID: "g1", OrderID: "o1", Rating: 4, Comment: "solid game"}
}

func TestCreateRejectsBadRating(t *testing.T) {
	svc := New(&stubReviewRepo{}, &stubOrders{contains: true})
	for _, rating := range []int{0, 6, -1} {
		in := validInput()
		in.Rating = rating
		_, err := svc.Create(context.Background(), "u1", in)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("rating %d: expected validation error, got %v", rating, err)
		}
	}
}

func TestCreateRejectsEmptyAndOversizedComment(t *testing.T) {
	svc := New(&stubReviewRepo{}, &stubOrders{contains: true})

	in := validInput()
	in.Comment = "   "
	if _, err := svc.Create(context.Background(), "u1", in); err == nil {
		t.Fatal("expected error for blank comment")
	}

	in = validInput()
	in.Comment = strings.Repeat("x", domain.CommentMaxLength+1)
	if _, err := svc.Create(context.Background(), "u1", in); err == nil {
		t.Fatal("expected error for oversized comment")
	}
}

func TestCreateRequiresPurchase(t *testing.T) {
	svc := New(&stubReviewRepo{existingErr: domain.ErrNotFound}, &stubOrders{contains: false})
	_, err := svc.Create(context.Background(), "u1", validInput())
	if !errors.Is(err, domain.ErrNotEligible) {
		t.Fatalf("expected not eligible, got %v", err)
	}
}

func TestCreateRejectsDuplicate(t *testing.T) {
	repo := &stubReviewRepo{existing: &domain.Review{ID: "r1"}}
	svc := New(repo, &stubOrders{contains: true})
	_, err := svc.Create(context.Background(), "u1", validInput())
	if !errors.Is(err, domain.ErrAlreadyReviewed) {
		t.Fatalf("expected already reviewed, got %v", err)
	}
}

func TestCreateTrimsComment(t *testing.T) {
	repo := &stubReviewRepo{existingErr: domain.ErrNotFound, created: &domain.Review{ID: "r1"}}
	svc := New(repo, &stubOrders{contains: true})

	in := validInput()
	in.Comment = "  great soundtrack  "
	if _, err := svc.Create(context.Background(), "u1", in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastCreate.Comment != "great soundtrack" {
		t.Fatalf("expected trimmed comment, got %q", repo.lastCreate.Comment)
	}
	if repo.lastCreate.UserID != "u1" || repo.lastCreate.GameID != "g1" || repo.lastCreate.OrderID != "o1" {
		t.Fatalf("unexpected create input %+v", repo.lastCreate)
	}
}

func TestUpdateValidatesBeforeWriting(t *testing.T) {
	repo := &stubReviewRepo{updated: &domain.Review{ID: "r1"}}
	svc := New(repo, &stubOrders{})

	if _, err := svc.Update(context.Background(), "u1", "r1", 9, "fine"); err == nil {
		t.Fatal("expected rating validation error")
	}

	if _, err := svc.Update(context.Background(), "u1", "r1", 3, "  fine  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastRating != 3 || repo.lastComment != "fine" {
		t.Fatalf("expected trimmed update, got rating=%d comment=%q", repo.lastRating, repo.lastComment)
	}
}

func TestDeleteScopedToOwner(t *testing.T) {
	repo := &stubReviewRepo{deleteErr: domain.ErrNotFound}
	svc := New(repo, &stubOrders{})

	err := svc.Delete(context.Background(), "u1", "r1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for someone else's review, got %v", err)
	}
	if repo.lastDelete != "r1" {
		t.Fatalf("expected delete of r1, got %q", repo.lastDelete)
	}
}
