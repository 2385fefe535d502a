package catalog

import (
	"context"
	"strings"

	"gamestore-api/internal/domain"
	gamerepo "gamestore-api/internal/repository/game"
)

type Service struct {
	repo gamerepo.Repository
}

func New(repo gamerepo.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the active catalog, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Game, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Game, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateInput carries the fields a seller submits when publishing a game.
// Images are filenames already stored by the upload layer; this service
// only records the references.
type CreateInput struct {
	Name        string
	Description string
	PriceCents  int64
	Quantity    int
	PlatformID  string
	CategoryID  string
	CompanyID   string
	Images      []string
}

// Create publishes a new game owned by the seller.
func (s *Service) Create(ctx context.Context, seller domain.User, in CreateInput) (*domain.Game, error) {
	if seller.Role != domain.RoleSeller {
		return nil, domain.Validation("only sellers can publish games")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validation("name required")
	}
	if in.PriceCents < 0 {
		return nil, domain.Validation("price must not be negative")
	}
	if in.Quantity < 0 {
		return nil, domain.Validation("quantity must not be negative")
	}

	return s.repo.Create(ctx, gamerepo.CreateInput{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		PriceCents:  in.PriceCents,
		Quantity:    in.Quantity,
		SellerID:    seller.ID,
		PlatformID:  in.PlatformID,
		CategoryID:  in.CategoryID,
		CompanyID:   in.CompanyID,
		Images:      in.Images,
	})
}

// Deactivate unpublishes a game the seller owns. The row stays so order
// history keeps its references; listings and carts stop seeing it.
func (s *Service) Deactivate(ctx context.Context, seller domain.User, id string) error {
	game, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if game.SellerID != seller.ID {
		return domain.Validation("only the owning seller can remove a game")
	}
	return s.repo.SetActive(ctx, id, false)
}
