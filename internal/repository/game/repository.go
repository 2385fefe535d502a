package game

import (
	"context"

	"gamestore-api/internal/domain"
)

// CreateInput carries the fields needed to publish a game.
type CreateInput struct {
	Name        string
	Description string
	PriceCents  int64
	Quantity    int
	SellerID    string
	PlatformID  string
	CategoryID  string
	CompanyID   string
	Images      []string
}

type Repository interface {
	List(ctx context.Context) ([]domain.Game, error)
	GetByID(ctx context.Context, id string) (*domain.Game, error)
	Create(ctx context.Context, in CreateInput) (*domain.Game, error)
	// UpsertByName inserts or refreshes a game identified by (seller, name).
	// Used by the catalog importer.
	UpsertByName(ctx context.Context, in CreateInput) (*domain.Game, error)
	SetActive(ctx context.Context, id string, active bool) error
}
