package cart

import (
	"context"
	"errors"

	"gamestore-api/internal/domain"
)

type cartRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	Create(ctx context.Context, userID string) (*domain.Cart, error)
	UpsertItem(ctx context.Context, cartID string, game domain.Game, quantity int) error
	SetItemQuantity(ctx context.Context, cartID, gameID string, quantity int, unitPriceCents int64) error
	RemoveItem(ctx context.Context, cartID, gameID string) error
	Clear(ctx context.Context, cartID string) error
	Prune(ctx context.Context, cartID string) (int, error)
}

type stockValidator interface {
	Validate(ctx context.Context, gameID string, requested int) (*domain.Game, error)
}

type Service struct {
	repo  cartRepo
	stock stockValidator
}

func New(repo cartRepo, stock stockValidator) *Service {
	return &Service{repo: repo, stock: stock}
}

// Get returns the user's cart, creating an empty one on first access.
// Lines whose quantity no longer fits live stock are dropped before the
// cart is returned; stock changes between visits, so this reconciliation
// runs on every read.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return s.repo.Create(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	dropped, err := s.repo.Prune(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		return s.repo.GetByUser(ctx, userID)
	}
	return cart, nil
}

// Add puts quantity units of the game into the cart. If the game is
// already present the quantities are summed, and the summed amount is
// what gets validated against stock. The line's unit price is refreshed
// to the game's current price.
func (s *Service) Add(ctx context.Context, userID, gameID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.Validation("quantity must be at least 1")
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	requested := quantity
	for _, item := range cart.Items {
		if item.GameID == gameID {
			requested += item.Quantity
			break
		}
	}

	game, err := s.stock.Validate(ctx, gameID, requested)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpsertItem(ctx, cart.ID, *game, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}

// UpdateItem replaces an existing line's quantity, refreshing its price.
func (s *Service) UpdateItem(ctx context.Context, userID, gameID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.Validation("quantity must be at least 1")
	}

	game, err := s.stock.Validate(ctx, gameID, quantity)
	if err != nil {
		return nil, err
	}

	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetItemQuantity(ctx, cart.ID, gameID, quantity, game.PriceCents); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}

// Remove deletes the game's line from the cart.
func (s *Service) Remove(ctx context.Context, userID, gameID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RemoveItem(ctx, cart.ID, gameID); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}

// Clear empties the cart and resets its total.
func (s *Service) Clear(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Clear(ctx, cart.ID); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}
