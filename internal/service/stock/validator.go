// Package stock holds the availability check shared by the cart and
// order paths. The check is advisory: the order transaction's guarded
// decrement is the authoritative enforcement.
package stock

import (
	"context"

	"gamestore-api/internal/domain"
)

type gameRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Game, error)
}

type Validator struct {
	games gameRepo
}

func NewValidator(games gameRepo) *Validator {
	return &Validator{games: games}
}

// Validate fetches the game and fails with domain.ErrNotFound if it is
// missing or inactive, or with an InsufficientStockError if requested
// exceeds the available quantity. On success the live game is returned
// so callers can reuse its current price.
func (v *Validator) Validate(ctx context.Context, gameID string, requested int) (*domain.Game, error) {
	game, err := v.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !game.Active {
		return nil, domain.ErrNotFound
	}
	if requested > game.Quantity {
		return nil, &domain.InsufficientStockError{GameName: game.Name, Available: game.Quantity}
	}
	return game, nil
}
