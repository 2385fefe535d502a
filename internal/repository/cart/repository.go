package cart

import (
	"context"

	"gamestore-api/internal/domain"
)

type Repository interface {
	// GetByUser returns the user's cart with live game data joined onto
	// each line, or domain.ErrNotFound if the user has no cart yet.
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	// Create makes an empty cart for the user. It is idempotent under
	// concurrent duplicate-create attempts: losers fall back to the
	// existing row.
	Create(ctx context.Context, userID string) (*domain.Cart, error)
	// UpsertItem adds quantity units of the game to the cart. If a line
	// for the game exists, quantities are summed; either way the line's
	// unit price is refreshed to the game's current price. The cart total
	// is recomputed in the same transaction.
	UpsertItem(ctx context.Context, cartID string, game domain.Game, quantity int) error
	// SetItemQuantity replaces an existing line's quantity and refreshes
	// its price. domain.ErrNotFound if the line is absent.
	SetItemQuantity(ctx context.Context, cartID, gameID string, quantity int, unitPriceCents int64) error
	RemoveItem(ctx context.Context, cartID, gameID string) error
	Clear(ctx context.Context, cartID string) error
	// Prune drops lines whose quantity exceeds the game's live stock (or
	// whose game is gone/inactive) and recomputes the total. Returns the
	// number of lines dropped.
	Prune(ctx context.Context, cartID string) (int, error)
}
