package order

import (
	"context"
	"time"

	"gamestore-api/internal/domain"
)

// CreateInput carries the snapshot an order is created from. Items hold
// the cart's captured prices; the repository re-checks stock itself.
type CreateInput struct {
	UserID        string
	CartID        string
	PaymentMethod string
	TotalCents    int64
	Items         []domain.OrderItem
}

// SalesFilter narrows a vendor sales query to a creation-time window.
// A nil bound leaves that side open.
type SalesFilter struct {
	From *time.Time
	To   *time.Time
}

// SaleRow is one sold line belonging to a seller, joined with the order
// and the buyer for reporting.
type SaleRow struct {
	OrderID        string    `json:"ordenId"`
	Buyer          string    `json:"comprador"`
	GameName       string    `json:"gameName"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	SubtotalCents  int64     `json:"subtotalCents"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Repository interface {
	// CreateFromCart persists the order, decrements stock for every line
	// with a quantity guard, and clears the cart, all in one transaction.
	// Any guard failure aborts the whole operation with an
	// InsufficientStockError naming the offending game.
	CreateFromCart(ctx context.Context, in CreateInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// ContainsGame reports whether the order is owned by the user and
	// holds a line for the game. Review eligibility check.
	ContainsGame(ctx context.Context, orderID, userID, gameID string) (bool, error)
	ListSales(ctx context.Context, sellerID string, f SalesFilter) ([]SaleRow, error)
}
