package order

import (
	"context"
	"errors"
	"time"

	"gamestore-api/internal/domain"
	orderrepo "gamestore-api/internal/repository/order"
	"github.com/shopspring/decimal"
)

type orderRepo interface {
	CreateFromCart(ctx context.Context, in orderrepo.CreateInput) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListSales(ctx context.Context, sellerID string, f orderrepo.SalesFilter) ([]orderrepo.SaleRow, error)
}

type cartRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
}

type stockValidator interface {
	Validate(ctx context.Context, gameID string, requested int) (*domain.Game, error)
}

type Service struct {
	repo  orderRepo
	carts cartRepo
	stock stockValidator
}

func New(repo orderRepo, carts cartRepo, stock stockValidator) *Service {
	return &Service{repo: repo, carts: carts, stock: stock}
}

// Create converts the user's cart into an immutable order. Every line is
// re-validated against live stock first; the repository then re-checks
// inside the transaction, so a validation race cannot overcommit stock.
// Line prices come from the cart's captured prices, not live prices.
func (s *Service) Create(ctx context.Context, userID, paymentMethod string) (*domain.Order, error) {
	if !domain.ValidPaymentMethod(paymentMethod) {
		return nil, domain.Validation("payment method must be 'tarjeta' or 'transferencia'")
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		game, err := s.stock.Validate(ctx, line.GameID, line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.OrderItem{
			GameID:         game.ID,
			GameName:       game.Name,
			SellerID:       game.SellerID,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
			SubtotalCents:  line.UnitPriceCents * int64(line.Quantity),
		})
	}

	return s.repo.CreateFromCart(ctx, orderrepo.CreateInput{
		UserID:        userID,
		CartID:        cart.ID,
		PaymentMethod: paymentMethod,
		TotalCents:    cart.TotalCents,
		Items:         items,
	})
}

// ListMine returns the user's orders, newest first.
func (s *Service) ListMine(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// SalesStats aggregates a seller's sold lines.
type SalesStats struct {
	TotalCents   int64  `json:"ventasTotalesCents"`
	UnitsSold    int    `json:"productosVendidos"`
	OrderCount   int    `json:"ordenesTotales"`
	AverageCents string `json:"promedioPorVentaCents"`
}

// SalesReport is the vendor's sales listing plus aggregate statistics.
type SalesReport struct {
	Sales []orderrepo.SaleRow `json:"ventas"`
	Stats SalesStats          `json:"estadisticas"`
}

// VendorSales builds the sales report for a seller, optionally bounded
// by a [from, to] creation-time window; to is inclusive through the end
// of its day.
func (s *Service) VendorSales(ctx context.Context, sellerID string, from, to *time.Time) (*SalesReport, error) {
	filter := orderrepo.SalesFilter{From: from}
	if to != nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}

	sales, err := s.repo.ListSales(ctx, sellerID, filter)
	if err != nil {
		return nil, err
	}

	var totalCents int64
	var units int
	seen := make(map[string]struct{})
	for _, row := range sales {
		totalCents += row.SubtotalCents
		units += row.Quantity
		seen[row.OrderID] = struct{}{}
	}

	average := decimal.Zero
	if len(sales) > 0 {
		average = decimal.NewFromInt(totalCents).DivRound(decimal.NewFromInt(int64(len(sales))), 2)
	}

	if sales == nil {
		sales = []orderrepo.SaleRow{}
	}
	return &SalesReport{
		Sales: sales,
		Stats: SalesStats{
			TotalCents:   totalCents,
			UnitsSold:    units,
			OrderCount:   len(seen),
			AverageCents: average.String(),
		},
	}, nil
}
