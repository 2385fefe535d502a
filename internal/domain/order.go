package domain

import "time"

// Accepted payment methods.
const (
	PaymentCard     = "tarjeta"
	PaymentTransfer = "transferencia"
)

// ValidPaymentMethod reports whether m is an accepted payment method tag.
func ValidPaymentMethod(m string) bool {
	return m == PaymentCard || m == PaymentTransfer
}

// Order is an immutable record of a completed purchase. It is created
// from a cart in a single transaction and never mutated afterward.
type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	Items         []OrderItem `json:"items"`
	TotalCents    int64       `json:"totalCents"`
	PaymentMethod string      `json:"metodoPago"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// OrderItem snapshots a cart line at purchase time. The unit price is the
// cart's captured price, not necessarily the game's live price.
type OrderItem struct {
	ID             string `json:"id"`
	GameID         string `json:"gameId"`
	GameName       string `json:"gameName"`
	SellerID       string `json:"sellerId"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	SubtotalCents  int64  `json:"subtotalCents"`
}
