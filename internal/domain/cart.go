package domain

import "time"

// Cart is the per-user staging area for a purchase. Exactly one cart
// exists per user; it is created lazily on first access.
type Cart struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	TotalCents int64      `json:"totalCents"`
	Items      []CartItem `json:"items"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// CartItem references a game with a quantity and the unit price captured
// when the line was added or last updated. GameName, Available and Images
// are denormalized from the live game row on reads.
type CartItem struct {
	ID             string    `json:"id"`
	CartID         string    `json:"-"`
	GameID         string    `json:"gameId"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	GameName       string    `json:"gameName,omitempty"`
	Available      int       `json:"available,omitempty"`
	Images         []string  `json:"images,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
