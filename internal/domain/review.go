package domain

import "time"

// Rating bounds and comment cap for reviews.
const (
	RatingMin        = 1
	RatingMax        = 5
	CommentMaxLength = 500
)

// Review is a rating/comment tied to a verified past purchase. At most
// one review exists per (user, game) pair.
type Review struct {
	ID        string    `json:"id"`
	GameID    string    `json:"gameId"`
	UserID    string    `json:"userId"`
	OrderID   string    `json:"orderId"`
	Rating    int       `json:"calificacion"`
	Comment   string    `json:"comentario"`
	Username  string    `json:"username,omitempty"`
	GameName  string    `json:"gameName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewSummary aggregates a game's reviews.
type ReviewSummary struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}
