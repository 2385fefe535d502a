package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInsufficientStock indicates a requested quantity exceeds the
	// game's available stock. Match with errors.Is; the concrete value is
	// usually an InsufficientStockError naming the game.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrEmptyCart indicates an order was attempted from a cart with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNotEligible indicates a review without a qualifying purchase.
	ErrNotEligible = errors.New("no qualifying purchase for this game")
	// ErrAlreadyReviewed indicates the user already reviewed this game.
	ErrAlreadyReviewed = errors.New("game already reviewed")
)

// ValidationError marks malformed or out-of-range caller input. Handlers
// map it to a 400 response.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError from a message.
func Validation(msg string) error { return &ValidationError{Msg: msg} }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientStockError carries which game ran short and how many units
// remain. errors.Is(err, ErrInsufficientStock) matches it.
type InsufficientStockError struct {
	GameName  string
	Available int
}

func (e *InsufficientStockError) Error() string {
	if e.GameName == "" {
		return fmt.Sprintf("insufficient stock: %d available", e.Available)
	}
	return fmt.Sprintf("insufficient stock for %s: %d available", e.GameName, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
