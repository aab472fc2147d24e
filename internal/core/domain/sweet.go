package domain

import (
	"errors"
	"time"
)

var ErrSweetNotFound = errors.New("sweet not found")
var ErrOutOfStock = errors.New("sweet out of stock")
var ErrInvalidQuantity = errors.New("quantity must be greater than 0")
var ErrMissingFields = errors.New("all fields are required")

// Sweet is the catalog aggregate: a product with a price and a stock count.
// Quantity never goes below zero; the repository enforces this with a
// conditional decrement.
type Sweet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InStock reports whether at least one unit can be purchased.
func (s *Sweet) InStock() bool {
	return s.Quantity > 0
}
