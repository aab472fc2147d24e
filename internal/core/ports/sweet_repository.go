package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

// SweetFilter carries the optional search criteria for the sweets
// collection. Zero values mean "no constraint"; all present constraints
// combine with logical AND.
type SweetFilter struct {
	Name     string   // case-insensitive substring match
	Category string   // exact match
	MinPrice *float64 // inclusive lower bound
	MaxPrice *float64 // inclusive upper bound
}

// IsZero reports whether no constraint is set, i.e. the filter matches
// the whole catalog.
func (f SweetFilter) IsZero() bool {
	return f.Name == "" && f.Category == "" && f.MinPrice == nil && f.MaxPrice == nil
}

// SweetPatch is an explicit partial update: nil means "leave unchanged",
// a non-nil pointer means "set to this value". An ImageURL pointing at an
// empty string clears the image entirely.
type SweetPatch struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int
	ImageURL *string
}

// IsZero reports whether the patch changes nothing.
func (p SweetPatch) IsZero() bool {
	return p.Name == nil && p.Category == nil && p.Price == nil && p.Quantity == nil && p.ImageURL == nil
}

// SweetRepository defines persistence operations for the sweet catalog.
type SweetRepository interface {
	Insert(ctx context.Context, sweet *domain.Sweet) (*domain.Sweet, error)
	FindAll(ctx context.Context) ([]*domain.Sweet, error)
	Search(ctx context.Context, filter SweetFilter) ([]*domain.Sweet, error)
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	// Update applies the patch and returns the updated document, or
	// domain.ErrSweetNotFound when id does not exist.
	Update(ctx context.Context, id string, patch SweetPatch) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error
	// DecrementQuantity atomically decrements quantity by one, guarded by
	// quantity > 0, and returns the updated document. A miss on the guard
	// yields domain.ErrOutOfStock; a missing id yields
	// domain.ErrSweetNotFound.
	DecrementQuantity(ctx context.Context, id string) (*domain.Sweet, error)
	// IncrementQuantity atomically adds the given positive amount and
	// returns the updated document.
	IncrementQuantity(ctx context.Context, id string, amount int) (*domain.Sweet, error)
}
