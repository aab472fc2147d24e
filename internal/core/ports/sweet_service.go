package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

// AddSweetInput carries all data needed to create a catalog entry.
type AddSweetInput struct {
	Name     string
	Category string
	Price    float64
	Quantity int
	ImageURL string // optional
}

// SweetService defines the catalog and inventory use cases.
type SweetService interface {
	ListSweets(ctx context.Context) ([]*domain.Sweet, error)
	SearchSweets(ctx context.Context, filter SweetFilter) ([]*domain.Sweet, error)
	AddSweet(ctx context.Context, input AddSweetInput) (*domain.Sweet, error)
	UpdateSweet(ctx context.Context, id string, patch SweetPatch) (*domain.Sweet, error)
	DeleteSweet(ctx context.Context, id string) error
	// PurchaseSweet decrements stock by exactly one unit.
	PurchaseSweet(ctx context.Context, id string) (*domain.Sweet, error)
	// RestockSweet additively increases stock by quantity (> 0).
	RestockSweet(ctx context.Context, id string, quantity int) (*domain.Sweet, error)
}

// CatalogCache is the optional read cache for the full listing. A nil
// CatalogCache disables caching entirely; all methods are best-effort.
type CatalogCache interface {
	GetListing(ctx context.Context) ([]*domain.Sweet, bool, error)
	SetListing(ctx context.Context, sweets []*domain.Sweet) error
	Invalidate(ctx context.Context) error
}
