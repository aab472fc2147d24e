package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/sweetshop/sweet-shop-api/internal/api/metrics"
	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
	"github.com/sweetshop/sweet-shop-api/internal/core/ports"
)

// SweetService implements catalog and inventory use cases. The cache is
// optional: a nil CatalogCache disables listing caching, and cache failures
// are logged but never fail the request.
type SweetService struct {
	repo   ports.SweetRepository
	cache  ports.CatalogCache
	logger zerolog.Logger
}

func NewSweetService(repo ports.SweetRepository, cache ports.CatalogCache, logger zerolog.Logger) *SweetService {
	return &SweetService{repo: repo, cache: cache, logger: logger}
}

// ListSweets returns the whole catalog, read-through the cache when one is
// configured.
func (s *SweetService) ListSweets(ctx context.Context) ([]*domain.Sweet, error) {
	if s.cache != nil {
		sweets, ok, err := s.cache.GetListing(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("catalog cache read failed, falling back to store")
		} else if ok {
			metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
			return sweets, nil
		} else {
			metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	sweets, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetListing(ctx, sweets); err != nil {
			s.logger.Warn().Err(err).Msg("catalog cache write failed")
		}
	}
	return sweets, nil
}

// SearchSweets applies the AND-combined filter. An empty filter behaves
// exactly like ListSweets.
func (s *SweetService) SearchSweets(ctx context.Context, filter ports.SweetFilter) ([]*domain.Sweet, error) {
	if filter.IsZero() {
		return s.ListSweets(ctx)
	}
	return s.repo.Search(ctx, filter)
}

func (s *SweetService) AddSweet(ctx context.Context, input ports.AddSweetInput) (*domain.Sweet, error) {
	if input.Name == "" || input.Category == "" || input.Price == 0 || input.Quantity == 0 {
		return nil, domain.ErrMissingFields
	}

	now := time.Now().UTC()
	sweet := &domain.Sweet{
		Name:      input.Name,
		Category:  input.Category,
		Price:     input.Price,
		Quantity:  input.Quantity,
		ImageURL:  input.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Insert(ctx, sweet)
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to add sweet")
		return nil, err
	}

	metrics.SweetsCreatedTotal.Inc()
	s.logger.Info().Str("sweet_id", created.ID).Str("name", created.Name).Msg("sweet added")
	s.invalidateCache(ctx)
	return created, nil
}

func (s *SweetService) UpdateSweet(ctx context.Context, id string, patch ports.SweetPatch) (*domain.Sweet, error) {
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("sweet_id", id).Msg("sweet updated")
	s.invalidateCache(ctx)
	return updated, nil
}

func (s *SweetService) DeleteSweet(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("sweet_id", id).Msg("sweet deleted")
	s.invalidateCache(ctx)
	return nil
}

// PurchaseSweet decrements stock by exactly one unit. The repository's
// conditional decrement guarantees quantity never drops below zero even
// under concurrent purchases.
func (s *SweetService) PurchaseSweet(ctx context.Context, id string) (*domain.Sweet, error) {
	sweet, err := s.repo.DecrementQuantity(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrOutOfStock) {
			metrics.PurchasesTotal.WithLabelValues("out_of_stock").Inc()
		}
		return nil, err
	}

	metrics.PurchasesTotal.WithLabelValues("ok").Inc()
	s.logger.Info().Str("sweet_id", id).Int("quantity", sweet.Quantity).Msg("sweet purchased")
	s.invalidateCache(ctx)
	return sweet, nil
}

// RestockSweet additively increases stock. Restock never sets an absolute
// quantity.
func (s *SweetService) RestockSweet(ctx context.Context, id string, quantity int) (*domain.Sweet, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	sweet, err := s.repo.IncrementQuantity(ctx, id, quantity)
	if err != nil {
		return nil, err
	}

	metrics.RestocksTotal.Inc()
	s.logger.Info().Str("sweet_id", id).Int("added", quantity).Int("quantity", sweet.Quantity).Msg("sweet restocked")
	s.invalidateCache(ctx)
	return sweet, nil
}

func (s *SweetService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
