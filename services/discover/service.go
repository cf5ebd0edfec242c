// Package discover implements the browse flows: banner listing, popular
// movies and title search, each enriched with full per-movie detail.
package discover

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/iter"

	"filmera/config"
	"filmera/models"
)

type catalogClient interface {
	NowPlaying(ctx context.Context) (*models.CatalogListing, error)
	Popular(ctx context.Context) (*models.CatalogListing, error)
	MovieByID(ctx context.Context, id int64) (*models.CatalogMovie, error)
}

type recordClient interface {
	SearchByTitle(ctx context.Context, query string) ([]models.RecordMovie, error)
	ByID(ctx context.Context, key string) (*models.RecordMovie, error)
}

// Service drives the discovery flows against the two provider clients.
type Service struct {
	catalog catalogClient
	records recordClient
	limits  config.DiscoverySettings
}

// NewService constructs a discovery service.
func NewService(catalog catalogClient, records recordClient, limits config.DiscoverySettings) *Service {
	return &Service{catalog: catalog, records: records, limits: limits}
}

// Banners returns the now-playing movies eligible for the banner
// carousel: only movies with a backdrop image, capped at the configured
// limit.
func (s *Service) Banners(ctx context.Context) ([]models.CatalogMovie, error) {
	listing, err := s.catalog.NowPlaying(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch banners: %w", err)
	}

	banners := make([]models.CatalogMovie, 0, s.limits.BannerLimit)
	for _, movie := range listing.Results {
		if movie.BackdropPath == "" {
			continue
		}
		banners = append(banners, movie)
		if len(banners) == s.limits.BannerLimit {
			break
		}
	}
	return banners, nil
}

// Popular returns the popular listing enriched with full detail for
// each movie. The detail fetches run concurrently; one failure fails
// the whole batch so a half-complete grid is never rendered.
func (s *Service) Popular(ctx context.Context) ([]models.CatalogMovie, error) {
	listing, err := s.catalog.Popular(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch popular: %w", err)
	}

	picks := listing.Results
	if len(picks) > s.limits.PopularLimit {
		picks = picks[:s.limits.PopularLimit]
	}

	detailed, err := iter.MapErr(picks, func(movie *models.CatalogMovie) (models.CatalogMovie, error) {
		full, err := s.catalog.MovieByID(ctx, movie.ID)
		if err != nil {
			return models.CatalogMovie{}, err
		}
		return *full, nil
	})
	if err != nil {
		return nil, fmt.Errorf("enrich popular: %w", err)
	}
	return detailed, nil
}

// Search runs a record-provider title search and enriches each hit with
// its full record, all-or-nothing like Popular. Zero matches surface as
// records.ErrNoResults.
func (s *Service) Search(ctx context.Context, query string) ([]models.RecordMovie, error) {
	hits, err := s.records.SearchByTitle(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(hits) > s.limits.SearchLimit {
		hits = hits[:s.limits.SearchLimit]
	}

	detailed, err := iter.MapErr(hits, func(hit *models.RecordMovie) (models.RecordMovie, error) {
		full, err := s.records.ByID(ctx, hit.ImdbID)
		if err != nil {
			return models.RecordMovie{}, err
		}
		return *full, nil
	})
	if err != nil {
		return nil, fmt.Errorf("enrich search: %w", err)
	}
	return detailed, nil
}
