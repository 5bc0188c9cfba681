package listing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"dealscout/pkg/logger"
	"dealscout/pkg/redis"
)

// Service is the read facade the HTTP layer consumes. Search pages and
// single listings are cached in Redis for a short TTL; imports do not
// invalidate, stale-for-a-minute is acceptable for the search page.
type Service struct {
	repo   *Repository
	cache  *redis.Cache
	logger *logger.Logger
}

// NewService creates a new listing service.
func NewService(repo *Repository, cache *redis.Cache, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: log.WithField("module", "listing"),
	}
}

// Search returns listings matching the query.
func (s *Service) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	key := redis.SearchKey(hashQuery(q))

	var cached SearchResult
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.WithError(err).Warn("Search cache read failed")
	}
	if found {
		return &cached, nil
	}

	result, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, result, redis.TTLSearch); err != nil {
		s.logger.WithError(err).Warn("Search cache write failed")
	}

	return result, nil
}

// GetByID returns one listing, or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*Listing, error) {
	key := redis.ListingKey(id)

	var cached Listing
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.WithError(err).Warn("Listing cache read failed")
	}
	if found {
		return &cached, nil
	}

	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, l, redis.TTLListing); err != nil {
		s.logger.WithError(err).Warn("Listing cache write failed")
	}

	return l, nil
}

// hashQuery builds a stable cache key from the search filters.
func hashQuery(q SearchQuery) string {
	minPrice, maxPrice := "", ""
	if q.MinPrice != nil {
		minPrice = fmt.Sprintf("%.2f", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		maxPrice = fmt.Sprintf("%.2f", *q.MaxPrice)
	}

	raw := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%d|%d",
		q.Keyword, q.Industry, q.City, q.State, minPrice, maxPrice, q.Limit, q.Offset)

	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:8])
}
