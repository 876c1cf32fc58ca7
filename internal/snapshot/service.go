package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/motify/sitekit/internal/logging"
	"github.com/motify/sitekit/internal/slugmap"
	"github.com/motify/sitekit/pkg/interfaces"
)

const listingsKey = "slug-listings"

// Service stores and restores slug listings. It implements
// slugmap.Snapshots.
type Service struct {
	repo   repository.Repository[*ContentSnapshot]
	logger interfaces.Logger
}

// NewService creates a snapshot service without read caching.
func NewService(db *bun.DB, logger interfaces.Logger) *Service {
	return NewServiceWithCache(db, nil, nil, logger)
}

// NewServiceWithCache creates a snapshot service. When both cache service
// and serializer are provided, repository reads go through the cache.
func NewServiceWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	base := NewSnapshotRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &Service{repo: base, logger: logger}
}

type listingsPayload struct {
	Listings  slugmap.Listings `json:"listings"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// SaveListings upserts the listings under the well-known key.
func (s *Service) SaveListings(ctx context.Context, listings slugmap.Listings) error {
	payload, err := json.Marshal(listingsPayload{Listings: listings, FetchedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("snapshot: encode listings: %w", err)
	}

	existing, err := s.repo.GetByIdentifier(ctx, listingsKey)
	switch {
	case err == nil:
		existing.Payload = payload
		existing.FetchedAt = time.Now().UTC()
		if _, err := s.repo.Update(ctx, existing); err != nil {
			return fmt.Errorf("snapshot: update listings: %w", err)
		}
	case goerrors.IsCategory(err, repository.CategoryDatabaseNotFound):
		record := &ContentSnapshot{
			ID:        uuid.New(),
			Key:       listingsKey,
			Payload:   payload,
			FetchedAt: time.Now().UTC(),
		}
		if _, err := s.repo.Create(ctx, record); err != nil {
			return fmt.Errorf("snapshot: create listings: %w", err)
		}
	default:
		return fmt.Errorf("snapshot: read listings: %w", err)
	}

	s.logger.Debug("snapshot: listings saved", "bytes", len(payload))
	return nil
}

// LoadListings returns the last persisted listings. The boolean reports
// whether a snapshot existed.
func (s *Service) LoadListings(ctx context.Context) (slugmap.Listings, bool, error) {
	record, err := s.repo.GetByIdentifier(ctx, listingsKey)
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return slugmap.Listings{}, false, nil
		}
		return slugmap.Listings{}, false, fmt.Errorf("snapshot: read listings: %w", err)
	}

	var payload listingsPayload
	if err := json.Unmarshal(record.Payload, &payload); err != nil {
		return slugmap.Listings{}, false, fmt.Errorf("snapshot: decode listings: %w", err)
	}
	s.logger.Info("snapshot: listings restored", "fetched_at", payload.FetchedAt)
	return payload.Listings, true, nil
}

var _ slugmap.Snapshots = (*Service)(nil)
