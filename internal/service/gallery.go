package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/slide/internal/domain"
)

// GalleryService loads image listings, serving from the local store when fresh
type GalleryService struct {
	repo   domain.ImageRepository
	store  domain.Store // nil disables caching
	ttl    time.Duration
	logger *slog.Logger

	now func() time.Time
}

// NewGalleryService creates a new gallery service. A nil store disables
// caching; a zero ttl keeps cached listings forever.
func NewGalleryService(repo domain.ImageRepository, store domain.Store, ttl time.Duration, logger *slog.Logger) *GalleryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GalleryService{
		repo:   repo,
		store:  store,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Load returns the listing for q. With refresh set the store is bypassed
// (but still updated). fromCache reports whether the result came from the store.
func (s *GalleryService) Load(ctx context.Context, q domain.Query, refresh bool) (images []domain.Image, fromCache bool, err error) {
	reqURL, err := s.repo.RequestURL(q)
	if err != nil {
		return nil, false, err
	}
	key := CacheKey(reqURL)

	if s.store != nil && !refresh {
		if cached, fetchedAt, ok := s.store.GetImages(key); ok {
			if s.ttl <= 0 || s.now().Sub(fetchedAt) < s.ttl {
				s.logger.Debug("listing served from cache", "url", reqURL, "count", len(cached), "age", s.now().Sub(fetchedAt))
				return cached, true, nil
			}
			s.logger.Debug("cached listing expired", "url", reqURL, "fetchedAt", fetchedAt)
		}
	}

	images, err = s.repo.ListImages(ctx, q)
	if err != nil {
		s.logger.Warn("listing fetch failed", "url", reqURL, "error", err)
		return nil, false, err
	}
	s.logger.Info("listing fetched", "url", reqURL, "count", len(images))

	if s.store != nil {
		if err := s.store.SaveImages(key, images); err != nil {
			// The listing is still usable without a cache write
			s.logger.Warn("failed to cache listing", "url", reqURL, "error", err)
		}
	}

	return images, false, nil
}

// Forget drops the cached listing for q
func (s *GalleryService) Forget(q domain.Query) error {
	if s.store == nil {
		return nil
	}
	reqURL, err := s.repo.RequestURL(q)
	if err != nil {
		return fmt.Errorf("cannot forget listing: %w", err)
	}
	s.store.Invalidate(CacheKey(reqURL))
	return nil
}
