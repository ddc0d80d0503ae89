package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/slide/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// dbFileName is the database file inside each per-source directory
const dbFileName = "slide.db"

// Bucket names
var (
	bucketListings = []byte("listings")
)

// listingEntry is the stored form of one cached listing
type listingEntry struct {
	Images    []domain.Image `json:"images"`
	FetchedAt time.Time      `json:"fetchedAt"`
}

// ImageStore implements domain.Store using BoltDB.
type ImageStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte

	now func() time.Time
}

// NewImageStore opens the cache for one listing source.
// An empty baseCacheDir keeps everything in memory.
func NewImageStore(baseCacheDir, sourceURL string) (*ImageStore, error) {
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &ImageStore{cache: make(map[string][]byte), now: time.Now}, nil
	}

	dir := baseCacheDir
	if sourceURL != "" {
		dir = filepath.Join(baseCacheDir, hashSourceURL(sourceURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, dbFileName)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketListings)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &ImageStore{db: db, cache: make(map[string][]byte), now: time.Now}, nil
}

// ClearAll removes every per-source cache under baseCacheDir. Only
// directories holding a cache database are touched; anything else under
// baseCacheDir is left alone.
func ClearAll(baseCacheDir string) (int, error) {
	if baseCacheDir == "" {
		return 0, nil
	}

	entries, err := os.ReadDir(baseCacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if !e.IsDir() || !isSourceDirName(e.Name()) {
			continue
		}
		dir := filepath.Join(baseCacheDir, e.Name())
		if _, err := os.Stat(filepath.Join(dir, dbFileName)); err != nil {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			return removed, fmt.Errorf("failed to clear cache: %w", err)
		}
		removed++
	}
	return removed, nil
}

// isSourceDirName reports whether name looks like a hashSourceURL result
func isSourceDirName(name string) bool {
	if len(name) != 12 {
		return false
	}
	_, err := hex.DecodeString(name)
	return err == nil
}

func hashSourceURL(sourceURL string) string {
	normalized := strings.TrimRight(strings.ToLower(sourceURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *ImageStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *ImageStore) get(key string, dest any) bool {
	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketListings)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *ImageStore) set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketListings).Put([]byte(key), data)
	})
}

// === Listings ===

// GetImages returns the cached listing for key and when it was fetched
func (s *ImageStore) GetImages(key string) ([]domain.Image, time.Time, bool) {
	var entry listingEntry
	if !s.get(key, &entry) {
		return nil, time.Time{}, false
	}
	if entry.Images == nil {
		entry.Images = []domain.Image{}
	}
	return entry.Images, entry.FetchedAt, true
}

// SaveImages stores a listing under key, stamped with the current time
func (s *ImageStore) SaveImages(key string, images []domain.Image) error {
	return s.set(key, listingEntry{Images: images, FetchedAt: s.now()})
}

// === Invalidation ===

func (s *ImageStore) Invalidate(key string) {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketListings); b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

func (s *ImageStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketListings); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket(bucketListings)
		return err
	})
}
