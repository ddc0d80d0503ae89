package domain

import "time"

// Store handles the local listing cache (BoltDB + memory).
// Keys are request URLs, so each page/limit combination is cached separately.
type Store interface {
	GetImages(key string) ([]Image, time.Time, bool)
	SaveImages(key string, images []Image) error

	Invalidate(key string)
	InvalidateAll()

	Close() error
}
