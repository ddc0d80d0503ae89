package domain

import "context"

// ImageRepository loads image listings from a remote source
type ImageRepository interface {
	// ListImages issues one request for the given page and returns the decoded list
	ListImages(ctx context.Context, q Query) ([]Image, error)

	// RequestURL returns the exact URL ListImages would request for q
	RequestURL(q Query) (string, error)
}
