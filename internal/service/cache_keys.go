package service

// PrefixListing is the prefix for listing caches (listing:{requestURL})
const PrefixListing = "listing:"

// CacheKey returns the store key for a listing request.
// Keying by the full URL keeps every page/limit combination separate.
func CacheKey(requestURL string) string {
	return PrefixListing + requestURL
}
