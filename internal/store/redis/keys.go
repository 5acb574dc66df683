package redis

import "strings"

const (
	// KeyPrefixClicks is the prefix for per-site click counters
	KeyPrefixClicks = "navsite:clicks:"
	// KeyPrefixCache is the prefix for cached query -> site resolutions
	KeyPrefixCache = "navsite:cache:"
	// KeyAllClicks is the set of site IDs that have a counter.
	// Outside the clicks prefix so a site named "all" cannot collide.
	KeyAllClicks = "navsite:counted"
)

// ClicksKey returns the Redis key for a site's click counter
func ClicksKey(siteID string) string {
	return KeyPrefixClicks + siteID
}

// CacheKey returns the Redis key for a cached resolution.
// Queries are case-insensitive.
func CacheKey(query string) string {
	return KeyPrefixCache + strings.ToLower(strings.TrimSpace(query))
}

// AllClicksKey returns the key for the set of counted site IDs
func AllClicksKey() string {
	return KeyAllClicks
}
