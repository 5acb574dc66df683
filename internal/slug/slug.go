// Package slug turns free-text names into lowercase identifiers that are
// safe as JSON keys and URL path segments.
package slug

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^a-z0-9\x{4e00}-\x{9fa5}\-]`)
	hyphenRun     = regexp.MustCompile(`-+`)
)

// Normalize maps s to an identifier made of lowercase ASCII letters, digits,
// CJK ideographs (U+4E00..U+9FA5) and single hyphens, without leading or
// trailing hyphens. It may return "", in which case the caller picks a fallback.
//
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// FirstNonEmpty normalizes each candidate in order and returns the first
// non-empty result.
func FirstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if id := Normalize(c); id != "" {
			return id
		}
	}
	return ""
}

// Registry hands out identifiers that are unique within one scope.
// The zero value is not usable; use NewRegistry.
type Registry struct {
	taken map[string]struct{}
}

// NewRegistry returns a registry with the given identifiers already taken.
func NewRegistry(taken ...string) *Registry {
	r := &Registry{taken: make(map[string]struct{}, len(taken))}
	for _, id := range taken {
		r.Reserve(id)
	}
	return r
}

// Reserve marks id as taken as-is.
func (r *Registry) Reserve(id string) {
	r.taken[id] = struct{}{}
}

// Taken reports whether id is already registered.
func (r *Registry) Taken(id string) bool {
	_, ok := r.taken[id]
	return ok
}

// Claim returns base when it is free, otherwise the first free of
// base-1, base-2, ... The returned identifier is registered immediately.
func (r *Registry) Claim(base string) string {
	id := base
	for n := 1; r.Taken(id); n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	r.Reserve(id)
	return id
}

// Len returns the number of registered identifiers.
func (r *Registry) Len() int {
	return len(r.taken)
}
