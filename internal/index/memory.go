package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/navsite/internal/domain"
)

// MemoryIndex holds the navigation document currently served and the
// per-site click counters. It is the primary source; Redis only persists
// counters across restarts.
//
// The document is swapped as a whole on reload and never mutated in place,
// so a pointer returned by Document stays a consistent snapshot.
type MemoryIndex struct {
	mu         sync.RWMutex
	doc        *domain.Document
	sites      map[string]*domain.Site // ID -> Site, into doc
	counters   map[string]int64        // ID -> clicks
	lastReload time.Time
}

// NewMemoryIndex creates an empty index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		doc:      &domain.Document{Categories: []domain.Category{}},
		sites:    make(map[string]*domain.Site),
		counters: make(map[string]int64),
	}
}

// UpdateDocument replaces the served document. The index keeps its own copy.
func (idx *MemoryIndex) UpdateDocument(doc *domain.Document) {
	snapshot := doc.Clone()
	if snapshot == nil {
		snapshot = &domain.Document{Categories: []domain.Category{}}
	}

	sites := make(map[string]*domain.Site, snapshot.SiteCount())
	for i := range snapshot.Categories {
		for j := range snapshot.Categories[i].Sites {
			site := &snapshot.Categories[i].Sites[j]
			// first occurrence wins, like Document.Site
			if _, dup := sites[site.ID]; !dup {
				sites[site.ID] = site
			}
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.doc = snapshot
	idx.sites = sites
	idx.lastReload = time.Now()
}

// Document returns the current snapshot. Callers must not modify it.
func (idx *MemoryIndex) Document() *domain.Document {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.doc
}

// GetSite retrieves a site by ID.
func (idx *MemoryIndex) GetSite(id string) (domain.Site, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	site, ok := idx.sites[id]
	if !ok {
		return domain.Site{}, false
	}
	return *site, true
}

// HasSite reports whether a site with this ID is currently served.
func (idx *MemoryIndex) HasSite(id string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	_, ok := idx.sites[id]
	return ok
}

// Count returns the number of distinct site IDs served.
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.sites)
}

// CategoryCount returns the number of categories served.
func (idx *MemoryIndex) CategoryCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.doc.Categories)
}

// IncrementCounter adds one click to a site and returns the new total.
// Unknown sites are ignored and return 0.
func (idx *MemoryIndex) IncrementCounter(id string) int64 {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, ok := idx.sites[id]; !ok {
		return 0
	}
	idx.counters[id]++
	return idx.counters[id]
}

// Counter returns the clicks recorded for a site.
func (idx *MemoryIndex) Counter(id string) int64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.counters[id]
}

// Counters returns a copy of all click counters.
func (idx *MemoryIndex) Counters() map[string]int64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make(map[string]int64, len(idx.counters))
	for id, n := range idx.counters {
		out[id] = n
	}
	return out
}

// MergeCounters keeps the larger value per site. Used when restoring
// counters persisted in Redis.
func (idx *MemoryIndex) MergeCounters(counters map[string]int64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for id, n := range counters {
		if n > idx.counters[id] {
			idx.counters[id] = n
		}
	}
}

// DeleteCounter removes the counter of a site.
func (idx *MemoryIndex) DeleteCounter(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	delete(idx.counters, id)
}

// GetLastReload returns the timestamp of the last document update.
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
