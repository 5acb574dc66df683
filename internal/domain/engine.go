package domain

import (
	"net/url"
	"strings"
)

// InternalEngineID selects in-site search instead of an external engine.
const InternalEngineID = "internal"

// SearchEngine is one entry of the search box engine selector.
type SearchEngine struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	// URL holds a {query} placeholder. Empty for the internal engine.
	URL  string `yaml:"url,omitempty" json:"url,omitempty"`
	Icon string `yaml:"icon,omitempty" json:"icon,omitempty"`
}

// IsInternal reports whether the engine searches the site list itself.
func (e SearchEngine) IsInternal() bool {
	return e.ID == InternalEngineID
}

// SearchURL expands the {query} placeholder with the escaped query.
// Returns "" for the internal engine or an engine without template.
func (e SearchEngine) SearchURL(query string) string {
	if e.IsInternal() || e.URL == "" {
		return ""
	}
	return strings.ReplaceAll(e.URL, "{query}", url.QueryEscape(strings.TrimSpace(query)))
}

// DefaultEngines is used when no engines file is configured.
func DefaultEngines() []SearchEngine {
	return []SearchEngine{
		{ID: InternalEngineID, Name: "站内"},
		{ID: "google", Name: "Google", URL: "https://www.google.com/search?q={query}"},
		{ID: "bing", Name: "Bing", URL: "https://www.bing.com/search?q={query}"},
		{ID: "baidu", Name: "百度", URL: "https://www.baidu.com/s?wd={query}"},
	}
}

// FindEngine returns the engine with the given ID.
func FindEngine(engines []SearchEngine, id string) (SearchEngine, bool) {
	for _, e := range engines {
		if e.ID == id {
			return e, true
		}
	}
	return SearchEngine{}, false
}
