package domain

import "strings"

// FilterQuery is what the navigation page sends when the user types in
// the search box or picks a category in the sidebar.
type FilterQuery struct {
	Query      string // free text matched against site name and description
	CategoryID string // empty = all categories
}

// IsEmpty reports whether no filter is active.
func (q FilterQuery) IsEmpty() bool {
	return strings.TrimSpace(q.Query) == "" && q.CategoryID == ""
}

// Filter returns the categories visible for q.
//
// With no filter every category is returned as-is, empty ones included.
// With any filter active, categories left without sites are dropped.
// The input document is never modified.
func Filter(doc *Document, q FilterQuery) []Category {
	if doc == nil {
		return []Category{}
	}
	if q.IsEmpty() {
		return doc.Clone().Categories
	}

	needle := strings.ToLower(strings.TrimSpace(q.Query))
	out := make([]Category, 0, len(doc.Categories))

	for _, category := range doc.Categories {
		if q.CategoryID != "" && category.ID != q.CategoryID {
			continue
		}

		sites := make([]Site, 0, len(category.Sites))
		for _, site := range category.Sites {
			if needle == "" || site.Matches(needle) {
				sites = append(sites, site)
			}
		}
		if len(sites) == 0 {
			continue
		}

		category.Sites = sites
		out = append(out, category)
	}

	return out
}

// Matches reports whether the lowercased needle appears in the site name
// or description, case-insensitively.
func (s Site) Matches(needle string) bool {
	return strings.Contains(strings.ToLower(s.Name), needle) ||
		strings.Contains(strings.ToLower(s.Description), needle)
}

// FindExactSite returns the first site whose name equals q, ignoring case
// and surrounding whitespace.
func FindExactSite(doc *Document, q string) (*Site, bool) {
	q = strings.ToLower(strings.TrimSpace(q))
	if doc == nil || q == "" {
		return nil, false
	}
	for i := range doc.Categories {
		for j := range doc.Categories[i].Sites {
			site := &doc.Categories[i].Sites[j]
			if strings.ToLower(site.Name) == q {
				return site, true
			}
		}
	}
	return nil, false
}
