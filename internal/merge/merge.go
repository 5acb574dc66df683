// Package merge folds freshly extracted categories into an existing
// navigation document.
package merge

import (
	"github.com/MrSnakeDoc/navsite/internal/domain"
	"github.com/MrSnakeDoc/navsite/internal/slug"
)

// Engine merges categories. The zero value follows the legacy converter:
// every site id already present in the document is reserved, including the
// ids of categories the batch is about to replace.
type Engine struct {
	// ReleaseReplaced leaves the site ids of categories replaced by this
	// batch out of the reserved set, so re-importing the same export keeps
	// ids stable instead of suffixing them.
	ReleaseReplaced bool

	// PlaceholderIcon identifies sites reported as missing an icon.
	// Defaults to domain.PlaceholderSiteIcon.
	PlaceholderIcon string
}

// Merge returns the merged document and what changed. Neither existing nor
// fresh is modified. A nil existing document means none is stored yet.
//
// Fresh categories are applied in order: a category whose id already exists
// replaces that entry in place, keeping a curated icon; any other category is
// appended. When the batch repeats a category id, the last one wins at the
// position of the first. Site ids are made unique across the resulting
// document, with earlier claims visible to later categories of the same batch.
func (e Engine) Merge(existing *domain.Document, fresh []domain.Category) (*domain.Document, *Report) {
	report := &Report{Created: existing == nil}
	fresh = lastByID(fresh)

	out := existing.Clone()
	if out == nil {
		out = &domain.Document{Categories: make([]domain.Category, 0, len(fresh))}
	}

	ids := e.reservedIDs(out, fresh)
	placeholder := e.PlaceholderIcon
	if placeholder == "" {
		placeholder = domain.PlaceholderSiteIcon
	}

	for _, category := range fresh {
		category.Sites = e.claimSites(ids, category, report)

		for _, s := range category.Sites {
			if s.Icon == placeholder {
				report.PlaceholderSites = append(report.PlaceholderSites, s)
			}
		}
		report.ParsedSites += len(category.Sites)

		if idx := out.CategoryIndex(category.ID); idx >= 0 {
			if prev := out.Categories[idx]; prev.HasCustomIcon() {
				category.Icon = prev.Icon
			}
			out.Categories[idx] = category
			report.Replaced = append(report.Replaced, Change{CategoryID: category.ID, Sites: len(category.Sites)})
			continue
		}

		out.Categories = append(out.Categories, category)
		report.Appended = append(report.Appended, Change{CategoryID: category.ID, Sites: len(category.Sites)})
	}

	report.TotalCategories = len(out.Categories)
	report.TotalSites = out.SiteCount()

	return out, report
}

// lastByID drops earlier duplicates of a category id, keeping the position
// of the first occurrence and the content of the last.
func lastByID(fresh []domain.Category) []domain.Category {
	pos := make(map[string]int, len(fresh))
	out := make([]domain.Category, 0, len(fresh))
	for _, c := range fresh {
		if i, seen := pos[c.ID]; seen {
			out[i] = c
			continue
		}
		pos[c.ID] = len(out)
		out = append(out, c)
	}
	return out
}

func (e Engine) reservedIDs(doc *domain.Document, fresh []domain.Category) *slug.Registry {
	replaced := make(map[string]struct{}, len(fresh))
	if e.ReleaseReplaced {
		for _, c := range fresh {
			replaced[c.ID] = struct{}{}
		}
	}

	ids := slug.NewRegistry()
	for _, c := range doc.Categories {
		if _, skip := replaced[c.ID]; skip {
			continue
		}
		for _, s := range c.Sites {
			ids.Reserve(s.ID)
		}
	}
	return ids
}

func (e Engine) claimSites(ids *slug.Registry, category domain.Category, report *Report) []domain.Site {
	sites := make([]domain.Site, len(category.Sites))
	for i, s := range category.Sites {
		id := ids.Claim(s.ID)
		if id != s.ID {
			report.Renamed = append(report.Renamed, Rename{CategoryID: category.ID, From: s.ID, To: id})
		}
		s.ID = id
		sites[i] = s
	}
	return sites
}
