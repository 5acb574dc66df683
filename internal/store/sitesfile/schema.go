package sitesfile

import (
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/navsite/internal/domain"
)

// rawDocument mirrors sites.json with every field optional, so absent
// values can be told apart from empty ones during validation.
type rawDocument struct {
	Categories *[]rawCategory `json:"categories"`
}

type rawCategory struct {
	ID    *string    `json:"id"`
	Name  *string    `json:"name"`
	Icon  *string    `json:"icon"`
	Sites *[]rawSite `json:"sites"`
}

type rawSite struct {
	ID          *string `json:"id"`
	Name        *string `json:"name"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

func (r rawDocument) toDocument() (*domain.Document, error) {
	doc := &domain.Document{Categories: []domain.Category{}}
	if r.Categories == nil {
		return doc, nil
	}

	seen := make(map[string]struct{}, len(*r.Categories))
	for i, rc := range *r.Categories {
		id := str(rc.ID)
		if id == "" {
			return nil, fmt.Errorf("categories[%d]: missing id", i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("categories[%d]: duplicate id %q", i, id)
		}
		seen[id] = struct{}{}

		category := domain.Category{
			ID:    id,
			Name:  str(rc.Name),
			Icon:  str(rc.Icon),
			Sites: []domain.Site{},
		}
		if rc.Sites != nil {
			for j, rs := range *rc.Sites {
				site, err := rs.toSite()
				if err != nil {
					return nil, fmt.Errorf("categories[%d].sites[%d]: %w", i, j, err)
				}
				category.Sites = append(category.Sites, site)
			}
		}
		doc.Categories = append(doc.Categories, category)
	}

	return doc, nil
}

var errMissingSiteID = errors.New("missing id")

func (r rawSite) toSite() (domain.Site, error) {
	id := str(r.ID)
	if id == "" {
		return domain.Site{}, errMissingSiteID
	}
	return domain.Site{
		ID:          id,
		Name:        str(r.Name),
		URL:         str(r.URL),
		Description: str(r.Description),
		Icon:        str(r.Icon),
	}, nil
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
