package homepage

import (
	"sort"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/navsite/internal/domain"
	"github.com/MrSnakeDoc/navsite/internal/slug"
)

// IconResolver maps a raw icon reference to the stored icon value.
type IconResolver interface {
	Resolve(raw string) string
}

// Mapper converts Homepage groups to domain categories.
type Mapper struct {
	icons IconResolver
}

// NewMapper creates a new mapper instance. icons may be nil, in which case
// every site gets domain.PlaceholderSiteIcon.
func NewMapper(icons IconResolver) *Mapper {
	return &Mapper{icons: icons}
}

// entry is the common shape of a service and a bookmark.
type entry struct {
	name        string
	url         string
	description string
	icon        string
}

// MapServices converts ServicesConfig to categories, one per group.
func (m *Mapper) MapServices(config ServicesConfig) []domain.Category {
	categories := make([]domain.Category, 0, len(config))

	for _, groupMap := range config {
		for _, groupName := range sortedKeys(groupMap) {
			var entries []entry
			for _, serviceMap := range groupMap[groupName] {
				for _, serviceName := range sortedKeys(serviceMap) {
					props := serviceMap[serviceName]
					entries = append(entries, entry{
						name:        serviceName,
						url:         props.Href,
						description: props.Description,
						icon:        props.Icon,
					})
				}
			}
			categories = m.appendCategory(categories, groupName, entries)
		}
	}

	return categories
}

// MapBookmarks converts BookmarksConfig to categories, one per group.
// The bookmark abbreviation becomes the site description.
func (m *Mapper) MapBookmarks(config BookmarksConfig) []domain.Category {
	categories := make([]domain.Category, 0, len(config))

	for _, group := range config {
		for _, groupName := range sortedKeys(group) {
			var entries []entry
			for _, bookmarkMap := range group[groupName] {
				for _, bookmarkName := range sortedKeys(bookmarkMap) {
					entryList := bookmarkMap[bookmarkName]
					// Each bookmark has a list with a single entry
					if len(entryList) == 0 {
						continue
					}
					e := entryList[0]
					entries = append(entries, entry{
						name:        bookmarkName,
						url:         e.Href,
						description: e.Abbr,
						icon:        e.Icon,
					})
				}
			}
			categories = m.appendCategory(categories, groupName, entries)
		}
	}

	return categories
}

func (m *Mapper) appendCategory(categories []domain.Category, groupName string, entries []entry) []domain.Category {
	name := strings.TrimSpace(groupName)
	if name == "" {
		return categories
	}

	ids := slug.NewRegistry()
	sites := make([]domain.Site, 0, len(entries))
	for j, e := range entries {
		site := domain.Site{
			Name:        strings.TrimSpace(e.name),
			URL:         strings.TrimSpace(e.url),
			Description: strings.TrimSpace(e.description),
			Icon:        m.resolveIcon(e.icon),
		}
		site.ID = ids.Claim(slug.FirstNonEmpty(site.Name, site.URL, "site-"+strconv.Itoa(j)))
		sites = append(sites, site)
	}

	return append(categories, domain.Category{
		ID:    slug.FirstNonEmpty(name, "category-"+strconv.Itoa(len(categories))),
		Name:  name,
		Icon:  domain.PlaceholderCategoryIcon,
		Sites: sites,
	})
}

func (m *Mapper) resolveIcon(raw string) string {
	if m.icons == nil {
		return domain.PlaceholderSiteIcon
	}
	return m.icons.Resolve(raw)
}

// sortedKeys gives map iteration a stable order. Homepage lists usually
// hold one key per item, so list order is preserved.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
