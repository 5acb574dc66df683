package domain

const (
	// PlaceholderCategoryIcon marks a category that was freshly extracted
	// and never given a curated icon.
	PlaceholderCategoryIcon = "🔖"

	// PlaceholderSiteIcon is used when no icon source could be resolved.
	PlaceholderSiteIcon = "/asset/404.png"
)

// Site represents one bookmarked destination.
type Site struct {
	// ID is unique across the whole document once merged.
	// Derived from Name (or URL) through slug normalization.
	ID string `json:"id"`

	// Name is the display label. Example: "GitHub"
	Name string `json:"name"`

	// URL is the destination. It may be empty for imported cards
	// that carried no link.
	URL string `json:"url"`

	// Description is an optional one-liner shown under the name.
	Description string `json:"description"`

	// Icon is either an absolute URL, a path rooted at the static
	// asset root, or PlaceholderSiteIcon.
	Icon string `json:"icon"`
}

// Category is a named group of sites.
type Category struct {
	// ID is the slug of Name. Unique across the document.
	ID string `json:"id"`

	// Name is the heading text. Example: "开发工具"
	Name string `json:"name"`

	// Icon is an emoji, a URL or an asset path.
	// PlaceholderCategoryIcon for freshly extracted categories.
	Icon string `json:"icon"`

	// Sites keeps the order of appearance in the source.
	Sites []Site `json:"sites"`
}

// Document is the persisted sites.json.
// Readers treat it as an immutable snapshot.
type Document struct {
	Categories []Category `json:"categories"`
}

// HasCustomIcon reports whether the category icon was curated by hand.
func (c Category) HasCustomIcon() bool {
	return c.Icon != "" && c.Icon != PlaceholderCategoryIcon
}

// CategoryIndex returns the position of the category with the given ID, or -1.
func (d *Document) CategoryIndex(id string) int {
	if d == nil {
		return -1
	}
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			return i
		}
	}
	return -1
}

// Category returns the category with the given ID.
func (d *Document) Category(id string) (*Category, bool) {
	idx := d.CategoryIndex(id)
	if idx < 0 {
		return nil, false
	}
	return &d.Categories[idx], true
}

// Site looks a site up by ID across all categories.
func (d *Document) Site(id string) (*Site, bool) {
	if d == nil {
		return nil, false
	}
	for i := range d.Categories {
		for j := range d.Categories[i].Sites {
			if d.Categories[i].Sites[j].ID == id {
				return &d.Categories[i].Sites[j], true
			}
		}
	}
	return nil, false
}

// AllSites flattens every category, keeping document order.
func (d *Document) AllSites() []Site {
	if d == nil {
		return nil
	}
	n := 0
	for _, c := range d.Categories {
		n += len(c.Sites)
	}
	sites := make([]Site, 0, n)
	for _, c := range d.Categories {
		sites = append(sites, c.Sites...)
	}
	return sites
}

// SiteCount returns the number of sites across all categories.
func (d *Document) SiteCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, c := range d.Categories {
		n += len(c.Sites)
	}
	return n
}

// Clone returns a deep copy so callers can mutate without touching a shared snapshot.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{Categories: make([]Category, len(d.Categories))}
	for i, c := range d.Categories {
		sites := make([]Site, len(c.Sites))
		copy(sites, c.Sites)
		c.Sites = sites
		out.Categories[i] = c
	}
	return out
}
