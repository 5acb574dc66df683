// Package legacyhtml scrapes the legacy navigation page export (the card
// grid markup) into categories and sites.
package legacyhtml

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/MrSnakeDoc/navsite/internal/domain"
	"github.com/MrSnakeDoc/navsite/internal/slug"
)

const (
	DefaultHeadingSelector   = "h4"
	DefaultContainerSelector = ".row"
	DefaultCardSelector      = "a.card"
)

// IconResolver maps a raw img reference to the stored icon value.
type IconResolver interface {
	Resolve(raw string) string
}

// Options tunes the markup the extractor looks for.
type Options struct {
	HeadingSelector   string // category titles
	ContainerSelector string // grouping element following a heading
	CardSelector      string // one site inside a container

	// DropEmptyURL skips cards without any link target.
	// Off by default: such cards are kept with an empty url.
	DropEmptyURL bool
}

func (o Options) withDefaults() Options {
	if o.HeadingSelector == "" {
		o.HeadingSelector = DefaultHeadingSelector
	}
	if o.ContainerSelector == "" {
		o.ContainerSelector = DefaultContainerSelector
	}
	if o.CardSelector == "" {
		o.CardSelector = DefaultCardSelector
	}
	return o
}

// Extractor converts an HTML export into categories. It never touches storage.
type Extractor struct {
	opts  Options
	icons IconResolver
}

// NewExtractor creates an extractor. icons may be nil, in which case every
// site gets domain.PlaceholderSiteIcon.
func NewExtractor(icons IconResolver, opts Options) *Extractor {
	return &Extractor{
		opts:  opts.withDefaults(),
		icons: icons,
	}
}

// Extract parses the document and returns categories in order of appearance.
// Missing attributes and children degrade to empty strings; only an unreadable
// document is an error.
func (e *Extractor) Extract(r io.Reader) ([]domain.Category, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	categories := make([]domain.Category, 0)

	doc.Find(e.opts.HeadingSelector).Each(func(i int, heading *goquery.Selection) {
		name := strings.TrimSpace(heading.Text())
		if name == "" {
			return
		}

		categories = append(categories, domain.Category{
			// names of kana, hangul or emoji only normalize to ""
			ID:    slug.FirstNonEmpty(name, "category-"+strconv.Itoa(i)),
			Name:  name,
			Icon:  domain.PlaceholderCategoryIcon,
			Sites: e.extractSites(e.containerFor(heading)),
		})
	})

	return categories, nil
}

// containerFor finds the grouping element for a heading: the next matching
// sibling of the heading's parent, else the next matching sibling of the
// heading itself. The result may be empty.
func (e *Extractor) containerFor(heading *goquery.Selection) *goquery.Selection {
	container := heading.Parent().NextAllFiltered(e.opts.ContainerSelector).First()
	if container.Length() == 0 {
		container = heading.NextAllFiltered(e.opts.ContainerSelector).First()
	}
	return container
}

func (e *Extractor) extractSites(container *goquery.Selection) []domain.Site {
	sites := make([]domain.Site, 0)
	if container.Length() == 0 {
		return sites
	}

	ids := slug.NewRegistry()

	container.Find(e.opts.CardSelector).Each(func(j int, card *goquery.Selection) {
		site := e.cardToSite(card)
		if site.URL == "" && e.opts.DropEmptyURL {
			return
		}

		base := slug.FirstNonEmpty(site.Name, site.URL, "site-"+strconv.Itoa(j))
		site.ID = ids.Claim(base)

		sites = append(sites, site)
	})

	return sites
}

func (e *Extractor) cardToSite(card *goquery.Selection) domain.Site {
	url := firstAttr(card, "href", "data-url")

	name := strings.TrimSpace(card.Find("strong").First().Text())
	if name == "" {
		name = firstAttr(card, "title")
	}
	if name == "" {
		name = url
	}

	var rawIcon string
	if img := card.Find("img").First(); img.Length() > 0 {
		rawIcon = firstAttr(img, "data-src", "src")
	}

	return domain.Site{
		Name:        name,
		URL:         url,
		Description: strings.TrimSpace(card.Find("p").First().Text()),
		Icon:        e.resolveIcon(rawIcon),
	}
}

func (e *Extractor) resolveIcon(raw string) string {
	if e.icons == nil {
		return domain.PlaceholderSiteIcon
	}
	return e.icons.Resolve(raw)
}

// firstAttr returns the first non-empty attribute value among names.
func firstAttr(sel *goquery.Selection, names ...string) string {
	for _, n := range names {
		if v, ok := sel.Attr(n); ok && v != "" {
			return v
		}
	}
	return ""
}
