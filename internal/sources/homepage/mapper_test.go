package homepage

import (
	"strings"
	"testing"

	"github.com/MrSnakeDoc/navsite/internal/domain"
)

type fakeIcons map[string]string

func (f fakeIcons) Resolve(raw string) string {
	if v, ok := f[raw]; ok {
		return v
	}
	return domain.PlaceholderSiteIcon
}

func TestMapperMapServices(t *testing.T) {
	config := ServicesConfig{
		{
			"Infrastructure": []map[string]ServiceProps{
				{
					"AdGuard Home": {
						Icon:        "adguard-home.svg",
						Href:        "https://adguard.domain.ext",
						Description: "Network-wide ads blocking",
					},
				},
				{
					"Traefik": {
						Icon:        "https://cdn.test/traefik.svg",
						Href:        "https://traefik.domain.ext",
						Description: "Cloud Native Application Proxy",
					},
				},
			},
		},
	}

	mapper := NewMapper(fakeIcons{"https://cdn.test/traefik.svg": "https://cdn.test/traefik.svg"})
	categories := mapper.MapServices(config)

	if len(categories) != 1 {
		t.Fatalf("MapServices() returned %d categories, want 1", len(categories))
	}

	c := categories[0]
	if c.ID != "infrastructure" || c.Name != "Infrastructure" || c.Icon != domain.PlaceholderCategoryIcon {
		t.Errorf("category = %+v", c)
	}
	if len(c.Sites) != 2 {
		t.Fatalf("category has %d sites, want 2", len(c.Sites))
	}

	want := domain.Site{
		ID:          "adguard-home",
		Name:        "AdGuard Home",
		URL:         "https://adguard.domain.ext",
		Description: "Network-wide ads blocking",
		Icon:        domain.PlaceholderSiteIcon,
	}
	if c.Sites[0] != want {
		t.Errorf("site[0] = %+v, want %+v", c.Sites[0], want)
	}
	if c.Sites[1].Icon != "https://cdn.test/traefik.svg" {
		t.Errorf("site[1].Icon = %q", c.Sites[1].Icon)
	}
}

func TestMapperMapServicesEmptyConfig(t *testing.T) {
	categories := NewMapper(nil).MapServices(ServicesConfig{})

	if categories == nil || len(categories) != 0 {
		t.Errorf("MapServices() with empty config = %v, want empty slice", categories)
	}
}

func TestMapperMapServicesMultipleGroups(t *testing.T) {
	config := ServicesConfig{
		{"Group1": []map[string]ServiceProps{{"Service1": {Href: "https://service1.example.com"}}}},
		{"Group2": []map[string]ServiceProps{{"Service1": {Href: "https://service1.example.org"}}}},
	}

	categories := NewMapper(nil).MapServices(config)

	if len(categories) != 2 {
		t.Fatalf("MapServices() returned %d categories, want 2", len(categories))
	}
	if categories[0].ID != "group1" || categories[1].ID != "group2" {
		t.Errorf("category order = %s, %s", categories[0].ID, categories[1].ID)
	}
	// uniqueness is per group here, the merge engine handles the document
	if categories[1].Sites[0].ID != "service1" {
		t.Errorf("site id = %q, want service1", categories[1].Sites[0].ID)
	}
}

func TestMapperMapBookmarks(t *testing.T) {
	config := BookmarksConfig{
		{
			"Developer": []map[string][]BookmarkEntry{
				{"Github": {{Abbr: "GH", Href: "https://github.com/"}}},
				{"Github": {{Abbr: "GH2", Href: "https://github.com/explore"}}},
				{"Empty": {}},
				{"!!!": {{Href: ""}}},
			},
		},
	}

	categories := NewMapper(nil).MapBookmarks(config)
	if len(categories) != 1 {
		t.Fatalf("MapBookmarks() returned %d categories, want 1", len(categories))
	}

	var ids []string
	for _, s := range categories[0].Sites {
		ids = append(ids, s.ID)
	}
	if got := strings.Join(ids, ","); got != "github,github-1,site-2" {
		t.Errorf("site ids = %s, want github,github-1,site-2", got)
	}
	if categories[0].Sites[0].Description != "GH" {
		t.Errorf("description = %q, want abbr GH", categories[0].Sites[0].Description)
	}
}

func TestMapperCategoryIDFallback(t *testing.T) {
	config := BookmarksConfig{
		{"ツール": []map[string][]BookmarkEntry{{"Demo": {{Href: "https://demo.test"}}}}},
		{"Media": []map[string][]BookmarkEntry{{"Jellyfin": {{Href: "https://jellyfin.test"}}}}},
		{"🏠": []map[string][]BookmarkEntry{{"Home": {{Href: "https://home.test"}}}}},
	}

	categories := NewMapper(nil).MapBookmarks(config)
	if len(categories) != 3 {
		t.Fatalf("MapBookmarks() returned %d categories, want 3", len(categories))
	}

	want := []string{"category-0", "media", "category-2"}
	for i, c := range categories {
		if c.ID != want[i] {
			t.Errorf("categories[%d].ID = %q, want %q", i, c.ID, want[i])
		}
	}
}

func TestExtractor(t *testing.T) {
	if _, err := NewExtractor("widgets", nil); err == nil {
		t.Error("NewExtractor() should reject an unknown kind")
	}

	e, err := NewExtractor(KindBookmarks, nil)
	if err != nil {
		t.Fatalf("NewExtractor() error = %v", err)
	}

	categories, err := e.Extract(strings.NewReader(`- 常用:
    - 百度:
        - href: https://www.baidu.com
`))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(categories) != 1 || categories[0].ID != "常用" || categories[0].Sites[0].ID != "百度" {
		t.Errorf("Extract() = %+v", categories)
	}
}
