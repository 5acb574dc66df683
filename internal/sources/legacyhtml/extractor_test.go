package legacyhtml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/navsite/internal/domain"
	"github.com/MrSnakeDoc/navsite/internal/icons"
)

func extract(t *testing.T, html string, opts Options) []domain.Category {
	t.Helper()
	categories, err := NewExtractor(nil, opts).Extract(strings.NewReader(html))
	require.NoError(t, err)
	return categories
}

func TestExtractSingleCard(t *testing.T) {
	html := `<div><h4>Tools</h4></div>
<div class="row"><a class="card" href="https://demo.test"><strong>Demo</strong></a></div>`

	got := extract(t, html, Options{})

	want := []domain.Category{{
		ID:   "tools",
		Name: "Tools",
		Icon: "🔖",
		Sites: []domain.Site{{
			ID:          "demo",
			Name:        "Demo",
			URL:         "https://demo.test",
			Description: "",
			Icon:        domain.PlaceholderSiteIcon,
		}},
	}}
	assert.Equal(t, want, got)
}

func TestExtractSkipsBlankHeadings(t *testing.T) {
	got := extract(t, `<h4>   </h4><div class="row"><a class="card" href="x"></a></div>`, Options{})
	assert.Empty(t, got)

	got = extract(t, `<p>no headings here</p>`, Options{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExtractHeadingWithoutContainer(t *testing.T) {
	got := extract(t, `<h4>Lonely</h4><p>nothing</p>`, Options{})
	require.Len(t, got, 1)
	assert.Equal(t, "lonely", got[0].ID)
	assert.NotNil(t, got[0].Sites)
	assert.Empty(t, got[0].Sites)
}

func TestExtractCategoryIDFallback(t *testing.T) {
	html := `<h4>ツール</h4>
<div class="row"><a class="card" href="https://a.test"><strong>A</strong></a></div>
<h4>🏠</h4>
<h4>Tools</h4>`

	got := extract(t, html, Options{})

	require.Len(t, got, 3)
	assert.Equal(t, "category-0", got[0].ID)
	assert.Equal(t, "ツール", got[0].Name)
	assert.Len(t, got[0].Sites, 1)
	assert.Equal(t, "category-1", got[1].ID)
	assert.Equal(t, "tools", got[2].ID)
}

func TestExtractFixture(t *testing.T) {
	root := t.TempDir()
	iconPath := filepath.Join(root, "asset", "images", "logos", "github.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(iconPath), 0o755))
	require.NoError(t, os.WriteFile(iconPath, []byte("png"), 0o644))

	f, err := os.Open(filepath.Join("testdata", "export.html"))
	require.NoError(t, err)
	defer f.Close()

	categories, err := NewExtractor(icons.NewResolver(root, ""), Options{}).Extract(f)
	require.NoError(t, err)
	require.Len(t, categories, 3)

	t.Run("first category", func(t *testing.T) {
		c := categories[0]
		assert.Equal(t, "常用推荐", c.ID)
		assert.Equal(t, "常用推荐", c.Name)
		require.Len(t, c.Sites, 3)

		assert.Equal(t, domain.Site{
			ID:          "github",
			Name:        "GitHub",
			URL:         "https://github.com",
			Description: "全球最大的代码托管平台",
			Icon:        "/asset/images/logos/github.png",
		}, c.Sites[0])

		// data-url fallback, remote icon kept
		assert.Equal(t, "google", c.Sites[1].ID)
		assert.Equal(t, "https://www.google.com", c.Sites[1].URL)
		assert.Equal(t, "https://www.google.com/favicon.ico", c.Sites[1].Icon)

		// duplicate name inside the category gets a suffix
		assert.Equal(t, "github-1", c.Sites[2].ID)
		assert.Equal(t, "Explore", c.Sites[2].Description)
		assert.Equal(t, domain.PlaceholderSiteIcon, c.Sites[2].Icon)
	})

	t.Run("fallbacks", func(t *testing.T) {
		c := categories[1]
		assert.Equal(t, "dev-tools", c.ID)
		require.Len(t, c.Sites, 4)

		assert.Equal(t, "Regex 101", c.Sites[0].Name, "title attribute")
		assert.Equal(t, "regex-101", c.Sites[0].ID)

		assert.Equal(t, "https://jsonformatter.org", c.Sites[1].Name, "url as name")
		assert.Equal(t, "https-jsonformatter-org", c.Sites[1].ID)

		assert.Equal(t, "!!!", c.Sites[2].Name)
		assert.Equal(t, "site-2", c.Sites[2].ID, "positional fallback")
		assert.Equal(t, "", c.Sites[2].URL)

		assert.Equal(t, "", c.Sites[3].Name)
		assert.Equal(t, "site-3", c.Sites[3].ID)
	})

	t.Run("heading sibling fallback", func(t *testing.T) {
		c := categories[2]
		assert.Equal(t, "inline", c.ID)
		require.Len(t, c.Sites, 1)
		assert.Equal(t, "inline-site", c.Sites[0].ID)
		assert.Equal(t, "trimmed", c.Sites[0].Description)
	})
}

func TestExtractUniqueWithinCategoryOnly(t *testing.T) {
	html := `
<div><h4>A</h4></div>
<div class="row">
  <a class="card" href="https://1.test"><strong>Example</strong></a>
  <a class="card" href="https://2.test"><strong>Example</strong></a>
  <a class="card" href="https://3.test"><strong>example</strong></a>
</div>
<div><h4>B</h4></div>
<div class="row"><a class="card" href="https://4.test"><strong>Example</strong></a></div>`

	got := extract(t, html, Options{})
	require.Len(t, got, 2)

	ids := []string{}
	for _, s := range got[0].Sites {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"example", "example-1", "example-2"}, ids)
	assert.Equal(t, "example", got[1].Sites[0].ID, "other categories are not deduplicated at extraction")
}

func TestExtractDropEmptyURL(t *testing.T) {
	html := `<div><h4>A</h4></div><div class="row">
<a class="card"><strong>No link</strong></a>
<a class="card" href="https://ok.test"><strong>OK</strong></a></div>`

	kept := extract(t, html, Options{})
	require.Len(t, kept[0].Sites, 2)

	dropped := extract(t, html, Options{DropEmptyURL: true})
	require.Len(t, dropped[0].Sites, 1)
	assert.Equal(t, "ok", dropped[0].Sites[0].ID)
}

func TestExtractCustomSelectors(t *testing.T) {
	html := `<section><h2>Links</h2><ul class="grid"><li><a class="item" href="https://a.test"><strong>A</strong></a></li></ul></section>`

	got := extract(t, html, Options{
		HeadingSelector:   "h2",
		ContainerSelector: ".grid",
		CardSelector:      "a.item",
	})
	require.Len(t, got, 1)
	require.Len(t, got[0].Sites, 1)
	assert.Equal(t, "a", got[0].Sites[0].ID)
}
