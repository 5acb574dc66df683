package icons

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Kind tells the page how to render an icon.
type Kind string

const (
	KindNone Kind = "none" // render nothing (or a generic glyph)
	KindText Kind = "text" // emoji or short text, rendered literally
	KindURL  Kind = "url"  // absolute or protocol-relative URL
	KindPath Kind = "path" // path served by the asset handler
)

// Display is a classified icon ready for rendering.
type Display struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value,omitempty"`
}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".svg": true, ".ico": true,
}

// Manifest is a read-only table of the static assets, built once at startup.
type Manifest struct {
	urls map[string]string
}

// EmptyManifest has no entries; every lookup misses.
func EmptyManifest() *Manifest {
	return &Manifest{urls: map[string]string{}}
}

// BuildManifest enumerates image files under dir. Each file is served at
// urlPrefix + "/" + its path relative to dir, and is reachable by:
//   - its file name ("logo.png")
//   - <base of dir>/<relative path> ("asset/images/logo.png")
//   - the same with a leading slash
func BuildManifest(dir, urlPrefix string) (*Manifest, error) {
	m := EmptyManifest()
	base := filepath.Base(dir)
	urlPrefix = strings.TrimSuffix(urlPrefix, "/")

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !imageExts[strings.ToLower(filepath.Ext(p))] {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		url := urlPrefix + "/" + rel

		m.urls[path.Base(rel)] = url
		m.urls[base+"/"+rel] = url
		m.urls["/"+base+"/"+rel] = url
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build asset manifest: %w", err)
	}

	return m, nil
}

// Lookup returns the served URL for a manifest key.
func (m *Manifest) Lookup(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	url, ok := m.urls[key]
	return url, ok
}

// Len returns the number of lookup keys.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.urls)
}

// Classify decides how a stored icon is rendered.
func (m *Manifest) Classify(icon string) Display {
	icon = strings.TrimSpace(icon)
	switch {
	case icon == "":
		return Display{Kind: KindNone}
	case utf8.RuneCountInString(icon) <= 2:
		return Display{Kind: KindText, Value: icon}
	case remoteURL.MatchString(icon) || strings.HasPrefix(icon, "//"):
		return Display{Kind: KindURL, Value: icon}
	case strings.HasPrefix(icon, "/src/"):
		rest := strings.TrimPrefix(icon, "/src/")
		if url, ok := m.lookupAny(rest, "/"+rest); ok {
			return Display{Kind: KindPath, Value: url}
		}
		return Display{Kind: KindNone}
	case strings.HasPrefix(icon, "/"):
		return Display{Kind: KindPath, Value: icon}
	}

	if url, ok := m.lookupAny(path.Base(icon), icon); ok {
		return Display{Kind: KindPath, Value: url}
	}
	return Display{Kind: KindText, Value: icon}
}

func (m *Manifest) lookupAny(keys ...string) (string, bool) {
	for _, k := range keys {
		if url, ok := m.Lookup(k); ok {
			return url, true
		}
	}
	return "", false
}
