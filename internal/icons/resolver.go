// Package icons resolves raw icon references found in bookmark exports and
// classifies stored icons for display.
package icons

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/MrSnakeDoc/navsite/internal/domain"
)

var remoteURL = regexp.MustCompile(`(?i)^https?://`)

// Strategy is one named step of icon resolution.
// It returns ok=false to hand over to the next strategy.
type Strategy interface {
	Name() string
	Resolve(raw string) (icon string, ok bool)
}

// Remote keeps absolute http(s) URLs unchanged.
type Remote struct{}

func (Remote) Name() string { return "remote" }

func (Remote) Resolve(raw string) (string, bool) {
	if remoteURL.MatchString(raw) {
		return raw, true
	}
	return "", false
}

// LocalFile maps a path to a site-root-relative path when the file exists
// under Root. A single leading slash is ignored when probing.
type LocalFile struct {
	Root string
	// Stat defaults to os.Stat; swapped in tests.
	Stat func(name string) (os.FileInfo, error)
}

func (LocalFile) Name() string { return "local-file" }

func (l LocalFile) Resolve(raw string) (string, bool) {
	rel := strings.TrimPrefix(raw, "/")
	if rel == "" {
		return "", false
	}

	stat := l.Stat
	if stat == nil {
		stat = os.Stat
	}
	info, err := stat(filepath.Join(l.Root, filepath.FromSlash(rel)))
	if err != nil || info.IsDir() {
		return "", false
	}

	return "/" + strings.ReplaceAll(rel, `\`, "/"), true
}

// Placeholder always resolves, to a fixed path.
type Placeholder struct {
	Path string
}

func (Placeholder) Name() string { return "placeholder" }

func (p Placeholder) Resolve(string) (string, bool) {
	return p.Path, true
}

// Resolver runs strategies in order and returns the first hit.
type Resolver struct {
	strategies  []Strategy
	placeholder string
}

// NewResolver builds the default chain: remote, local-file under root, placeholder.
// An empty placeholder falls back to domain.PlaceholderSiteIcon.
func NewResolver(root, placeholder string) *Resolver {
	if placeholder == "" {
		placeholder = domain.PlaceholderSiteIcon
	}
	return NewResolverWith(placeholder,
		Remote{},
		LocalFile{Root: root},
		Placeholder{Path: placeholder},
	)
}

// NewResolverWith builds a resolver from an explicit strategy list.
func NewResolverWith(placeholder string, strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies, placeholder: placeholder}
}

// Resolve maps a raw icon reference to the value stored in the document.
func (r *Resolver) Resolve(raw string) string {
	icon, _ := r.ResolveNamed(raw)
	return icon
}

// ResolveNamed is Resolve plus the name of the strategy that produced the value.
func (r *Resolver) ResolveNamed(raw string) (icon string, strategy string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return r.placeholder, Placeholder{}.Name()
	}
	for _, s := range r.strategies {
		if icon, ok := s.Resolve(raw); ok {
			return icon, s.Name()
		}
	}
	return r.placeholder, Placeholder{}.Name()
}

// IsPlaceholder reports whether icon is this resolver's placeholder.
func (r *Resolver) IsPlaceholder(icon string) bool {
	return icon == r.placeholder
}
