package homepage

import (
	"fmt"
	"io"

	"github.com/MrSnakeDoc/navsite/internal/domain"
)

// Kind selects which Homepage file an Extractor reads.
type Kind string

const (
	KindServices  Kind = "services"
	KindBookmarks Kind = "bookmarks"
)

// Extractor reads one Homepage YAML file into categories.
type Extractor struct {
	kind   Kind
	mapper *Mapper
}

// NewExtractor creates an extractor for the given file kind.
func NewExtractor(kind Kind, icons IconResolver) (*Extractor, error) {
	switch kind {
	case KindServices, KindBookmarks:
	default:
		return nil, fmt.Errorf("unknown homepage file kind %q", kind)
	}
	return &Extractor{kind: kind, mapper: NewMapper(icons)}, nil
}

// Extract decodes r and maps every group to a category.
func (e *Extractor) Extract(r io.Reader) ([]domain.Category, error) {
	if e.kind == KindServices {
		config, err := DecodeServices(r)
		if err != nil {
			return nil, err
		}
		return e.mapper.MapServices(config), nil
	}

	config, err := DecodeBookmarks(r)
	if err != nil {
		return nil, err
	}
	return e.mapper.MapBookmarks(config), nil
}
