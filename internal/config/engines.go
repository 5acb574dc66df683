package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/navsite/internal/domain"
)

// enginesFile is the root of engines.yaml:
//
//	engines:
//	  - id: internal
//	    name: 站内
//	  - id: google
//	    name: Google
//	    url: https://www.google.com/search?q={query}
type enginesFile struct {
	Engines []domain.SearchEngine `yaml:"engines"`
}

// LoadEngines reads the search engines offered by the search box.
// An empty path returns domain.DefaultEngines().
func LoadEngines(path string) ([]domain.SearchEngine, error) {
	if path == "" {
		return domain.DefaultEngines(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read engines file: %w", err)
	}

	var file enginesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse engines yaml: %w", err)
	}

	if err := validateEngines(file.Engines); err != nil {
		return nil, fmt.Errorf("invalid engines file %s: %w", path, err)
	}
	return file.Engines, nil
}

func validateEngines(engines []domain.SearchEngine) error {
	if len(engines) == 0 {
		return fmt.Errorf("no engines defined")
	}

	seen := make(map[string]bool, len(engines))
	for i, e := range engines {
		if e.ID == "" {
			return fmt.Errorf("engines[%d]: missing id", i)
		}
		if seen[e.ID] {
			return fmt.Errorf("engines[%d]: duplicate id %q", i, e.ID)
		}
		seen[e.ID] = true

		if !e.IsInternal() && !strings.Contains(e.URL, "{query}") {
			return fmt.Errorf("engine %q: url must contain {query}", e.ID)
		}
	}
	return nil
}
