// Package homepage imports Homepage (gethomepage.dev) services.yaml and
// bookmarks.yaml files as navigation categories.
package homepage

import (
	"fmt"
	"io"
	"regexp"

	"gopkg.in/yaml.v3"
)

var templateVariable = regexp.MustCompile(`\{\{[^}]+\}\}`)

// DecodeServices parses a services.yaml document.
func DecodeServices(r io.Reader) (ServicesConfig, error) {
	var config ServicesConfig
	if err := decode(r, &config); err != nil {
		return nil, fmt.Errorf("failed to parse services yaml: %w", err)
	}
	return config, nil
}

// DecodeBookmarks parses a bookmarks.yaml document.
func DecodeBookmarks(r io.Reader) (BookmarksConfig, error) {
	var config BookmarksConfig
	if err := decode(r, &config); err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks yaml: %w", err)
	}
	return config, nil
}

func decode(r io.Reader, out any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(stripTemplateVariables(data), out)
}

// stripTemplateVariables removes Homepage template variables from YAML
// Example: {{HOMEPAGE_VAR_ADGUARD_USER}} -> ""
func stripTemplateVariables(data []byte) []byte {
	return templateVariable.ReplaceAll(data, []byte(`""`))
}
