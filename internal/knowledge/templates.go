package knowledge

import (
	"fmt"

	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed data/templates.yaml
var templatesYAML []byte

//go:embed data/regulations.md
var regulationsMD string

// Templates maps rejection categories to appeal letter skeletons
type Templates struct {
	byCategory map[string]string
}

// NewTemplates loads the embedded letter skeleton table.
func NewTemplates() (*Templates, error) {
	var table map[string]string
	if err := yaml.Unmarshal(templatesYAML, &table); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if _, ok := table["default"]; !ok {
		return nil, fmt.Errorf("templates table has no default entry")
	}
	return &Templates{byCategory: table}, nil
}

// ForCategory returns the skeleton for a category, falling back to the
// default skeleton for categories without one.
func (t *Templates) ForCategory(category string) string {
	if tmpl, ok := t.byCategory[category]; ok {
		return tmpl
	}
	return t.byCategory["default"]
}

// Regulations returns the embedded regulations working summary injected
// into reviewer and strategist prompts.
func Regulations() string {
	return regulationsMD
}
