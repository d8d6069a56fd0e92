// Package knowledge holds the static lookup tables the pipeline consults:
// the rejection-code catalog, appeal letter skeletons, and a regulations
// summary. Everything is loaded once and read-only for the process lifetime.
package knowledge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	_ "embed"
)

//go:embed data/denial_codes.json
var denialCodesJSON []byte

// DenialCodeEntry describes one rejection code
type DenialCodeEntry struct {
	Code              string   `json:"code"`
	Category          string   `json:"category"`
	Description       string   `json:"description"`
	CommonCauses      []string `json:"common_causes,omitempty"`
	AppealGrounds     []string `json:"appeal_grounds,omitempty"`
	RequiredDocuments []string `json:"required_documents,omitempty"`
	Regulations       []string `json:"regulations,omitempty"`
	SuccessRate       string   `json:"success_rate,omitempty"` // "High", "Medium", "Low"
}

// Category groups codes that share appeal strategies
type Category struct {
	Name                   string   `json:"name"`
	Codes                  []string `json:"codes"`
	CommonAppealStrategies []string `json:"common_appeal_strategies,omitempty"`
}

type catalogFile struct {
	RejectionCodes      map[string]DenialCodeEntry `json:"rejection_codes"`
	RejectionCategories map[string]struct {
		Codes                  []string `json:"codes"`
		CommonAppealStrategies []string `json:"common_appeal_strategies"`
	} `json:"rejection_categories"`
}

// Catalog is the immutable rejection-code lookup table. Safe for unlimited
// concurrent readers after construction.
type Catalog struct {
	codes      map[string]DenialCodeEntry
	categories map[string]Category
	byCode     map[string]string // code -> category name
}

// NewCatalog loads the embedded rejection-code table.
func NewCatalog() (*Catalog, error) {
	return parseCatalog(denialCodesJSON)
}

// LoadCatalog reads an externally maintained table from disk, for users who
// keep their own code lists.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		codes:      make(map[string]DenialCodeEntry, len(file.RejectionCodes)),
		categories: make(map[string]Category, len(file.RejectionCategories)),
		byCode:     make(map[string]string),
	}

	for code, entry := range file.RejectionCodes {
		key := normalizeCode(code)
		entry.Code = key
		c.codes[key] = entry
	}

	for name, cat := range file.RejectionCategories {
		normalized := make([]string, 0, len(cat.Codes))
		for _, code := range cat.Codes {
			key := normalizeCode(code)
			normalized = append(normalized, key)
			c.byCode[key] = name
		}
		c.categories[name] = Category{
			Name:                   name,
			Codes:                  normalized,
			CommonAppealStrategies: cat.CommonAppealStrategies,
		}
	}

	return c, nil
}

// Lookup returns the entry for a code. Matching is exact after trimming and
// uppercasing; there is no fuzzy matching.
func (c *Catalog) Lookup(code string) (DenialCodeEntry, bool) {
	entry, ok := c.codes[normalizeCode(code)]
	return entry, ok
}

// CategoryFor returns the category record containing a code.
func (c *Catalog) CategoryFor(code string) (Category, bool) {
	name, ok := c.byCode[normalizeCode(code)]
	if !ok {
		return Category{}, false
	}
	cat, ok := c.categories[name]
	return cat, ok
}

// Strategies returns the deduplicated appeal strategies for a code:
// code-level appeal grounds first, then category-level common strategies.
func (c *Catalog) Strategies(code string) []string {
	var strategies []string
	seen := make(map[string]bool)

	add := func(items []string) {
		for _, s := range items {
			if !seen[s] {
				seen[s] = true
				strategies = append(strategies, s)
			}
		}
	}

	if entry, ok := c.Lookup(code); ok {
		add(entry.AppealGrounds)
	}
	if cat, ok := c.CategoryFor(code); ok {
		add(cat.CommonAppealStrategies)
	}

	return strategies
}

// Len reports the number of codes in the catalog.
func (c *Catalog) Len() int {
	return len(c.codes)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
