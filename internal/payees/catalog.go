// Package payees cleans raw bank descriptions into merchant names and
// suggests categories for them.
package payees

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalogYAML []byte

// Merchant is a known-merchant catalog entry.
type Merchant struct {
	Name     string   `yaml:"name"`
	Category string   `yaml:"category"`
	Patterns []string `yaml:"patterns"`
}

// MerchantCatalog is the read-only lookup table consulted before and after
// extraction. Implementations must be safe for concurrent use.
type MerchantCatalog interface {
	Lookup(text string) (Merchant, bool)
	SuggestCategory(text string) (string, bool)
}

type catalogFile struct {
	Merchants  []Merchant          `yaml:"merchants"`
	Categories map[string][]string `yaml:"categories"`
}

type compiledMerchant struct {
	merchant Merchant
	patterns []*regexp.Regexp
}

type categoryKeyword struct {
	keyword  string
	category string
	pattern  *regexp.Regexp
}

// Catalog is the default MerchantCatalog, built from YAML.
type Catalog struct {
	merchants      []compiledMerchant
	keywords       []categoryKeyword
	singleWords    map[string]string
	fuzzyThreshold float64
}

// DefaultCatalog loads the embedded merchant and category tables.
func DefaultCatalog(fuzzyThreshold float64) (*Catalog, error) {
	return LoadCatalog(defaultCatalogYAML, fuzzyThreshold)
}

// LoadCatalog parses a catalog document. fuzzyThreshold is the minimum
// SimilarityRatio for a fuzzy category keyword match.
func LoadCatalog(data []byte, fuzzyThreshold float64) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse merchant catalog: %w", err)
	}
	return NewCatalog(file.Merchants, file.Categories, fuzzyThreshold)
}

// NewCatalog builds a catalog from in-memory tables. Merchant order is kept;
// keyword ties are broken alphabetically.
func NewCatalog(merchants []Merchant, categories map[string][]string, fuzzyThreshold float64) (*Catalog, error) {
	c := &Catalog{
		singleWords:    make(map[string]string),
		fuzzyThreshold: fuzzyThreshold,
	}

	for _, m := range merchants {
		if m.Name == "" || len(m.Patterns) == 0 {
			return nil, fmt.Errorf("merchant catalog entry %q needs a name and patterns", m.Name)
		}
		cm := compiledMerchant{merchant: m}
		for _, p := range m.Patterns {
			cm.patterns = append(cm.patterns, wordPattern(p))
		}
		c.merchants = append(c.merchants, cm)
	}

	for category, keywords := range categories {
		for _, kw := range keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			c.keywords = append(c.keywords, categoryKeyword{keyword: kw, category: category, pattern: wordPattern(kw)})
			if !strings.Contains(kw, " ") {
				if existing, ok := c.singleWords[kw]; !ok || category < existing {
					c.singleWords[kw] = category
				}
			}
		}
	}
	sort.Slice(c.keywords, func(i, j int) bool {
		if len(c.keywords[i].keyword) != len(c.keywords[j].keyword) {
			return len(c.keywords[i].keyword) > len(c.keywords[j].keyword)
		}
		if c.keywords[i].keyword != c.keywords[j].keyword {
			return c.keywords[i].keyword < c.keywords[j].keyword
		}
		return c.keywords[i].category < c.keywords[j].category
	})

	return c, nil
}

// Lookup returns the first merchant with a pattern occurring as a whole word
// in text.
func (c *Catalog) Lookup(text string) (Merchant, bool) {
	if strings.TrimSpace(text) == "" {
		return Merchant{}, false
	}
	for _, m := range c.merchants {
		for _, p := range m.patterns {
			if p.MatchString(text) {
				return m.merchant, true
			}
		}
	}
	return Merchant{}, false
}

// SuggestCategory tries the longest whole-word keyword first, then single
// words, then a fuzzy comparison of each word against the keywords.
func (c *Catalog) SuggestCategory(text string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return "", false
	}

	for _, kw := range c.keywords {
		if kw.pattern.MatchString(lower) {
			return kw.category, true
		}
	}

	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && r != '\''
	})
	for _, w := range words {
		if category, ok := c.singleWords[w]; ok {
			return category, true
		}
	}

	if c.fuzzyThreshold <= 0 {
		return "", false
	}
	bestCategory, bestScore := "", 0.0
	for _, w := range words {
		if len(w) < 4 {
			continue
		}
		for _, kw := range c.keywords {
			if score := SimilarityRatio(w, kw.keyword); score >= c.fuzzyThreshold && score > bestScore {
				bestCategory, bestScore = kw.category, score
			}
		}
	}
	return bestCategory, bestCategory != ""
}

// wordPattern matches s case-insensitively when not embedded in a longer
// alphanumeric token.
func wordPattern(s string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^A-Za-z0-9])` + regexp.QuoteMeta(s) + `(?:$|[^A-Za-z0-9])`)
}
