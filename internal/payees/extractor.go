package payees

import (
	"strings"
	"unicode/utf8"

	"fintrack/internal/config"
)

// Extraction is the result of cleaning one raw description.
type Extraction struct {
	Name          string   `json:"name"`
	Confidence    float64  `json:"confidence"`
	CategoryHint  string   `json:"category_hint,omitempty"`
	Original      string   `json:"original"`
	KnownMerchant bool     `json:"known_merchant"`
	Stages        []string `json:"stages,omitempty"`
}

// Extractor turns bank descriptions into merchant names. It holds no mutable
// state and may be shared between goroutines.
type Extractor struct {
	catalog MerchantCatalog
	cfg     config.ExtractionConfig
	stages  []Stage
}

func NewExtractor(catalog MerchantCatalog, cfg config.ExtractionConfig) *Extractor {
	return &Extractor{
		catalog: catalog,
		cfg:     cfg,
		stages: DefaultStages(
			cfg.PrefixBoost,
			cfg.HyphenBoost,
			cfg.DigitBoost,
			cfg.AbbreviationBoost,
			cfg.NoiseBoost,
			cfg.NormalizeBoost,
		),
	}
}

// Extract cleans description. A catalog hit short-circuits the pipeline;
// otherwise every stage that changes the text adds its boost.
func (e *Extractor) Extract(description string) Extraction {
	result := Extraction{Original: description}
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return result
	}

	if e.catalog != nil {
		if m, ok := e.catalog.Lookup(trimmed); ok {
			result.Name = m.Name
			result.Confidence = e.cfg.KnownMerchantConfidence
			result.CategoryHint = m.Category
			result.KnownMerchant = true
			return result
		}
	}

	text := trimmed
	confidence := e.cfg.BaseConfidence
	for _, stage := range e.stages {
		next, changed := stage.Apply(text)
		if !changed {
			continue
		}
		text = next
		confidence += stage.Boost
		result.Stages = append(result.Stages, stage.Name)
	}

	name := strings.TrimSpace(text)
	if name == "" {
		name, _ = normalizeName(trimmed)
		result.Name = name
		result.Confidence = e.cfg.EmptyResultConfidence
		result.CategoryHint = e.suggestCategory(trimmed)
		return result
	}

	length := utf8.RuneCountInString(name)
	if length < e.cfg.ShortNameLength {
		confidence *= e.cfg.ShortNamePenalty
	} else if e.cfg.LongNameLength > 0 && length > e.cfg.LongNameLength {
		confidence *= e.cfg.LongNamePenalty
	}
	if confidence > 1 {
		confidence = 1
	}

	result.Name = name
	result.Confidence = confidence
	result.CategoryHint = e.suggestCategory(name, trimmed)
	return result
}

// SuggestCategory exposes the catalog's keyword lookup.
func (e *Extractor) SuggestCategory(text string) string {
	return e.suggestCategory(text)
}

func (e *Extractor) suggestCategory(texts ...string) string {
	if e.catalog == nil {
		return ""
	}
	for _, t := range texts {
		if m, ok := e.catalog.Lookup(t); ok && m.Category != "" {
			return m.Category
		}
		if category, ok := e.catalog.SuggestCategory(t); ok {
			return category
		}
	}
	return ""
}
