package services

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"fintrack/internal/config"
	"fintrack/internal/models"
)

var (
	fallbackDigits = regexp.MustCompile(`[#*]?\S*\d\S*`)
	fallbackPunct  = regexp.MustCompile(`[^\p{L}&' ]+`)
)

// SuggestionRow is one not-yet-committed import row.
type SuggestionRow struct {
	Index       int
	Description string
	PayeeText   string
}

func (r SuggestionRow) text() string {
	if strings.TrimSpace(r.Description) != "" {
		return r.Description
	}
	return r.PayeeText
}

// SmartRuleSuggestionService proposes rules from the rows of an import
// preview, before anything is persisted.
type SmartRuleSuggestionService struct {
	extractor PayeeExtractor
	cfg       config.SuggestionConfig
}

// NewSmartRuleSuggestionService builds the service. A nil extractor switches
// to plain text normalization with a frequency-only confidence.
func NewSmartRuleSuggestionService(extractor PayeeExtractor, cfg config.SuggestionConfig) *SmartRuleSuggestionService {
	return &SmartRuleSuggestionService{extractor: extractor, cfg: cfg}
}

type suggestionGroup struct {
	name        string
	confidences []float64
	hints       []string
	rows        []int
	texts       []string
}

func (s *SmartRuleSuggestionService) Suggest(rows []SuggestionRow, minOccurrences int, minConfidence float64) []models.SmartRuleSuggestion {
	index := map[string]*suggestionGroup{}
	var groups []*suggestionGroup

	for _, row := range rows {
		text := strings.TrimSpace(row.text())
		if text == "" {
			continue
		}

		name, confidence, hint := s.name(text)
		if utf8.RuneCountInString(name) < s.cfg.MinNameLength {
			continue
		}

		g, ok := index[name]
		if !ok {
			g = &suggestionGroup{name: name}
			index[name] = g
			groups = append(groups, g)
		}
		g.confidences = append(g.confidences, confidence)
		g.hints = append(g.hints, hint)
		g.rows = append(g.rows, row.Index)
		if len(g.texts) < s.cfg.SampleSize {
			g.texts = append(g.texts, text)
		}
	}

	suggestions := []models.SmartRuleSuggestion{}
	for _, g := range groups {
		if len(g.rows) < minOccurrences {
			continue
		}
		confidence := roundScore(s.confidence(g))
		if confidence < minConfidence {
			continue
		}
		suggestions = append(suggestions, models.SmartRuleSuggestion{
			PayeeName:      g.name,
			PayeePattern:   strings.ToUpper(g.name),
			PayeeMatchType: models.MatchTypeContains,
			CategoryHint:   mostCommon(g.hints),
			Confidence:     confidence,
			Occurrences:    len(g.rows),
			RowIndices:     g.rows,
			SampleTexts:    g.texts,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Confidence != suggestions[j].Confidence {
			return suggestions[i].Confidence > suggestions[j].Confidence
		}
		if suggestions[i].Occurrences != suggestions[j].Occurrences {
			return suggestions[i].Occurrences > suggestions[j].Occurrences
		}
		return suggestions[i].PayeeName < suggestions[j].PayeeName
	})
	return suggestions
}

func (s *SmartRuleSuggestionService) name(text string) (string, float64, string) {
	if s.extractor == nil {
		return fallbackName(text), 0, ""
	}
	extraction := s.extractor.Extract(text)
	return extraction.Name, extraction.Confidence, extraction.CategoryHint
}

// confidence blends a frequency score with mean extraction confidence, or
// without an extractor uses the frequency-only fallback.
func (s *SmartRuleSuggestionService) confidence(g *suggestionGroup) float64 {
	count := float64(len(g.rows))
	if s.extractor == nil {
		return math.Min(s.cfg.FallbackCap, s.cfg.FallbackBase+s.cfg.FallbackStep*count)
	}

	base := math.Min(1.0, s.cfg.FrequencyBase+count/s.cfg.FrequencyDivisor)
	var sum float64
	for _, c := range g.confidences {
		sum += c
	}
	mean := sum / count
	return s.cfg.FrequencyShare*base + (1-s.cfg.FrequencyShare)*mean
}

// fallbackName uppercases text and strips reference numbers and punctuation.
func fallbackName(text string) string {
	s := strings.ToUpper(text)
	s = fallbackDigits.ReplaceAllString(s, " ")
	s = fallbackPunct.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// mostCommon returns the most frequent non-empty value. On a tie the value
// that reached the count first wins.
func mostCommon(values []string) string {
	counts := map[string]int{}
	best, bestCount := "", 0
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}
