package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// MatchingConfig holds every threshold and weight used by payee extraction,
// payee resolution, duplicate detection and rule suggestion.
type MatchingConfig struct {
	Extraction  ExtractionConfig `mapstructure:"extraction"`
	Resolution  ResolutionConfig `mapstructure:"resolution"`
	Duplicates  DuplicateConfig  `mapstructure:"duplicates"`
	Learning    LearningConfig   `mapstructure:"learning"`
	Suggestions SuggestionConfig `mapstructure:"suggestions"`
}

type ExtractionConfig struct {
	KnownMerchantConfidence float64 `mapstructure:"known_merchant_confidence"`
	BaseConfidence          float64 `mapstructure:"base_confidence"`
	PrefixBoost             float64 `mapstructure:"prefix_boost"`
	HyphenBoost             float64 `mapstructure:"hyphen_boost"`
	DigitBoost              float64 `mapstructure:"digit_boost"`
	AbbreviationBoost       float64 `mapstructure:"abbreviation_boost"`
	NoiseBoost              float64 `mapstructure:"noise_boost"`
	NormalizeBoost          float64 `mapstructure:"normalize_boost"`
	ShortNameLength         int     `mapstructure:"short_name_length"`
	ShortNamePenalty        float64 `mapstructure:"short_name_penalty"`
	LongNameLength          int     `mapstructure:"long_name_length"`
	LongNamePenalty         float64 `mapstructure:"long_name_penalty"`
	FuzzyCategoryThreshold  float64 `mapstructure:"fuzzy_category_threshold"`
	EmptyResultConfidence   float64 `mapstructure:"empty_result_confidence"`
}

type ResolutionConfig struct {
	HighConfidence           float64 `mapstructure:"high_confidence"`
	LowConfidence            float64 `mapstructure:"low_confidence"`
	FuzzyPatternThreshold    float64 `mapstructure:"fuzzy_pattern_threshold"`
	AlternativeThreshold     float64 `mapstructure:"alternative_threshold"`
	MaxAlternatives          int     `mapstructure:"max_alternatives"`
	MinPayeeNameLength       int     `mapstructure:"min_payee_name_length"`
	MinContainsPatternLength int     `mapstructure:"min_contains_pattern_length"`
	MinPatternValueLength    int     `mapstructure:"min_pattern_value_length"`
	NewPatternConfidence     float64 `mapstructure:"new_pattern_confidence"`
	ConfidenceIncrement      float64 `mapstructure:"confidence_increment"`
}

type DuplicateConfig struct {
	DateWindowDays       int     `mapstructure:"date_window_days"`
	SameDayWeight        float64 `mapstructure:"same_day_weight"`
	OneDayWeight         float64 `mapstructure:"one_day_weight"`
	TwoDayWeight         float64 `mapstructure:"two_day_weight"`
	AmountWeight         float64 `mapstructure:"amount_weight"`
	DescriptionWeight    float64 `mapstructure:"description_weight"`
	SubstringCredit      float64 `mapstructure:"substring_credit"`
	MinDescriptionRatio  float64 `mapstructure:"min_description_ratio"`
	MinConfidence        float64 `mapstructure:"min_confidence"`
	ExternalIDConfidence float64 `mapstructure:"external_id_confidence"`
}

type LearningConfig struct {
	MinCommonSubstring  int     `mapstructure:"min_common_substring"`
	ConsistencyWeight   float64 `mapstructure:"consistency_weight"`
	FrequencyWeight     float64 `mapstructure:"frequency_weight"`
	FrequencySaturation int     `mapstructure:"frequency_saturation"`
	RecencyWeight       float64 `mapstructure:"recency_weight"`
	RecencyWindowDays   int     `mapstructure:"recency_window_days"`
	AmountVarianceLimit float64 `mapstructure:"amount_variance_limit"`
	AmountRangeMargin   float64 `mapstructure:"amount_range_margin"`
	DirectionShare      float64 `mapstructure:"direction_share"`
	MaxNamePayeeLength  int     `mapstructure:"max_name_payee_length"`
	SampleSize          int     `mapstructure:"sample_size"`
}

type SuggestionConfig struct {
	MinNameLength    int     `mapstructure:"min_name_length"`
	FrequencyBase    float64 `mapstructure:"frequency_base"`
	FrequencyDivisor float64 `mapstructure:"frequency_divisor"`
	FrequencyShare   float64 `mapstructure:"frequency_share"`
	FallbackBase     float64 `mapstructure:"fallback_base"`
	FallbackStep     float64 `mapstructure:"fallback_step"`
	FallbackCap      float64 `mapstructure:"fallback_cap"`
	SampleSize       int     `mapstructure:"sample_size"`
}

// DefaultMatchingConfig returns the reference tuning.
func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		Extraction: ExtractionConfig{
			KnownMerchantConfidence: 0.95,
			BaseConfidence:          0.5,
			PrefixBoost:             0.2,
			HyphenBoost:             0.1,
			DigitBoost:              0.1,
			AbbreviationBoost:       0.1,
			NoiseBoost:              0.15,
			NormalizeBoost:          0.1,
			ShortNameLength:         3,
			ShortNamePenalty:        0.5,
			LongNameLength:          50,
			LongNamePenalty:         0.7,
			FuzzyCategoryThreshold:  0.85,
			EmptyResultConfidence:   0.2,
		},
		Resolution: ResolutionConfig{
			HighConfidence:           0.85,
			LowConfidence:            0.70,
			FuzzyPatternThreshold:    0.80,
			AlternativeThreshold:     0.60,
			MaxAlternatives:          3,
			MinPayeeNameLength:       3,
			MinContainsPatternLength: 4,
			MinPatternValueLength:    4,
			NewPatternConfidence:     0.80,
			ConfidenceIncrement:      0.01,
		},
		Duplicates: DuplicateConfig{
			DateWindowDays:       2,
			SameDayWeight:        0.3,
			OneDayWeight:         0.2,
			TwoDayWeight:         0.1,
			AmountWeight:         0.4,
			DescriptionWeight:    0.3,
			SubstringCredit:      0.8,
			MinDescriptionRatio:  0.5,
			MinConfidence:        0.70,
			ExternalIDConfidence: 1.0,
		},
		Learning: LearningConfig{
			MinCommonSubstring:  4,
			ConsistencyWeight:   0.7,
			FrequencyWeight:     0.2,
			FrequencySaturation: 10,
			RecencyWeight:       0.1,
			RecencyWindowDays:   90,
			AmountVarianceLimit: 0.30,
			AmountRangeMargin:   0.10,
			DirectionShare:      0.90,
			MaxNamePayeeLength:  27,
			SampleSize:          5,
		},
		Suggestions: SuggestionConfig{
			MinNameLength:    3,
			FrequencyBase:    0.5,
			FrequencyDivisor: 20,
			FrequencyShare:   0.5,
			FallbackBase:     0.3,
			FallbackStep:     0.1,
			FallbackCap:      0.9,
			SampleSize:       10,
		},
	}
}

// LoadMatchingConfig layers an optional YAML/TOML/JSON file and MATCHING_*
// environment variables over DefaultMatchingConfig. An empty path skips the file.
func LoadMatchingConfig(path string) (MatchingConfig, error) {
	defaults := DefaultMatchingConfig()

	v := viper.New()
	setMatchingDefaults(v, defaults)

	v.SetEnvPrefix("MATCHING")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return defaults, fmt.Errorf("read matching config %s: %w", path, err)
		}
	}

	var cfg MatchingConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return defaults, fmt.Errorf("unmarshal matching config: %w", err)
	}
	return cfg, nil
}

func setMatchingDefaults(v *viper.Viper, d MatchingConfig) {
	e := d.Extraction
	v.SetDefault("extraction.known_merchant_confidence", e.KnownMerchantConfidence)
	v.SetDefault("extraction.base_confidence", e.BaseConfidence)
	v.SetDefault("extraction.prefix_boost", e.PrefixBoost)
	v.SetDefault("extraction.hyphen_boost", e.HyphenBoost)
	v.SetDefault("extraction.digit_boost", e.DigitBoost)
	v.SetDefault("extraction.abbreviation_boost", e.AbbreviationBoost)
	v.SetDefault("extraction.noise_boost", e.NoiseBoost)
	v.SetDefault("extraction.normalize_boost", e.NormalizeBoost)
	v.SetDefault("extraction.short_name_length", e.ShortNameLength)
	v.SetDefault("extraction.short_name_penalty", e.ShortNamePenalty)
	v.SetDefault("extraction.long_name_length", e.LongNameLength)
	v.SetDefault("extraction.long_name_penalty", e.LongNamePenalty)
	v.SetDefault("extraction.fuzzy_category_threshold", e.FuzzyCategoryThreshold)
	v.SetDefault("extraction.empty_result_confidence", e.EmptyResultConfidence)

	r := d.Resolution
	v.SetDefault("resolution.high_confidence", r.HighConfidence)
	v.SetDefault("resolution.low_confidence", r.LowConfidence)
	v.SetDefault("resolution.fuzzy_pattern_threshold", r.FuzzyPatternThreshold)
	v.SetDefault("resolution.alternative_threshold", r.AlternativeThreshold)
	v.SetDefault("resolution.max_alternatives", r.MaxAlternatives)
	v.SetDefault("resolution.min_payee_name_length", r.MinPayeeNameLength)
	v.SetDefault("resolution.min_contains_pattern_length", r.MinContainsPatternLength)
	v.SetDefault("resolution.min_pattern_value_length", r.MinPatternValueLength)
	v.SetDefault("resolution.new_pattern_confidence", r.NewPatternConfidence)
	v.SetDefault("resolution.confidence_increment", r.ConfidenceIncrement)

	dup := d.Duplicates
	v.SetDefault("duplicates.date_window_days", dup.DateWindowDays)
	v.SetDefault("duplicates.same_day_weight", dup.SameDayWeight)
	v.SetDefault("duplicates.one_day_weight", dup.OneDayWeight)
	v.SetDefault("duplicates.two_day_weight", dup.TwoDayWeight)
	v.SetDefault("duplicates.amount_weight", dup.AmountWeight)
	v.SetDefault("duplicates.description_weight", dup.DescriptionWeight)
	v.SetDefault("duplicates.substring_credit", dup.SubstringCredit)
	v.SetDefault("duplicates.min_description_ratio", dup.MinDescriptionRatio)
	v.SetDefault("duplicates.min_confidence", dup.MinConfidence)
	v.SetDefault("duplicates.external_id_confidence", dup.ExternalIDConfidence)

	l := d.Learning
	v.SetDefault("learning.min_common_substring", l.MinCommonSubstring)
	v.SetDefault("learning.consistency_weight", l.ConsistencyWeight)
	v.SetDefault("learning.frequency_weight", l.FrequencyWeight)
	v.SetDefault("learning.frequency_saturation", l.FrequencySaturation)
	v.SetDefault("learning.recency_weight", l.RecencyWeight)
	v.SetDefault("learning.recency_window_days", l.RecencyWindowDays)
	v.SetDefault("learning.amount_variance_limit", l.AmountVarianceLimit)
	v.SetDefault("learning.amount_range_margin", l.AmountRangeMargin)
	v.SetDefault("learning.direction_share", l.DirectionShare)
	v.SetDefault("learning.max_name_payee_length", l.MaxNamePayeeLength)
	v.SetDefault("learning.sample_size", l.SampleSize)

	s := d.Suggestions
	v.SetDefault("suggestions.min_name_length", s.MinNameLength)
	v.SetDefault("suggestions.frequency_base", s.FrequencyBase)
	v.SetDefault("suggestions.frequency_divisor", s.FrequencyDivisor)
	v.SetDefault("suggestions.frequency_share", s.FrequencyShare)
	v.SetDefault("suggestions.fallback_base", s.FallbackBase)
	v.SetDefault("suggestions.fallback_step", s.FallbackStep)
	v.SetDefault("suggestions.fallback_cap", s.FallbackCap)
	v.SetDefault("suggestions.sample_size", s.SampleSize)
}
