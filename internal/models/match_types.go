package models

import (
	"errors"
	"regexp"
	"strings"
)

// MatchType selects how a rule's text condition compares against its subject.
type MatchType string

const (
	MatchTypeContains   MatchType = "contains"
	MatchTypeStartsWith MatchType = "starts_with"
	MatchTypeEndsWith   MatchType = "ends_with"
	MatchTypeExact      MatchType = "exact"
	MatchTypeRegex      MatchType = "regex"
)

var ErrInvalidMatchType = errors.New("invalid match type")

func (m MatchType) IsValid() bool {
	switch m {
	case MatchTypeContains, MatchTypeStartsWith, MatchTypeEndsWith, MatchTypeExact, MatchTypeRegex:
		return true
	}
	return false
}

// TextMatcher tests a single subject string. An empty subject never matches.
type TextMatcher interface {
	Match(subject string) bool
}

// NewTextMatcher builds the matcher variant for matchType. An empty matchType
// defaults to contains.
func NewTextMatcher(matchType MatchType, pattern string) (TextMatcher, error) {
	switch matchType {
	case MatchTypeContains, "":
		return ContainsMatch{Pattern: pattern}, nil
	case MatchTypeStartsWith:
		return StartsWithMatch{Pattern: pattern}, nil
	case MatchTypeEndsWith:
		return EndsWithMatch{Pattern: pattern}, nil
	case MatchTypeExact:
		return ExactMatch{Pattern: pattern}, nil
	case MatchTypeRegex:
		return NewRegexMatch(pattern), nil
	}
	return nil, ErrInvalidMatchType
}

type ContainsMatch struct {
	Pattern string
}

func (m ContainsMatch) Match(subject string) bool {
	if subject == "" {
		return false
	}
	return strings.Contains(strings.ToLower(subject), strings.ToLower(m.Pattern))
}

type StartsWithMatch struct {
	Pattern string
}

func (m StartsWithMatch) Match(subject string) bool {
	if subject == "" {
		return false
	}
	return strings.HasPrefix(strings.ToLower(subject), strings.ToLower(m.Pattern))
}

type EndsWithMatch struct {
	Pattern string
}

func (m EndsWithMatch) Match(subject string) bool {
	if subject == "" {
		return false
	}
	return strings.HasSuffix(strings.ToLower(subject), strings.ToLower(m.Pattern))
}

type ExactMatch struct {
	Pattern string
}

func (m ExactMatch) Match(subject string) bool {
	if subject == "" {
		return false
	}
	return strings.EqualFold(subject, m.Pattern)
}

// RegexMatch is a case-insensitive search. A pattern that fails to compile
// matches nothing; Err reports the compile failure.
type RegexMatch struct {
	Pattern string
	Err     error
	re      *regexp.Regexp
}

func NewRegexMatch(pattern string) RegexMatch {
	re, err := regexp.Compile("(?i)" + pattern)
	return RegexMatch{Pattern: pattern, Err: err, re: re}
}

func (m RegexMatch) Match(subject string) bool {
	if subject == "" || m.re == nil {
		return false
	}
	return m.re.MatchString(subject)
}
