package payees

import (
	"regexp"
	"strings"
	"unicode"
)

// Stage is one rewrite step of the extraction pipeline. Apply reports whether
// it changed the text; Boost is added to the confidence when it did.
type Stage struct {
	Name  string
	Boost float64
	Apply func(text string) (string, bool)
}

const (
	StagePrefix       = "prefix"
	StageHyphen       = "hyphen"
	StageDigits       = "digits"
	StageAbbreviation = "abbreviation"
	StageNoise        = "noise"
	StageNormalize    = "normalize"
)

var (
	processorPrefix = regexp.MustCompile(`^[A-Za-z]{1,5}\s*\*\s*`)

	namedPrefixes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^PURCHASE AUTHORIZED ON\s+[0-9]{1,2}/[0-9]{1,2}\s*`),
		regexp.MustCompile(`(?i)^(?:ACH|ELECTRONIC|ONLINE)\s+(?:DEPOSIT|DEBIT|CREDIT|WITHDRAWAL|PAYMENT|TRANSFER)(?:\s+(?:TO|FROM))?\s+`),
		regexp.MustCompile(`(?i)^(?:DEBIT|CREDIT) CARD (?:PURCHASE|PAYMENT|REFUND)\s+`),
		regexp.MustCompile(`(?i)^POS (?:PURCHASE|DEBIT|WITHDRAWAL|REFUND)\s+`),
		regexp.MustCompile(`(?i)^(?:CHECKCARD|CHECK CARD|DBT CRD|VISA DDA PUR|DDA PURCHASE)\s+`),
		regexp.MustCompile(`(?i)^RECURRING (?:PAYMENT|DEBIT|CHARGE)\s+`),
		regexp.MustCompile(`(?i)^PREAUTHORIZED (?:DEBIT|PAYMENT)\s+`),
		regexp.MustCompile(`(?i)^(?:DIRECT DEPOSIT|DIRECT DEBIT|BILL PAYMENT|WIRE TRANSFER|MOBILE PURCHASE)\s+`),
		regexp.MustCompile(`(?i)^(?:PAYPAL|PP)\s*\*\s*`),
		regexp.MustCompile(`(?i)^(?:POS|PUR|PURCHASE)\s+`),
	}

	// Hyphenated brands that keep their hyphens and digits.
	protectedTokens = []string{"WAL-MART", "CHICK-FIL-A", "T-MOBILE", "7-ELEVEN", "COCA-COLA"}

	// matched against the original text so offsets stay valid for any UTF-8
	protectedPatterns = compileProtected(protectedTokens)

	abbreviations = map[string]string{
		"BOFA":     "BANK OF AMERICA",
		"BOA":      "BANK OF AMERICA",
		"AMEX":     "AMERICAN EXPRESS",
		"WF":       "WELLS FARGO",
		"JPM":      "JPMORGAN",
		"INTL":     "INTERNATIONAL",
		"SVC":      "SERVICE",
		"SVCS":     "SERVICES",
		"PMT":      "PAYMENT",
		"PYMT":     "PAYMENT",
		"MKT":      "MARKET",
		"MKTP":     "MARKETPLACE",
		"WHOLEFDS": "WHOLE FOODS",
		"CTR":      "CENTER",
		"DEPT":     "DEPARTMENT",
		"ELEC":     "ELECTRIC",
		"INS":      "INSURANCE",
		"PHARM":    "PHARMACY",
		"RSTRNT":   "RESTAURANT",
		"RESTRNT":  "RESTAURANT",
		"GROC":     "GROCERY",
		"UTIL":     "UTILITIES",
	}

	emptyParens      = regexp.MustCompile(`\(\s*\)`)
	punctuationRuns  = regexp.MustCompile(`[-.]{2,}|[-./]+\s*$`)
	storeSuffix      = regexp.MustCompile(`(?i)\s+(?:STORE|STR|STE|UNIT|LOC|NO)\.?\s*$`)
	achDescriptor    = regexp.MustCompile(`(?i)\s+(?:PPD|CCD|WEB|TEL|CTX|ARC|BOC|POP)(?:\s.*)?$`)
	referenceTail    = regexp.MustCompile(`(?i)\s*\b(?:ID|REF|REF NO|CONF|CONFIRMATION|TRACE|AUTH|TXN|SEQ)\s*[:#.]\s*[A-Za-z0-9]*`)
	danglingRef      = regexp.MustCompile(`(?i)\s+(?:ID|REF|CONF|TRACE|AUTH|TXN)\s*[:#.]?\s*$`)
	asteriskTail     = regexp.MustCompile(`\s+\S*\*\S*$`)
	urlPrefix        = regexp.MustCompile(`(?i)^(?:https?://)?www\.`)
	urlSuffix        = regexp.MustCompile(`(?i)\.(?:com|net|org|io|co)\b(?:/\S*)?`)
	streetSuffix     = regexp.MustCompile(`(?i)(\S+\s+\S+)\s+\S+\s+(?:ST|AVE|BLVD|RD|HWY|PKWY|LN|DR)\.?$`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
	edgePunctuation  = regexp.MustCompile(`^[\s\-*#&,;:/'"]+|[\s\-*#&,;:/'"]+$`)
	possessiveSuffix = regexp.MustCompile(`'S\b`)

	stateCodes = map[string]bool{
		"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true, "CT": true, "DE": true,
		"FL": true, "GA": true, "HI": true, "ID": true, "IL": true, "IN": true, "IA": true, "KS": true,
		"KY": true, "LA": true, "ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
		"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true, "NM": true, "NY": true,
		"NC": true, "ND": true, "OH": true, "OK": true, "OR": true, "PA": true, "RI": true, "SC": true,
		"SD": true, "TN": true, "TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
		"WI": true, "WY": true, "DC": true,
	}

	majorCities = []string{
		"SAN FRANCISCO", "LOS ANGELES", "NEW YORK", "SAN DIEGO", "SAN JOSE", "LAS VEGAS", "SALT LAKE CITY",
		"SEATTLE", "OAKLAND", "CHICAGO", "HOUSTON", "DALLAS", "AUSTIN", "PHOENIX", "DENVER", "BOSTON",
		"ATLANTA", "MIAMI", "PORTLAND", "BROOKLYN", "PHILADELPHIA", "SACRAMENTO", "BERKELEY", "NYC",
	}
	cityPatterns = compileSuffixes(majorCities)

	businessMarkers = map[string]bool{
		"INC": true, "LLC": true, "CORP": true, "CO": true, "LTD": true, "COMPANY": true,
		"PAYROLL": true, "CORPORATION": true, "LP": true, "LLP": true, "PC": true,
	}

	// Words that are never part of a trailing person name.
	businessWords = map[string]bool{
		"BANK": true, "STORE": true, "MARKET": true, "FOODS": true, "CAFE": true, "PAYMENT": true,
		"DEPOSIT": true, "SERVICES": true, "SERVICE": true, "GROUP": true, "HOLDINGS": true,
		"INSURANCE": true, "FINANCIAL": true, "CAPITAL": true, "TRUST": true, "CREDIT": true,
		"UNION": true, "SALARY": true, "DIRECT": true, "DEP": true, "REG": true, "SALE": true,
		"AMERICA": true, "INTERNATIONAL": true, "SOLUTIONS": true, "SYSTEMS": true, "TECHNOLOGIES": true,
		"ELECTRIC": true, "ENERGY": true, "PHARMACY": true, "RESTAURANT": true, "COFFEE": true,
	}
)

// DefaultStages returns the pipeline in order with boosts taken from the
// caller's tuning.
func DefaultStages(prefix, hyphen, digits, abbreviation, noise, normalize float64) []Stage {
	return []Stage{
		{Name: StagePrefix, Boost: prefix, Apply: stripPrefixes},
		{Name: StageHyphen, Boost: hyphen, Apply: replaceHyphens},
		{Name: StageDigits, Boost: digits, Apply: stripDigits},
		{Name: StageAbbreviation, Boost: abbreviation, Apply: expandAbbreviations},
		{Name: StageNoise, Boost: noise, Apply: removeNoise},
		{Name: StageNormalize, Boost: normalize, Apply: normalizeName},
	}
}

func stripPrefixes(text string) (string, bool) {
	out := strings.TrimSpace(text)
	changed := false
	for pass := 0; pass < 3; pass++ {
		before := out
		for _, p := range namedPrefixes {
			out = p.ReplaceAllString(out, "")
		}
		out = processorPrefix.ReplaceAllString(out, "")
		if out == before {
			break
		}
		changed = true
	}
	return out, changed
}

func replaceHyphens(text string) (string, bool) {
	if !strings.Contains(text, "-") {
		return text, false
	}
	protected, restore := protect(text)
	out := restore(strings.ReplaceAll(protected, "-", " "))
	return out, out != text
}

func stripDigits(text string) (string, bool) {
	protected, restore := protect(text)
	out := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '#' {
			return -1
		}
		return r
	}, protected)
	out = restore(out)
	return out, out != text
}

func expandAbbreviations(text string) (string, bool) {
	words := strings.Fields(text)
	changed := false
	for i, w := range words {
		if full, ok := abbreviations[strings.ToUpper(w)]; ok {
			words[i] = full
			changed = true
		}
	}
	if !changed {
		return text, false
	}
	return strings.Join(words, " "), true
}

func removeNoise(text string) (string, bool) {
	out := text
	out = emptyParens.ReplaceAllString(out, " ")
	out = achDescriptor.ReplaceAllString(out, "")
	out = referenceTail.ReplaceAllString(out, " ")
	out = danglingRef.ReplaceAllString(out, "")
	out = asteriskTail.ReplaceAllString(out, "")
	out = urlPrefix.ReplaceAllString(out, "")
	out = urlSuffix.ReplaceAllString(out, "")
	out = punctuationRuns.ReplaceAllString(out, " ")
	out = strings.TrimSpace(whitespaceRuns.ReplaceAllString(out, " "))
	out = stripLocation(out)
	out = storeSuffix.ReplaceAllString(out, "")
	out = stripTrailingPersonName(out)
	out = strings.TrimSpace(out)

	return out, normalizeSpace(out) != normalizeSpace(text)
}

// stripLocation removes a trailing state code, a major city before it, and a
// street-suffixed address, keeping at least one word.
func stripLocation(text string) string {
	words := strings.Fields(text)
	if len(words) >= 2 && stateCodes[strings.ToUpper(words[len(words)-1])] {
		words = words[:len(words)-1]
	}

	joined := strings.Join(words, " ")
	for _, city := range cityPatterns {
		if loc := city.FindStringIndex(joined); loc != nil {
			joined = strings.TrimSpace(joined[:loc[0]])
			break
		}
	}

	if m := streetSuffix.FindStringSubmatch(joined); m != nil {
		joined = m[1]
	}
	return joined
}

// stripTrailingPersonName drops two or three name-like words that follow a
// business marker, as in "ACME CORP PAYROLL JANE DOE".
func stripTrailingPersonName(text string) string {
	words := strings.Fields(text)
	for tail := 3; tail >= 2; tail-- {
		markerIdx := len(words) - tail - 1
		if markerIdx < 0 || !businessMarkers[strings.ToUpper(words[markerIdx])] {
			continue
		}
		nameLike := true
		for _, w := range words[markerIdx+1:] {
			upper := strings.ToUpper(w)
			if businessWords[upper] || businessMarkers[upper] || !isAlphaWord(w) {
				nameLike = false
				break
			}
		}
		if nameLike {
			return strings.Join(words[:markerIdx+1], " ")
		}
	}
	return text
}

func normalizeName(text string) (string, bool) {
	out := strings.ReplaceAll(text, ".", " ")
	out = strings.TrimSpace(whitespaceRuns.ReplaceAllString(out, " "))
	out = edgePunctuation.ReplaceAllString(out, "")
	out = titleCase(out)
	out = possessiveSuffix.ReplaceAllString(out, "'s")
	return out, out != text
}

// titleCase capitalizes the first letter of each word and of each
// hyphen-separated part.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	start := true
	for _, r := range s {
		switch {
		case r == ' ' || r == '-' || r == '/' || r == '&':
			start = true
			b.WriteRune(r)
		case start && unicode.IsLetter(r):
			b.WriteRune(unicode.ToUpper(r))
			start = false
		default:
			b.WriteRune(unicode.ToLower(r))
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				start = false
			}
		}
	}
	return b.String()
}

// protect swaps hyphens and digits inside whitelisted brand tokens for
// placeholders so later rewrites leave them intact.
func protect(text string) (string, func(string) string) {
	var replacements []string
	out := text
	for i, re := range protectedPatterns {
		loc := re.FindStringIndex(out)
		if loc == nil {
			continue
		}
		original := out[loc[0]:loc[1]]
		placeholder := "\x00" + string(rune('A'+len(replacements)/2)) + strings.Repeat("\x01", len(protectedTokens[i])-2)
		out = out[:loc[0]] + placeholder + out[loc[1]:]
		replacements = append(replacements, placeholder, original)
	}
	if len(replacements) == 0 {
		return text, func(s string) string { return s }
	}
	return out, func(s string) string {
		return strings.NewReplacer(replacements...).Replace(s)
	}
}

func compileProtected(tokens []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(tokens))
	for i, token := range tokens {
		patterns[i] = regexp.MustCompile("(?i)" + regexp.QuoteMeta(token))
	}
	return patterns
}

func compileSuffixes(cities []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(cities))
	for i, city := range cities {
		patterns[i] = regexp.MustCompile("(?i) " + regexp.QuoteMeta(city) + "$")
	}
	return patterns
}

func isAlphaWord(w string) bool {
	for _, r := range w {
		if !unicode.IsLetter(r) && r != '\'' {
			return false
		}
	}
	return w != ""
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
