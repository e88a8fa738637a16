package importers

import (
	"strings"
)

const (
	FormatGeneric = "generic"
	FormatUnknown = "unknown"

	// SplitSeparator joins debit and credit column names in ColumnMapping.Amount.
	SplitSeparator = "|"

	knownFormatOverlap = 0.8
)

// ColumnMapping names the source column feeding each canonical field. Amount
// may be "Debit|Credit" for exports that split outflows and inflows.
type ColumnMapping struct {
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
	Payee       string `json:"payee,omitempty"`
	Notes       string `json:"notes,omitempty"`
	ExternalID  string `json:"external_id,omitempty"`
}

// SplitAmount returns the debit and credit columns of a split mapping.
func (m ColumnMapping) SplitAmount() (debit, credit string, ok bool) {
	debit, credit, ok = strings.Cut(m.Amount, SplitSeparator)
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(debit), strings.TrimSpace(credit), true
}

func (m ColumnMapping) IsZero() bool {
	return m == ColumnMapping{}
}

// BankFormat is a known export layout recognized by its header.
type BankFormat struct {
	Tag     string
	Name    string
	Columns []string
	Mapping ColumnMapping
}

var KnownFormats = []BankFormat{
	{
		Tag:     "chase_checking",
		Name:    "Chase Checking",
		Columns: []string{"details", "posting date", "description", "amount", "type", "balance", "check or slip #"},
		Mapping: ColumnMapping{Date: "Posting Date", Amount: "Amount", Description: "Description", Notes: "Type"},
	},
	{
		Tag:     "chase_credit",
		Name:    "Chase Credit Card",
		Columns: []string{"transaction date", "post date", "description", "category", "type", "amount", "memo"},
		Mapping: ColumnMapping{Date: "Transaction Date", Amount: "Amount", Description: "Description", Notes: "Memo"},
	},
	{
		Tag:     "bank_of_america",
		Name:    "Bank of America",
		Columns: []string{"date", "description", "amount", "running bal."},
		Mapping: ColumnMapping{Date: "Date", Amount: "Amount", Description: "Description"},
	},
	{
		Tag:     "capital_one",
		Name:    "Capital One",
		Columns: []string{"transaction date", "posted date", "card no.", "description", "category", "debit", "credit"},
		Mapping: ColumnMapping{Date: "Transaction Date", Amount: "Debit|Credit", Description: "Description"},
	},
	{
		Tag:     "citi",
		Name:    "Citi",
		Columns: []string{"status", "date", "description", "debit", "credit"},
		Mapping: ColumnMapping{Date: "Date", Amount: "Debit|Credit", Description: "Description"},
	},
	{
		Tag:     "wells_fargo_export",
		Name:    "Wells Fargo",
		Columns: []string{"date", "amount", "check number", "description"},
		Mapping: ColumnMapping{Date: "Date", Amount: "Amount", Description: "Description", ExternalID: "Check Number"},
	},
	{
		Tag:     "discover",
		Name:    "Discover",
		Columns: []string{"trans. date", "post date", "description", "amount", "category"},
		Mapping: ColumnMapping{Date: "Trans. Date", Amount: "Amount", Description: "Description"},
	},
}

// DetectFormat tags a header row with a known layout when at least 80% of
// that layout's columns are present, "generic" when two of date, amount and
// description are recognizable, and "unknown" otherwise.
func DetectFormat(columns []string) string {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[normalizeHeader(c)] = struct{}{}
	}

	bestTag := ""
	bestScore := 0.0
	for _, f := range KnownFormats {
		hits := 0
		for _, c := range f.Columns {
			if _, ok := present[c]; ok {
				hits++
			}
		}
		score := float64(hits) / float64(len(f.Columns))
		if score >= knownFormatOverlap && score > bestScore {
			bestTag, bestScore = f.Tag, score
		}
	}
	if bestTag != "" {
		return bestTag
	}

	found := 0
	for _, keyword := range []string{"date", "amount", "description"} {
		for c := range present {
			if strings.Contains(c, keyword) {
				found++
				break
			}
		}
	}
	if found >= 2 {
		return FormatGeneric
	}
	return FormatUnknown
}

func LookupFormat(tag string) (BankFormat, bool) {
	for _, f := range KnownFormats {
		if f.Tag == tag {
			return f, true
		}
	}
	return BankFormat{}, false
}

// Header keywords for the generic mapping, most specific first.
var (
	dateHeaders        = []string{"transaction date", "trans. date", "posting date", "posted date", "post date", "date"}
	amountHeaders      = []string{"amount", "transaction amount", "amt"}
	debitHeaders       = []string{"debit", "debits", "withdrawal", "withdrawals", "money out", "paid out", "outflow"}
	creditHeaders      = []string{"credit", "credits", "deposit", "deposits", "money in", "paid in", "inflow"}
	descriptionHeaders = []string{"description", "transaction description", "original description", "narrative", "details", "transaction"}
	payeeHeaders       = []string{"payee", "merchant", "merchant name", "name", "counterparty"}
	notesHeaders       = []string{"memo", "notes", "note", "comment", "reference"}
	externalIDHeaders  = []string{"transaction id", "fitid", "id", "reference number", "ref", "check number"}
)

// SuggestMapping proposes which source columns feed the canonical fields.
// Known layouts use their fixed mapping, resolved against the actual header
// spelling; other headers are matched by keyword.
func SuggestMapping(columns []string, formatTag string) ColumnMapping {
	if f, ok := LookupFormat(formatTag); ok {
		return resolveMapping(f.Mapping, columns)
	}

	used := make(map[string]bool)
	pick := func(candidates []string) string {
		for _, want := range candidates {
			for _, c := range columns {
				if !used[c] && normalizeHeader(c) == want {
					used[c] = true
					return c
				}
			}
		}
		return ""
	}
	pickContaining := func(keyword string) string {
		for _, c := range columns {
			if !used[c] && strings.Contains(normalizeHeader(c), keyword) {
				used[c] = true
				return c
			}
		}
		return ""
	}

	var m ColumnMapping
	m.Date = pick(dateHeaders)
	if m.Date == "" {
		m.Date = pickContaining("date")
	}

	m.Amount = pick(amountHeaders)
	if m.Amount == "" {
		debit, credit := pick(debitHeaders), pick(creditHeaders)
		switch {
		case debit != "" && credit != "":
			m.Amount = debit + SplitSeparator + credit
		case debit != "":
			m.Amount = debit
		case credit != "":
			m.Amount = credit
		default:
			m.Amount = pickContaining("amount")
		}
	}

	m.Description = pick(descriptionHeaders)
	if m.Description == "" {
		m.Description = pickContaining("desc")
	}
	m.Payee = pick(payeeHeaders)
	m.Notes = pick(notesHeaders)
	m.ExternalID = pick(externalIDHeaders)
	return m
}

// resolveMapping rewrites mapping column names to the header's own spelling.
func resolveMapping(m ColumnMapping, columns []string) ColumnMapping {
	var find func(name string) string
	find = func(name string) string {
		if name == "" {
			return ""
		}
		if debit, credit, ok := strings.Cut(name, SplitSeparator); ok {
			return find(debit) + SplitSeparator + find(credit)
		}
		want := normalizeHeader(name)
		for _, c := range columns {
			if normalizeHeader(c) == want {
				return c
			}
		}
		return ""
	}

	return ColumnMapping{
		Date:        find(m.Date),
		Amount:      find(m.Amount),
		Description: find(m.Description),
		Payee:       find(m.Payee),
		Notes:       find(m.Notes),
		ExternalID:  find(m.ExternalID),
	}
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
