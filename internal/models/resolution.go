package models

// ResolutionMatchType is the confidence tier of a payee resolution.
type ResolutionMatchType string

const (
	ResolutionHighConfidence ResolutionMatchType = "HIGH_CONFIDENCE"
	ResolutionLowConfidence  ResolutionMatchType = "LOW_CONFIDENCE"
	ResolutionNoMatch        ResolutionMatchType = "NO_MATCH"
)

type PayeeAlternative struct {
	Payee      *Payee  `json:"payee"`
	Confidence float64 `json:"confidence"`
}

// ResolutionResult is the outcome of resolving extracted payee text to a
// persisted Payee. For NO_MATCH, SuggestedName and CategoryHint pre-populate
// a new payee.
type ResolutionResult struct {
	MatchType     ResolutionMatchType `json:"match_type"`
	Payee         *Payee              `json:"payee,omitempty"`
	Confidence    float64             `json:"confidence"`
	Reason        string              `json:"reason"`
	Alternatives  []PayeeAlternative  `json:"alternatives"`
	SuggestedName string              `json:"suggested_name,omitempty"`
	CategoryHint  string              `json:"category_hint,omitempty"`
}

func (r *ResolutionResult) IsHighConfidence() bool {
	return r.MatchType == ResolutionHighConfidence && r.Payee != nil
}
