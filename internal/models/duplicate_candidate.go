package models

import "github.com/google/uuid"

// DuplicateCandidate links an incoming row to the persisted transaction it
// most likely duplicates.
type DuplicateCandidate struct {
	ExistingTransactionID uuid.UUID `json:"existing_transaction_id"`
	ConfidenceScore       float64   `json:"confidence_score"`
	MatchedNewRowIndex    int       `json:"matched_new_row_index"`
	ExternalIDMatch       bool      `json:"external_id_match"`
}
