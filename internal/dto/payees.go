package dto

import "fintrack/internal/models"

// ResolvePayeeRequest resolves a raw bank description to one of the user's payees.
type ResolvePayeeRequest struct {
	Description string `json:"description" validate:"required,max=500"`
}

// AcceptPayeeRequest records that the user confirmed description belongs to the payee.
type AcceptPayeeRequest struct {
	Description string `json:"description" validate:"required,max=500"`
	PatternType string `json:"pattern_type" validate:"required,pattern_type"`
}

type AcceptPayeeResponse struct {
	Pattern *models.PayeeMatchingPattern `json:"pattern"`
	Message string                       `json:"message"`
}
