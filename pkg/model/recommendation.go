package model

import "github.com/festivault/festivault-backend/pkg/enums"

// Recommendation is one actionable insight derived from ledger state.
type Recommendation struct {
	Type     string         `json:"type"`
	Priority enums.Priority `json:"priority"`
	Action   string         `json:"action"`
	Reason   string         `json:"reason"`
}
