package model

import (
	"time"

	"github.com/festivault/festivault-backend/pkg/enums"
	"github.com/festivault/festivault-backend/pkg/money"
)

// Transfer records a peer-to-peer money movement: an outbound
// e-transfer, an inbound money request, or an expense settlement.
// Security question and answer are stored as metadata only; nothing
// verifies them before completion.
type Transfer struct {
	ID                string               `json:"id"`
	Kind              enums.TransferKind   `json:"type"`
	CounterpartyEmail string               `json:"counterparty_email"`
	Amount            money.Money          `json:"amount"`
	Status            enums.TransferStatus `json:"status"`
	Message           string               `json:"message,omitempty"`
	SecurityQuestion  string               `json:"security_question,omitempty"`
	SecurityAnswer    string               `json:"security_answer,omitempty"`
	ExpenseID         string               `json:"expense_id,omitempty"`
	Timestamp         time.Time            `json:"timestamp"`
}

// SettlementSuggestion is derived from pending expenses per category and
// never persisted.
type SettlementSuggestion struct {
	Category       enums.Category `json:"category"`
	SuggestedSplit money.Money    `json:"suggested_split"`
	Reason         string         `json:"reason"`
}

// VendorPayment is one line of a bulk vendor payment receipt.
type VendorPayment struct {
	ExpenseID     string      `json:"expense_id"`
	Vendor        string      `json:"vendor"`
	Amount        money.Money `json:"amount"`
	TransactionID string      `json:"transaction_id"`
}
