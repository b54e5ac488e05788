package model

import (
	"strings"

	"github.com/google/uuid"
)

// NewTransactionID mints a wallet transaction id in the TXN-XXXXXXXX form
// the UI displays.
func NewTransactionID() string {
	return "TXN-" + shortID()
}

// NewTransferID mints a peer-transfer id.
func NewTransferID() string {
	return "ETR-" + shortID()
}

// NewExpenseID mints an expense record id.
func NewExpenseID() string {
	return "EXP-" + shortID()
}

// NewPurchaseID mints a personal shopper purchase id.
func NewPurchaseID() string {
	return "PUR-" + shortID()
}

func shortID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}
