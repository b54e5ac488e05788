package model

import (
	"time"

	"github.com/festivault/festivault-backend/pkg/enums"
	"github.com/festivault/festivault-backend/pkg/money"
)

// Expense is a vendor cost recorded against a budget category. Overspend
// is tracked, not blocked, so a category balance may go negative.
type Expense struct {
	ID           string               `json:"id"`
	Category     enums.Category       `json:"category"`
	Amount       money.Money          `json:"amount"`
	VendorName   string               `json:"vendor_name,omitempty"`
	Status       enums.ExpenseStatus  `json:"status"`
	Verification *ReceiptVerification `json:"verification,omitempty"`
	AIPurchase   *AIPurchaseMeta      `json:"ai_purchase_meta,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

// ReceiptVerification is the opaque triple returned by the receipt
// verification collaborator, stored verbatim on the expense.
type ReceiptVerification struct {
	Status       enums.VerificationStatus `json:"status"`
	Confidence   int                      `json:"confidence"`
	QualityScore int                      `json:"quality_score,omitempty"`
	Flags        []string                 `json:"flags"`
}

// AIPurchaseMeta preserves what the personal shopper decided when it
// created the expense on the user's behalf.
type AIPurchaseMeta struct {
	PurchaseID    string      `json:"purchase_id"`
	Vendor        string      `json:"vendor"`
	ProductName   string      `json:"product_name"`
	OriginalPrice money.Money `json:"original_price"`
	Savings       money.Money `json:"savings"`
	Reasoning     string      `json:"ai_reasoning,omitempty"`
}
