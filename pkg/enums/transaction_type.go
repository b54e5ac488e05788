package enums

import "fmt"

// TransactionType labels entries in the wallet transaction log.
type TransactionType string

const (
	TransactionTypeAddFunds   TransactionType = "add_funds"
	TransactionTypePurchase   TransactionType = "purchase"
	TransactionTypeAIPurchase TransactionType = "ai_purchase"
	TransactionTypeExpense    TransactionType = "expense"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeAddFunds,
	TransactionTypePurchase,
	TransactionTypeAIPurchase,
	TransactionTypeExpense,
}

// String implements fmt.Stringer.
func (t TransactionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TransactionType.
func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// IsDebit reports whether the type records money leaving the wallet.
func (t TransactionType) IsDebit() bool {
	switch t {
	case TransactionTypePurchase, TransactionTypeAIPurchase, TransactionTypeExpense:
		return true
	}
	return false
}

// ParseTransactionType converts raw input into a TransactionType.
func ParseTransactionType(value string) (TransactionType, error) {
	for _, candidate := range validTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}
