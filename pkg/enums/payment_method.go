package enums

import "fmt"

// PaymentMethod names the funding rails a wallet top-up can arrive on.
// Interac is a label here, not a payment-network integration.
type PaymentMethod string

const (
	PaymentMethodInteracDebit    PaymentMethod = "interac_debit"
	PaymentMethodInteracOnline   PaymentMethod = "interac_online"
	PaymentMethodInteracTransfer PaymentMethod = "interac_transfer"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodInteracDebit,
	PaymentMethodInteracOnline,
	PaymentMethodInteracTransfer,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod, defaulting
// to interac_debit for empty input.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	if value == "" {
		return PaymentMethodInteracDebit, nil
	}
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
