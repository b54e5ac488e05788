package enums

import "fmt"

// TransferKind labels peer-to-peer money movements.
type TransferKind string

const (
	TransferKindSend       TransferKind = "send"
	TransferKindRequest    TransferKind = "request"
	TransferKindSettlement TransferKind = "settlement"
)

var validTransferKinds = []TransferKind{
	TransferKindSend,
	TransferKindRequest,
	TransferKindSettlement,
}

// String implements fmt.Stringer.
func (k TransferKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known TransferKind.
func (k TransferKind) IsValid() bool {
	for _, candidate := range validTransferKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// TransferStatus tracks the lifecycle of a transfer or money request.
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusCompleted TransferStatus = "completed"
)

var validTransferStatuses = []TransferStatus{
	TransferStatusPending,
	TransferStatusCompleted,
}

// String implements fmt.Stringer.
func (s TransferStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known TransferStatus.
func (s TransferStatus) IsValid() bool {
	for _, candidate := range validTransferStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTransferKind converts raw input into a TransferKind.
func ParseTransferKind(value string) (TransferKind, error) {
	for _, candidate := range validTransferKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transfer kind %q", value)
}
