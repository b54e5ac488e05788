package enums

// VerificationStatus classifies a receipt authenticity check.
type VerificationStatus string

const (
	VerificationStatusVerified   VerificationStatus = "verified"
	VerificationStatusWarning    VerificationStatus = "warning"
	VerificationStatusSuspicious VerificationStatus = "suspicious"
)

// String implements fmt.Stringer.
func (v VerificationStatus) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VerificationStatus.
func (v VerificationStatus) IsValid() bool {
	switch v {
	case VerificationStatusVerified, VerificationStatusWarning, VerificationStatusSuspicious:
		return true
	}
	return false
}
