package receipts

import (
	"context"
	"strings"
	"testing"

	"github.com/festivault/festivault-backend/pkg/enums"
)

func TestExtractAmountPrefersLabelledTotals(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int64
	}{
		{"labelled total", "Pizza Palace\nItems: 3\nTotal: $45.99\nThank you", 4599},
		{"amount label", "amount: 120.50", 12050},
		{"bare dollar sign", "Paid $18 at the counter", 1800},
		{"decimal fallback", "subtotal 12.34 incl tax", 1234},
		{"nothing", "thanks for shopping", 0},
		{"out of bounds", "total: $9999999", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractAmount(tt.text).Cents(); got != tt.want {
				t.Fatalf("ExtractAmount(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		text string
		want enums.Category
	}{
		{"Receipt from Luigi's Restaurant, dinner for 12", enums.CategoryFood},
		{"Conference room rental, 4 hours", enums.CategoryVenue},
		{"Balloon arch and banner printing", enums.CategoryDecor},
		{"office supply order", enums.CategoryMisc},
		{"completely unrelated text", enums.CategoryMisc},
	}
	for _, tt := range tests {
		if got := DetectCategory(tt.text); got != tt.want {
			t.Fatalf("DetectCategory(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestProcessCleanReceiptVerifies(t *testing.T) {
	v := NewVerifier()
	text := "Pizza Palace Restaurant\n123 Main Street\n" +
		"2x Large Pizza  $25.99\nGarlic Bread  $6.50\n" +
		"Total: $58.48\nThank you for dining with us"

	res, err := v.Process(context.Background(), text, "receipt_jun1.jpg", "")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.Verification.Status != enums.VerificationStatusVerified {
		t.Fatalf("status = %v, flags = %v", res.Verification.Status, res.Verification.Flags)
	}
	if res.Amount.Cents() != 5848 {
		t.Fatalf("amount = %v", res.Amount)
	}
	if res.SuggestedCategory != enums.CategoryFood || res.Category != enums.CategoryFood {
		t.Fatalf("category = %v / %v", res.Category, res.SuggestedCategory)
	}
	if res.Verification.Confidence < 85 {
		t.Fatalf("confidence = %d", res.Verification.Confidence)
	}
}

func TestProcessUserCategoryOverridesSuggestion(t *testing.T) {
	v := NewVerifier()
	text := "Luigi's Restaurant receipt with a proper layout and Total: $20.00 printed at the bottom of the page"

	res, err := v.Process(context.Background(), text, "r.jpg", enums.CategoryVenue)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.Category != enums.CategoryVenue || res.SuggestedCategory != enums.CategoryFood {
		t.Fatalf("category = %v, suggested = %v", res.Category, res.SuggestedCategory)
	}
}

func TestProcessSingleFlagWarns(t *testing.T) {
	v := NewVerifier()
	// Legible text with an amount, but the filename betrays a copy.
	text := "Conference room rental invoice. Four hour booking.\nTotal: $150.00\nBusiness Center front desk"

	res, err := v.Process(context.Background(), text, "receipt_copy.jpg", "")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.Verification.Status != enums.VerificationStatusWarning {
		t.Fatalf("status = %v, flags = %v", res.Verification.Status, res.Verification.Flags)
	}
	if len(res.Verification.Flags) != 1 {
		t.Fatalf("flags = %v", res.Verification.Flags)
	}
}

func TestProcessMultipleFlagsSuspicious(t *testing.T) {
	v := NewVerifier()
	// Short text, no amount, and a suspicious keyword.
	res, err := v.Process(context.Background(), "draft", "edited.png", "")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.Verification.Status != enums.VerificationStatusSuspicious {
		t.Fatalf("status = %v, flags = %v", res.Verification.Status, res.Verification.Flags)
	}
	if len(res.Verification.Flags) < 2 {
		t.Fatalf("flags = %v", res.Verification.Flags)
	}
}

func TestProcessIsDeterministic(t *testing.T) {
	v := NewVerifier()
	text := "grocery haul Total: $88.20 " + strings.Repeat("item ", 30)

	first, err := v.Process(context.Background(), text, "g.jpg", "")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, _ := v.Process(context.Background(), text, "g.jpg", "")
		if again.Verification.Status != first.Verification.Status ||
			again.Verification.Confidence != first.Verification.Confidence ||
			again.Verification.QualityScore != first.Verification.QualityScore {
			t.Fatal("verification output changed between identical calls")
		}
	}
}
