// Package receipts implements receipt text processing: pulling the
// amount out of raw text, guessing the expense category, and flagging
// signs of tampering. The heuristics are deliberately simple and fully
// deterministic; swapping in a real OCR or fraud model only means
// replacing the Verifier implementation.
package receipts

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/festivault/festivault-backend/pkg/enums"
	"github.com/festivault/festivault-backend/pkg/model"
	"github.com/festivault/festivault-backend/pkg/money"
)

var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`total[:\s]+\$?(\d+\.?\d*)`),
	regexp.MustCompile(`amount[:\s]+\$?(\d+\.?\d*)`),
	regexp.MustCompile(`sum[:\s]+\$?(\d+\.?\d*)`),
	regexp.MustCompile(`\$(\d+\.?\d*)`),
	regexp.MustCompile(`(\d+\.\d{2})`),
}

var suspiciousKeywords = []string{
	"photocopy", "duplicate", "copy", "edited", "modified",
	"fake", "sample", "template", "draft",
}

var categoryKeywords = map[enums.Category][]string{
	enums.CategoryFood:  {"restaurant", "cafe", "pizza", "burger", "coffee", "food", "grocery", "lunch", "dinner", "breakfast"},
	enums.CategoryVenue: {"venue", "hall", "rental", "space", "hotel", "conference", "room"},
	enums.CategoryDecor: {"decor", "decoration", "flowers", "balloon", "banner", "lighting"},
	enums.CategoryMisc:  {"misc", "other", "general", "supply", "office"},
}

// Result is the full output of processing one receipt.
type Result struct {
	Amount            money.Money               `json:"amount"`
	Category          enums.Category            `json:"category"`
	SuggestedCategory enums.Category            `json:"ai_suggested_category"`
	Verification      model.ReceiptVerification `json:"verification"`
	Filename          string                    `json:"filename"`
	ProcessedAt       time.Time                 `json:"processed_at"`
}

type Verifier interface {
	Process(ctx context.Context, text, filename string, userCategory enums.Category) (*Result, error)
}

type verifier struct {
	now func() time.Time
}

func NewVerifier() Verifier {
	return &verifier{now: time.Now}
}

func (v *verifier) Process(ctx context.Context, text, filename string, userCategory enums.Category) (*Result, error) {
	amount := ExtractAmount(text)
	suggested := DetectCategory(text)

	category := suggested
	if userCategory.IsValid() {
		category = userCategory
	}

	return &Result{
		Amount:            amount,
		Category:          category,
		SuggestedCategory: suggested,
		Verification:      verify(text, filename, amount),
		Filename:          filename,
		ProcessedAt:       v.now().UTC(),
	}, nil
}

// ExtractAmount finds the first plausible monetary amount in the text.
// Returns zero when nothing in reasonable bounds matches.
func ExtractAmount(text string) money.Money {
	lower := strings.ToLower(text)
	for _, pattern := range amountPatterns {
		m := pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		amount, err := money.Parse(m[1])
		if err != nil {
			continue
		}
		if amount.Cents() >= 1 && amount.Cents() <= 10000000 {
			return amount
		}
	}
	return 0
}

// DetectCategory guesses the expense category from receipt keywords,
// defaulting to misc.
func DetectCategory(text string) enums.Category {
	lower := strings.ToLower(text)
	for _, cat := range enums.Categories {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(lower, kw) {
				return cat
			}
		}
	}
	return enums.CategoryMisc
}

func verify(text, filename string, amount money.Money) model.ReceiptVerification {
	lowerText := strings.ToLower(text)
	lowerName := strings.ToLower(filename)

	var flags []string
	for _, kw := range suspiciousKeywords {
		if strings.Contains(lowerText, kw) || strings.Contains(lowerName, kw) {
			flags = append(flags, fmt.Sprintf("Contains %q", kw))
		}
	}
	if amount.IsZero() {
		flags = append(flags, "No valid amount detected")
	}
	if amount.Cents() > 1000000 {
		flags = append(flags, fmt.Sprintf("Unusually high amount: %s", amount))
	}

	quality := qualityScore(text)
	if quality < 70 {
		flags = append(flags, fmt.Sprintf("Low image quality: %d%%", quality))
	}

	status, confidence := classify(len(flags))
	return model.ReceiptVerification{
		Status:       status,
		Confidence:   confidence,
		QualityScore: quality,
		Flags:        flags,
	}
}

// qualityScore stands in for a real image quality check. Longer
// extracted text means the capture was more legible.
func qualityScore(text string) int {
	switch n := len(strings.TrimSpace(text)); {
	case n >= 200:
		return 95
	case n >= 80:
		return 85
	case n >= 30:
		return 75
	default:
		return 65
	}
}

func classify(flagCount int) (enums.VerificationStatus, int) {
	switch {
	case flagCount >= 2:
		return enums.VerificationStatusSuspicious, 45
	case flagCount == 1:
		return enums.VerificationStatusWarning, 75
	default:
		return enums.VerificationStatusVerified, 92
	}
}
