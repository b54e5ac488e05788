package budget

import (
	"testing"

	"github.com/festivault/festivault-backend/pkg/enums"
	"github.com/festivault/festivault-backend/pkg/model"
	"github.com/festivault/festivault-backend/pkg/money"
)

func TestDefaultSplitProportionsAndSum(t *testing.T) {
	split := DefaultSplit(money.FromCents(100000))

	want := map[enums.Category]int64{
		enums.CategoryFood:  40000,
		enums.CategoryVenue: 30000,
		enums.CategoryDecor: 20000,
		enums.CategoryMisc:  10000,
	}
	for cat, cents := range want {
		if got := split[cat].Cents(); got != cents {
			t.Fatalf("%s = %d, want %d", cat, got, cents)
		}
	}
}

func TestSplitAlwaysSumsToTotal(t *testing.T) {
	// Awkward totals exercise the remainder handling.
	for _, cents := range []int64{1, 99, 333, 100001, 999999999} {
		total := money.FromCents(cents)
		split := DefaultSplit(total)
		var sum money.Money
		for _, cat := range enums.Categories {
			sum = sum.Add(split[cat])
		}
		if sum != total {
			t.Fatalf("split of %d sums to %d", cents, sum.Cents())
		}
	}
}

func TestAdaptiveSplitFallsBackWithoutHistory(t *testing.T) {
	prev := &model.Budget{
		TotalBudget: money.FromCents(50000),
		Categories:  DefaultSplit(money.FromCents(50000)),
	}
	split := AdaptiveSplit(money.FromCents(100000), prev)
	if split[enums.CategoryFood].Cents() != 40000 {
		t.Fatalf("no-spend history should use default split, got %v", split)
	}

	if split := AdaptiveSplit(money.FromCents(100000), nil); split[enums.CategoryVenue].Cents() != 30000 {
		t.Fatalf("nil previous should use default split, got %v", split)
	}
}

func TestAdaptiveSplitBlendsSpendingPattern(t *testing.T) {
	prev := &model.Budget{
		TotalBudget: money.FromCents(100000),
		Categories:  DefaultSplit(money.FromCents(100000)),
		Expenses: []model.Expense{
			// Everything went to food last time.
			{ID: "EXP-1", Category: enums.CategoryFood, Amount: money.FromCents(60000), Status: enums.ExpenseStatusPaid},
		},
	}

	split := AdaptiveSplit(money.FromCents(100000), prev)
	// food: 0.7*1.0 + 0.3*0.4 = 0.82
	if got := split[enums.CategoryFood].Cents(); got != 82000 {
		t.Fatalf("food = %d, want 82000", got)
	}
	// venue: 0.7*0 + 0.3*0.3 = 0.09
	if got := split[enums.CategoryVenue].Cents(); got != 9000 {
		t.Fatalf("venue = %d, want 9000", got)
	}

	var sum money.Money
	for _, cat := range enums.Categories {
		sum = sum.Add(split[cat])
	}
	if sum.Cents() != 100000 {
		t.Fatalf("blended split sums to %d", sum.Cents())
	}
}
