package advisor

import (
	"reflect"
	"testing"

	"github.com/festivault/festivault-backend/pkg/enums"
	"github.com/festivault/festivault-backend/pkg/model"
	"github.com/festivault/festivault-backend/pkg/money"
)

func testBudget() *model.Budget {
	return &model.Budget{
		TotalBudget: money.FromCents(100000),
		Categories: map[enums.Category]money.Money{
			enums.CategoryFood:  money.FromCents(40000),
			enums.CategoryVenue: money.FromCents(30000),
			enums.CategoryDecor: money.FromCents(20000),
			enums.CategoryMisc:  money.FromCents(10000),
		},
	}
}

func TestRecommendationsOnTrack(t *testing.T) {
	e := NewEngine()
	wallet := &model.WalletAccount{}

	recs := e.Recommendations(testBudget(), wallet)
	if len(recs) != 1 {
		t.Fatalf("expected single on_track rec, got %d", len(recs))
	}
	if recs[0].Type != "on_track" || recs[0].Priority != enums.PriorityInfo {
		t.Fatalf("unexpected rec: %+v", recs[0])
	}
}

func TestRecommendationsOverspendSuggestsDonor(t *testing.T) {
	e := NewEngine()
	b := testBudget()
	b.Expenses = append(b.Expenses, model.Expense{
		ID: "EXP-1", Category: enums.CategoryDecor,
		Amount: money.FromCents(25000), Status: enums.ExpenseStatusPaid,
	})

	recs := e.Recommendations(b, &model.WalletAccount{})
	if recs[0].Type != "overspend_alert" || recs[0].Priority != enums.PriorityHigh {
		t.Fatalf("expected high-priority overspend first, got %+v", recs[0])
	}
	// Food has the most room (400.00) and can cover the 50.00 gap.
	if want := "Reallocate $50.00 from food to decor"; recs[0].Action != want {
		t.Fatalf("action = %q, want %q", recs[0].Action, want)
	}
}

func TestRecommendationsInsufficientWallet(t *testing.T) {
	e := NewEngine()
	b := testBudget()
	b.Expenses = append(b.Expenses, model.Expense{
		ID: "EXP-1", Category: enums.CategoryFood,
		Amount: money.FromCents(15000), Status: enums.ExpenseStatusPending,
	})
	wallet := &model.WalletAccount{Balance: money.FromCents(5000)}

	recs := e.Recommendations(b, wallet)
	found := false
	for _, r := range recs {
		if r.Type == "insufficient_wallet" {
			found = true
			if r.Priority != enums.PriorityHigh {
				t.Fatalf("priority = %v", r.Priority)
			}
			if want := "Add $100.00 to your wallet"; r.Action != want {
				t.Fatalf("action = %q", r.Action)
			}
		}
	}
	if !found {
		t.Fatalf("missing insufficient_wallet rec in %+v", recs)
	}
}

func TestRecommendationsSortedByPriorityStable(t *testing.T) {
	e := NewEngine()
	b := testBudget()
	// Overspend two categories and run the budget low to trigger
	// several rules at once.
	b.Expenses = append(b.Expenses,
		model.Expense{ID: "EXP-1", Category: enums.CategoryVenue, Amount: money.FromCents(45000), Status: enums.ExpenseStatusPaid},
		model.Expense{ID: "EXP-2", Category: enums.CategoryMisc, Amount: money.FromCents(40000), Status: enums.ExpenseStatusPaid},
	)

	recs := e.Recommendations(b, &model.WalletAccount{})
	for i := 1; i < len(recs); i++ {
		if recs[i-1].Priority.Rank() > recs[i].Priority.Rank() {
			t.Fatalf("recommendations out of priority order at %d: %+v", i, recs)
		}
	}
	// Venue precedes misc among the high-priority overspend alerts
	// because category order is fixed.
	if recs[0].Type != "overspend_alert" || recs[1].Type != "overspend_alert" {
		t.Fatalf("expected overspend alerts first: %+v", recs[:2])
	}
}

func TestEngineIsDeterministic(t *testing.T) {
	e := NewEngine()
	b := testBudget()
	b.Expenses = append(b.Expenses, model.Expense{
		ID: "EXP-1", Category: enums.CategoryFood,
		Amount: money.FromCents(90000), Status: enums.ExpenseStatusPending,
	})
	wallet := &model.WalletAccount{Balance: money.FromCents(100)}

	first := e.Recommendations(b, wallet)
	for i := 0; i < 10; i++ {
		if again := e.Recommendations(b, wallet); !reflect.DeepEqual(first, again) {
			t.Fatalf("nondeterministic output: %+v vs %+v", first, again)
		}
	}
}

func TestFeedbackNilBudget(t *testing.T) {
	if fb := NewEngine().Feedback(nil); fb != nil {
		t.Fatalf("expected nil feedback, got %v", fb)
	}
}

func TestConfirmBulkPayment(t *testing.T) {
	e := NewEngine()
	one := []model.VendorPayment{{Vendor: "Pizza Palace"}}
	if got := e.ConfirmBulkPayment(one, money.FromCents(12000)); got != "Paid $120.00 to Pizza Palace." {
		t.Fatalf("single vendor message = %q", got)
	}
	two := []model.VendorPayment{{Vendor: "A"}, {Vendor: "B"}}
	if got := e.ConfirmBulkPayment(two, money.FromCents(30000)); got != "Paid 2 vendors a total of $300.00." {
		t.Fatalf("multi vendor message = %q", got)
	}
}
