// Package advisor derives spending feedback and recommendations from
// the current ledger state. The engine is pure: the same inputs always
// produce the same output, so it can be exercised directly in tests
// and swapped behind a port.
package advisor

import (
	"fmt"
	"sort"

	"github.com/festivault/festivault-backend/pkg/enums"
	"github.com/festivault/festivault-backend/pkg/model"
	"github.com/festivault/festivault-backend/pkg/money"
)

type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Feedback returns short human-readable observations about the budget,
// one per triggered condition, in a fixed order.
func (e *Engine) Feedback(b *model.Budget) []string {
	if b == nil {
		return nil
	}

	var out []string
	for _, cat := range enums.Categories {
		if bal := b.CategoryBalance(cat); bal.IsNegative() {
			out = append(out, fmt.Sprintf("You are %s over budget in %s.", bal.Abs(), cat))
		}
	}

	remaining := b.Remaining()
	switch {
	case remaining.IsNegative():
		out = append(out, fmt.Sprintf("Overall budget exceeded by %s.", remaining.Abs()))
	case remaining.Cents()*5 < b.TotalBudget.Cents():
		out = append(out, fmt.Sprintf("Only %s of your budget remains. Time to slow down.", remaining))
	default:
		out = append(out, fmt.Sprintf("Budget on track: %s remaining of %s.", remaining, b.TotalBudget))
	}
	return out
}

// Recommendations builds the prioritized action list for the
// dashboard. Results are sorted by priority, high first, with ties
// kept in rule order.
func (e *Engine) Recommendations(b *model.Budget, wallet *model.WalletAccount) []model.Recommendation {
	if b == nil {
		return nil
	}

	var recs []model.Recommendation

	for _, cat := range enums.Categories {
		bal := b.CategoryBalance(cat)
		if !bal.IsNegative() {
			continue
		}
		if donor, room := e.bestDonor(b, cat); donor != "" && room.Cents() >= bal.Abs().Cents() {
			recs = append(recs, model.Recommendation{
				Type:     "overspend_alert",
				Priority: enums.PriorityHigh,
				Action:   fmt.Sprintf("Reallocate %s from %s to %s", bal.Abs(), donor, cat),
				Reason:   fmt.Sprintf("%s is %s over its allocation and %s has room to spare", cat, bal.Abs(), donor),
			})
		} else {
			recs = append(recs, model.Recommendation{
				Type:     "overspend_alert",
				Priority: enums.PriorityHigh,
				Action:   fmt.Sprintf("Review spending in %s", cat),
				Reason:   fmt.Sprintf("%s is %s over its allocation and no other category can cover it", cat, bal.Abs()),
			})
		}
	}

	remaining := b.Remaining()
	if remaining.IsNegative() {
		recs = append(recs, model.Recommendation{
			Type:     "budget_exceeded",
			Priority: enums.PriorityHigh,
			Action:   "Increase the total budget or trim planned expenses",
			Reason:   fmt.Sprintf("Spending exceeds the total budget by %s", remaining.Abs()),
		})
	} else if remaining.Cents()*5 < b.TotalBudget.Cents() {
		recs = append(recs, model.Recommendation{
			Type:     "low_budget_warning",
			Priority: enums.PriorityMedium,
			Action:   "Hold off on non-essential purchases",
			Reason:   fmt.Sprintf("Less than 20%% of the budget remains (%s of %s)", remaining, b.TotalBudget),
		})
	}

	if pending := b.PendingTotal(); pending.IsPositive() && wallet != nil {
		if wallet.Balance.Cents() >= pending.Cents() {
			recs = append(recs, model.Recommendation{
				Type:     "pending_payments",
				Priority: enums.PriorityMedium,
				Action:   fmt.Sprintf("Pay %d pending vendors (%s total)", len(b.PendingExpenses()), pending),
				Reason:   "Your wallet covers all pending vendor payments",
			})
		} else {
			recs = append(recs, model.Recommendation{
				Type:     "insufficient_wallet",
				Priority: enums.PriorityHigh,
				Action:   fmt.Sprintf("Add %s to your wallet", money.Money(pending.Cents()-wallet.Balance.Cents())),
				Reason:   fmt.Sprintf("Pending payments total %s but the wallet holds %s", pending, wallet.Balance),
			})
		}
	}

	if len(recs) == 0 {
		recs = append(recs, model.Recommendation{
			Type:     "on_track",
			Priority: enums.PriorityInfo,
			Action:   "Keep logging expenses as they come in",
			Reason:   "No budget issues detected",
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})
	return recs
}

// ConfirmBulkPayment phrases the confirmation line returned after a
// successful bulk vendor payment.
func (e *Engine) ConfirmBulkPayment(payments []model.VendorPayment, total money.Money) string {
	if len(payments) == 1 {
		if payments[0].Vendor == "" {
			return fmt.Sprintf("Paid %s to 1 vendor.", total)
		}
		return fmt.Sprintf("Paid %s to %s.", total, payments[0].Vendor)
	}
	return fmt.Sprintf("Paid %d vendors a total of %s.", len(payments), total)
}

// bestDonor finds the category with the most unspent allocation,
// excluding the overspent one. Returns "" when nothing has room.
func (e *Engine) bestDonor(b *model.Budget, exclude enums.Category) (enums.Category, money.Money) {
	var (
		donor enums.Category
		room  money.Money
	)
	for _, cat := range enums.Categories {
		if cat == exclude {
			continue
		}
		if bal := b.CategoryBalance(cat); bal.Cents() > room.Cents() {
			donor, room = cat, bal
		}
	}
	return donor, room
}
