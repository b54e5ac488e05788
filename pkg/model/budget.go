package model

import (
	"time"

	"github.com/festivault/festivault-backend/pkg/enums"
	"github.com/festivault/festivault-backend/pkg/money"
)

// Budget holds the event budget: the total and its per-category
// allocations, plus the expense records charged against them.
//
// Category balances are never stored. They are always recomputed from
// the allocation map and the expense list so they cannot drift.
type Budget struct {
	TotalBudget money.Money                    `json:"total_budget"`
	Categories  map[enums.Category]money.Money `json:"categories"`
	Expenses    []Expense                      `json:"expenses"`
	CreatedAt   time.Time                      `json:"created_at"`
}

// Spent sums every non-deleted expense, paid or pending.
func (b *Budget) Spent() money.Money {
	var total money.Money
	for _, exp := range b.Expenses {
		total = total.Add(exp.Amount)
	}
	return total
}

// Remaining is the total budget less everything spent.
func (b *Budget) Remaining() money.Money {
	return b.TotalBudget.Sub(b.Spent())
}

// CategorySpend sums the expenses charged to one category.
func (b *Budget) CategorySpend(category enums.Category) money.Money {
	var total money.Money
	for _, exp := range b.Expenses {
		if exp.Category == category {
			total = total.Add(exp.Amount)
		}
	}
	return total
}

// CategoryBalance is the allocation minus the category's spend. Negative
// balances surface overspend.
func (b *Budget) CategoryBalance(category enums.Category) money.Money {
	return b.Categories[category].Sub(b.CategorySpend(category))
}

// CategoryBalances recomputes every category balance.
func (b *Budget) CategoryBalances() map[enums.Category]money.Money {
	balances := make(map[enums.Category]money.Money, len(b.Categories))
	for category := range b.Categories {
		balances[category] = b.CategoryBalance(category)
	}
	return balances
}

// PendingExpenses returns the indexes of expenses still awaiting payment,
// in insertion order.
func (b *Budget) PendingExpenses() []int {
	var pending []int
	for i, exp := range b.Expenses {
		if exp.Status == enums.ExpenseStatusPending {
			pending = append(pending, i)
		}
	}
	return pending
}

// PendingTotal sums the amounts of all pending expenses.
func (b *Budget) PendingTotal() money.Money {
	var total money.Money
	for _, exp := range b.Expenses {
		if exp.Status == enums.ExpenseStatusPending {
			total = total.Add(exp.Amount)
		}
	}
	return total
}

// Clone deep-copies the budget so transactional updates can mutate a
// working copy without exposing half-applied state.
func (b *Budget) Clone() *Budget {
	if b == nil {
		return nil
	}
	dup := &Budget{
		TotalBudget: b.TotalBudget,
		Categories:  make(map[enums.Category]money.Money, len(b.Categories)),
		Expenses:    make([]Expense, len(b.Expenses)),
		CreatedAt:   b.CreatedAt,
	}
	for category, allocated := range b.Categories {
		dup.Categories[category] = allocated
	}
	copy(dup.Expenses, b.Expenses)
	for i, exp := range dup.Expenses {
		if exp.Verification != nil {
			verification := *exp.Verification
			verification.Flags = append([]string(nil), exp.Verification.Flags...)
			dup.Expenses[i].Verification = &verification
		}
		if exp.AIPurchase != nil {
			meta := *exp.AIPurchase
			dup.Expenses[i].AIPurchase = &meta
		}
	}
	return dup
}
