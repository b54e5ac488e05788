package budget

import (
	"github.com/shopspring/decimal"

	"github.com/festivault/festivault-backend/pkg/enums"
	"github.com/festivault/festivault-backend/pkg/model"
	"github.com/festivault/festivault-backend/pkg/money"
)

// defaultWeights is the allocation applied to a brand new budget.
var defaultWeights = map[enums.Category]decimal.Decimal{
	enums.CategoryFood:  decimal.NewFromFloat(0.40),
	enums.CategoryVenue: decimal.NewFromFloat(0.30),
	enums.CategoryDecor: decimal.NewFromFloat(0.20),
	enums.CategoryMisc:  decimal.NewFromFloat(0.10),
}

const historyBlend = 0.70

// DefaultSplit allocates the total across categories using the default
// weights. Rounding remainders land on the last category so the
// allocations always sum to the total exactly.
func DefaultSplit(total money.Money) map[enums.Category]money.Money {
	return applyWeights(total, defaultWeights)
}

// AdaptiveSplit blends the previous budget's actual spending pattern
// (70%) with the default weights (30%). A previous budget with no
// spending falls back to the default split.
func AdaptiveSplit(total money.Money, previous *model.Budget) map[enums.Category]money.Money {
	if previous == nil {
		return DefaultSplit(total)
	}
	spent := previous.Spent()
	if !spent.IsPositive() {
		return DefaultSplit(total)
	}

	history := decimal.NewFromFloat(historyBlend)
	base := decimal.NewFromInt(1).Sub(history)
	spentDec := spent.Decimal()

	weights := make(map[enums.Category]decimal.Decimal, len(enums.Categories))
	for _, cat := range enums.Categories {
		share := previous.CategorySpend(cat).Decimal().Div(spentDec)
		weights[cat] = share.Mul(history).Add(defaultWeights[cat].Mul(base))
	}
	return applyWeights(total, weights)
}

func applyWeights(total money.Money, weights map[enums.Category]decimal.Decimal) map[enums.Category]money.Money {
	out := make(map[enums.Category]money.Money, len(enums.Categories))
	var allocated money.Money
	for i, cat := range enums.Categories {
		if i == len(enums.Categories)-1 {
			out[cat] = total.Sub(allocated)
			break
		}
		amt := money.FromDecimal(total.Decimal().Mul(weights[cat]))
		out[cat] = amt
		allocated = allocated.Add(amt)
	}
	return out
}
