// Package shopper implements the personal shopper: it searches a
// curated vendor catalog, scores options against the caller's
// preferences, and can execute a purchase that is paid from the wallet
// and logged as an expense. Scoring is deterministic so the same
// preferences always rank products the same way.
package shopper

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/festivault/festivault-backend/internal/session"
	"github.com/festivault/festivault-backend/pkg/enums"
	pkgerrors "github.com/festivault/festivault-backend/pkg/errors"
	"github.com/festivault/festivault-backend/pkg/model"
	"github.com/festivault/festivault-backend/pkg/money"
)

const studentDiscountRate = 0.15

type OptimizeFor string

const (
	OptimizeBalanced  OptimizeFor = "balanced"
	OptimizeCheapest  OptimizeFor = "cheapest"
	OptimizeClosest   OptimizeFor = "closest"
	OptimizeBestRated OptimizeFor = "best_rated"
)

type weights struct {
	price, distance, rating, filters float64
}

var optimizeWeights = map[OptimizeFor]weights{
	OptimizeBalanced:  {price: 0.4, distance: 0.3, rating: 0.2, filters: 0.1},
	OptimizeCheapest:  {price: 0.7, distance: 0.1, rating: 0.1, filters: 0.1},
	OptimizeClosest:   {price: 0.1, distance: 0.7, rating: 0.1, filters: 0.1},
	OptimizeBestRated: {price: 0.1, distance: 0.1, rating: 0.7, filters: 0.1},
}

type Preferences struct {
	Category        enums.Category
	OptimizeFor     OptimizeFor
	StudentDiscount bool
	Halal           bool
	Vegan           bool
	Ethical         bool
	MaxPrice        money.Money // 0 means no cap
	MaxDistanceKm   float64     // 0 means no cap
}

// ScoredProduct is a catalog entry with its preference score and any
// applicable discount applied.
type ScoredProduct struct {
	Product
	Score           float64     `json:"ai_score"`
	DiscountedPrice money.Money `json:"discounted_price"`
	Savings         money.Money `json:"savings"`
}

type ComparisonPick struct {
	Name   string `json:"name"`
	Vendor string `json:"vendor"`
}

// Comparison summarizes the field so the UI can show the extremes
// alongside the ranked list.
type Comparison struct {
	TotalOptions int            `json:"total_options"`
	BestPrice    ComparisonPick `json:"best_price"`
	Closest      ComparisonPick `json:"closest"`
	HighestRated ComparisonPick `json:"highest_rated"`
}

type SearchResult struct {
	Status         string          `json:"status"`
	Message        string          `json:"message"`
	Products       []ScoredProduct `json:"products"`
	Comparison     *Comparison     `json:"comparison,omitempty"`
	Recommendation *ScoredProduct  `json:"ai_recommendation,omitempty"`
}

type PurchaseInput struct {
	Category       enums.Category
	ProductIndex   int
	AutoAddExpense bool
	UseWallet      bool
}

type PurchaseResult struct {
	PurchaseID          string      `json:"purchase_id"`
	Status              string      `json:"status"`
	ProductName         string      `json:"product_name"`
	Vendor              string      `json:"vendor"`
	OriginalPrice       money.Money `json:"original_price"`
	FinalPrice          money.Money `json:"final_price"`
	Savings             money.Money `json:"savings"`
	EstimatedDelivery   string      `json:"estimated_delivery"`
	PaymentMethod       string      `json:"payment_method"`
	Reasoning           string      `json:"ai_reasoning"`
	WalletTransactionID string      `json:"wallet_transaction_id,omitempty"`
	WalletBalanceAfter  money.Money `json:"wallet_balance_after,omitempty"`
	ExpenseAdded        bool        `json:"expense_added"`
	RemainingBudget     money.Money `json:"remaining_budget,omitempty"`
	Warning             string      `json:"warning,omitempty"`
	Timestamp           time.Time   `json:"timestamp"`
}

type Service interface {
	Search(ctx context.Context, prefs Preferences) (*SearchResult, error)
	Purchase(ctx context.Context, sess *session.Session, in PurchaseInput) (*PurchaseResult, error)
}

type service struct {
	now func() time.Time
}

func NewService() (Service, error) {
	return &service{now: time.Now}, nil
}

func (s *service) Search(ctx context.Context, prefs Preferences) (*SearchResult, error) {
	if !prefs.Category.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown category %q", prefs.Category)
	}
	if prefs.OptimizeFor == "" {
		prefs.OptimizeFor = OptimizeBalanced
	}
	if _, ok := optimizeWeights[prefs.OptimizeFor]; !ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown optimization %q", prefs.OptimizeFor)
	}

	products := rank(prefs)
	if len(products) == 0 {
		return &SearchResult{
			Status:   "no_results",
			Message:  "No products found matching your criteria. Try relaxing some filters.",
			Products: []ScoredProduct{},
		}, nil
	}

	top := products[0]
	return &SearchResult{
		Status:         "success",
		Message:        fmt.Sprintf("Found %d options. Showing best matches first.", len(products)),
		Products:       products,
		Comparison:     compare(products),
		Recommendation: &top,
	}, nil
}

// Purchase buys a product from the most recent balanced ranking for
// the category. Wallet payment and the expense entry are written in
// one atomic update.
func (s *service) Purchase(ctx context.Context, sess *session.Session, in PurchaseInput) (*PurchaseResult, error) {
	if !in.Category.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown category %q", in.Category)
	}

	products := rank(Preferences{Category: in.Category, OptimizeFor: OptimizeBalanced})
	if in.ProductIndex < 0 || in.ProductIndex >= len(products) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product selection")
	}
	picked := products[in.ProductIndex]

	now := s.now().UTC()
	result := PurchaseResult{
		PurchaseID:        model.NewPurchaseID(),
		Status:            "completed",
		ProductName:       picked.Name,
		Vendor:            picked.Vendor,
		OriginalPrice:     picked.Price,
		FinalPrice:        picked.DiscountedPrice,
		Savings:           picked.Savings,
		EstimatedDelivery: estimateDelivery(picked.DistanceKm),
		PaymentMethod:     "interac",
		Reasoning:         reasoning(picked, Preferences{OptimizeFor: OptimizeBalanced}),
		Timestamp:         now,
	}

	err := sess.Update(func(st *session.State) error {
		if in.UseWallet {
			tx, err := st.Wallet.Debit(result.FinalPrice, enums.TransactionTypeAIPurchase,
				fmt.Sprintf("AI Purchase: %s from %s", picked.Name, picked.Vendor), now)
			if err != nil {
				return err
			}
			result.PaymentMethod = "wallet"
			result.WalletTransactionID = tx.ID
			result.WalletBalanceAfter = tx.BalanceAfter
		}

		if !in.AutoAddExpense {
			return nil
		}
		if st.Budget == nil {
			return pkgerrors.New(pkgerrors.CodeNoBudget, "create a budget before auto-adding expenses")
		}
		if result.FinalPrice.Cents() > st.Budget.Remaining().Cents() {
			result.Warning = fmt.Sprintf(
				"Purchase successful but not added to expenses: exceeds remaining budget (%s)",
				st.Budget.Remaining())
			return nil
		}
		st.Budget.Expenses = append(st.Budget.Expenses, model.Expense{
			ID:         model.NewExpenseID(),
			Category:   in.Category,
			Amount:     result.FinalPrice,
			VendorName: picked.Vendor,
			Status:     enums.ExpenseStatusPaid,
			AIPurchase: &model.AIPurchaseMeta{
				PurchaseID:    result.PurchaseID,
				Vendor:        picked.Vendor,
				ProductName:   picked.Name,
				OriginalPrice: picked.Price,
				Savings:       picked.Savings,
				Reasoning:     result.Reasoning,
			},
			CreatedAt: now,
		})
		result.ExpenseAdded = true
		result.RemainingBudget = st.Budget.Remaining()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// rank applies the hard filters, scores what passes, applies the
// student discount, and sorts best first.
func rank(prefs Preferences) []ScoredProduct {
	w := optimizeWeights[prefs.OptimizeFor]

	var out []ScoredProduct
	for _, p := range catalog[prefs.Category] {
		if prefs.StudentDiscount && !p.StudentDiscount {
			continue
		}
		if prefs.Halal && !p.Halal {
			continue
		}
		if prefs.Vegan && !p.Vegan {
			continue
		}
		if prefs.Ethical && !p.Ethical {
			continue
		}
		if prefs.MaxPrice.IsPositive() && p.Price.Cents() > prefs.MaxPrice.Cents() {
			continue
		}
		if prefs.MaxDistanceKm > 0 && p.DistanceKm > prefs.MaxDistanceKm {
			continue
		}

		sp := ScoredProduct{
			Product:         p,
			Score:           score(p, prefs, w),
			DiscountedPrice: p.Price,
		}
		if prefs.StudentDiscount && p.StudentDiscount {
			discount := money.FromDecimal(p.Price.Decimal().Mul(decimal.NewFromFloat(studentDiscountRate)))
			sp.Savings = discount
			sp.DiscountedPrice = p.Price.Sub(discount)
		}
		out = append(out, sp)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func score(p Product, prefs Preferences, w weights) float64 {
	maxPrice := 100.0
	if prefs.MaxPrice.IsPositive() {
		maxPrice = prefs.MaxPrice.Float64()
	}
	maxDistance := 10.0
	if prefs.MaxDistanceKm > 0 {
		maxDistance = prefs.MaxDistanceKm
	}

	total := math.Max(0, 100-p.Price.Float64()/maxPrice*100) * w.price
	total += math.Max(0, 100-p.DistanceKm/maxDistance*100) * w.distance
	total += p.Rating / 5.0 * 100 * w.rating

	filterScore := 100.0
	if prefs.StudentDiscount && !p.StudentDiscount {
		filterScore -= 30
	}
	if prefs.Halal && !p.Halal {
		filterScore -= 40
	}
	if prefs.Vegan && !p.Vegan {
		filterScore -= 40
	}
	if prefs.Ethical && !p.Ethical {
		filterScore -= 25
	}
	total += math.Max(0, filterScore) * w.filters

	return math.Round(total*100) / 100
}

func compare(products []ScoredProduct) *Comparison {
	bestPrice, closest, highestRated := products[0], products[0], products[0]
	for _, p := range products[1:] {
		if p.DiscountedPrice.Cents() < bestPrice.DiscountedPrice.Cents() {
			bestPrice = p
		}
		if p.DistanceKm < closest.DistanceKm {
			closest = p
		}
		if p.Rating > highestRated.Rating {
			highestRated = p
		}
	}
	return &Comparison{
		TotalOptions: len(products),
		BestPrice:    ComparisonPick{Name: bestPrice.Name, Vendor: bestPrice.Vendor},
		Closest:      ComparisonPick{Name: closest.Name, Vendor: closest.Vendor},
		HighestRated: ComparisonPick{Name: highestRated.Name, Vendor: highestRated.Vendor},
	}
}

func reasoning(p ScoredProduct, prefs Preferences) string {
	var reasons []string
	switch prefs.OptimizeFor {
	case OptimizeCheapest:
		reasons = append(reasons, fmt.Sprintf("Lowest price option at %s", p.DiscountedPrice))
	case OptimizeClosest:
		reasons = append(reasons, fmt.Sprintf("Closest option at %.1f km away", p.DistanceKm))
	case OptimizeBestRated:
		reasons = append(reasons, fmt.Sprintf("Highest rated option (%.1f/5.0 stars)", p.Rating))
	}
	if p.Savings.IsPositive() {
		reasons = append(reasons, fmt.Sprintf("Saved %s with student discount", p.Savings))
	}
	if prefs.Ethical && p.Ethical {
		reasons = append(reasons, "Ethical brand as requested")
	}
	if prefs.Vegan && p.Vegan {
		reasons = append(reasons, "Vegan-friendly option")
	}
	if prefs.Halal && p.Halal {
		reasons = append(reasons, "Halal-certified")
	}
	if p.Rating >= 4.5 {
		reasons = append(reasons, fmt.Sprintf("Excellent customer reviews (%.1f/5.0)", p.Rating))
	}
	if len(reasons) == 0 {
		return "Best match for your preferences"
	}

	out := reasons[0]
	for _, r := range reasons[1:] {
		out += "; " + r
	}
	return out
}

func estimateDelivery(distanceKm float64) string {
	if distanceKm < 5 {
		return fmt.Sprintf("%d minutes", int(distanceKm*15))
	}
	return "1-2 hours"
}
