// Package budget implements budget lifecycle operations: creating an
// allocation, logging and removing expenses, and moving unspent funds
// between categories.
package budget

import (
	"context"
	"time"

	"github.com/festivault/festivault-backend/internal/session"
	"github.com/festivault/festivault-backend/pkg/enums"
	pkgerrors "github.com/festivault/festivault-backend/pkg/errors"
	"github.com/festivault/festivault-backend/pkg/model"
	"github.com/festivault/festivault-backend/pkg/money"
)

// Recommender produces advisory output for the dashboard.
type Recommender interface {
	Feedback(b *model.Budget) []string
	Recommendations(b *model.Budget, wallet *model.WalletAccount) []model.Recommendation
}

type AddExpenseInput struct {
	Category   enums.Category
	Amount     money.Money
	VendorName string
	// Verification carries a processed receipt, when the expense came
	// through the verify-receipt flow.
	Verification *model.ReceiptVerification
}

type CategoryView struct {
	Category  enums.Category `json:"category"`
	Allocated money.Money    `json:"allocated"`
	Spent     money.Money    `json:"spent"`
	Balance   money.Money    `json:"balance"`
}

// Dashboard is the aggregate view the UI renders on its home screen.
type Dashboard struct {
	TotalBudget     money.Money            `json:"total_budget"`
	Spent           money.Money            `json:"spent"`
	Remaining       money.Money            `json:"remaining"`
	Categories      []CategoryView         `json:"categories"`
	Expenses        []model.Expense        `json:"expenses"`
	PendingTotal    money.Money            `json:"pending_total"`
	WalletBalance   money.Money            `json:"wallet_balance"`
	Feedback        []string               `json:"feedback"`
	Recommendations []model.Recommendation `json:"recommendations"`
}

type Service interface {
	Create(ctx context.Context, sess *session.Session, total money.Money) (*model.Budget, error)
	AddExpense(ctx context.Context, sess *session.Session, in AddExpenseInput) (*model.Expense, error)
	DeleteExpense(ctx context.Context, sess *session.Session, index int) (*model.Expense, error)
	Reallocate(ctx context.Context, sess *session.Session, from, to enums.Category, amount money.Money) (*model.Budget, error)
	Dashboard(ctx context.Context, sess *session.Session) (*Dashboard, error)
}

type service struct {
	recommender Recommender
	now         func() time.Time
}

func NewService(recommender Recommender) (Service, error) {
	if recommender == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "budget service requires a recommender")
	}
	return &service{recommender: recommender, now: time.Now}, nil
}

// Create replaces any existing budget. When a previous budget carries
// spending history, the new allocation blends that history with the
// default split.
func (s *service) Create(ctx context.Context, sess *session.Session, total money.Money) (*model.Budget, error) {
	if !total.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total budget must be positive")
	}

	var created *model.Budget
	err := sess.Update(func(st *session.State) error {
		st.Budget = &model.Budget{
			TotalBudget: total,
			Categories:  AdaptiveSplit(total, st.Budget),
			CreatedAt:   s.now().UTC(),
		}
		created = st.Budget.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// AddExpense records a vendor expense as pending. Overspending a
// category is allowed and shows up as a negative category balance.
func (s *service) AddExpense(ctx context.Context, sess *session.Session, in AddExpenseInput) (*model.Expense, error) {
	if !in.Category.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown category %q", in.Category)
	}
	if !in.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense amount must be positive")
	}

	var added model.Expense
	err := sess.Update(func(st *session.State) error {
		if st.Budget == nil {
			return pkgerrors.New(pkgerrors.CodeNoBudget, "create a budget before adding expenses")
		}
		added = model.Expense{
			ID:           model.NewExpenseID(),
			Category:     in.Category,
			Amount:       in.Amount,
			VendorName:   in.VendorName,
			Status:       enums.ExpenseStatusPending,
			Verification: in.Verification,
			CreatedAt:    s.now().UTC(),
		}
		st.Budget.Expenses = append(st.Budget.Expenses, added)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// DeleteExpense removes the expense at the given position in the log.
func (s *service) DeleteExpense(ctx context.Context, sess *session.Session, index int) (*model.Expense, error) {
	var removed model.Expense
	err := sess.Update(func(st *session.State) error {
		if st.Budget == nil {
			return pkgerrors.New(pkgerrors.CodeNoBudget, "create a budget before deleting expenses")
		}
		if index < 0 || index >= len(st.Budget.Expenses) {
			return pkgerrors.Newf(pkgerrors.CodeNotFound, "no expense at index %d", index)
		}
		removed = st.Budget.Expenses[index]
		st.Budget.Expenses = append(st.Budget.Expenses[:index], st.Budget.Expenses[index+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// Reallocate moves unspent allocation between categories. The source
// can only give what it has left after spending.
func (s *service) Reallocate(ctx context.Context, sess *session.Session, from, to enums.Category, amount money.Money) (*model.Budget, error) {
	if !from.IsValid() || !to.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
	}
	if from == to {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "source and destination categories must differ")
	}
	if !amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reallocation amount must be positive")
	}

	var updated *model.Budget
	err := sess.Update(func(st *session.State) error {
		if st.Budget == nil {
			return pkgerrors.New(pkgerrors.CodeNoBudget, "create a budget before reallocating funds")
		}
		available := st.Budget.CategoryBalance(from)
		if amount.Cents() > available.Cents() {
			return pkgerrors.Newf(pkgerrors.CodeInsufficientCategoryFunds,
				"cannot move %s from %s: only %s unspent", amount, from, available)
		}
		st.Budget.Categories[from] = st.Budget.Categories[from].Sub(amount)
		st.Budget.Categories[to] = st.Budget.Categories[to].Add(amount)
		updated = st.Budget.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Dashboard(ctx context.Context, sess *session.Session) (*Dashboard, error) {
	var dash *Dashboard
	err := sess.View(func(st *session.State) error {
		if st.Budget == nil {
			return pkgerrors.New(pkgerrors.CodeNoBudget, "no budget created yet")
		}
		b := st.Budget
		cats := make([]CategoryView, 0, len(enums.Categories))
		for _, cat := range enums.Categories {
			cats = append(cats, CategoryView{
				Category:  cat,
				Allocated: b.Categories[cat],
				Spent:     b.CategorySpend(cat),
				Balance:   b.CategoryBalance(cat),
			})
		}
		expenses := make([]model.Expense, len(b.Expenses))
		copy(expenses, b.Expenses)

		dash = &Dashboard{
			TotalBudget:     b.TotalBudget,
			Spent:           b.Spent(),
			Remaining:       b.Remaining(),
			Categories:      cats,
			Expenses:        expenses,
			PendingTotal:    b.PendingTotal(),
			WalletBalance:   st.Wallet.Balance,
			Feedback:        s.recommender.Feedback(b),
			Recommendations: s.recommender.Recommendations(b, &st.Wallet),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dash, nil
}
