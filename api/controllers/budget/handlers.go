// Package budget exposes the budget lifecycle endpoints: creating an
// allocation, logging and deleting expenses, moving unspent funds
// between categories, and the dashboard aggregate.
package budget

import (
	"fmt"
	"net/http"

	"github.com/festivault/festivault-backend/api/middleware"
	"github.com/festivault/festivault-backend/api/responses"
	"github.com/festivault/festivault-backend/api/validators"
	budgetsvc "github.com/festivault/festivault-backend/internal/budget"
	"github.com/festivault/festivault-backend/internal/session"
	"github.com/festivault/festivault-backend/pkg/enums"
	pkgerrors "github.com/festivault/festivault-backend/pkg/errors"
	"github.com/festivault/festivault-backend/pkg/logger"
	"github.com/festivault/festivault-backend/pkg/model"
	"github.com/festivault/festivault-backend/pkg/money"
)

type createBudgetRequest struct {
	TotalBudget float64 `json:"total_budget" validate:"required,gt=0"`
}

type addExpenseRequest struct {
	Amount       float64            `json:"amount" validate:"required,gt=0"`
	Category     string             `json:"category" validate:"required"`
	VendorName   string             `json:"vendor_name,omitempty"`
	Verification *verificationBlock `json:"verification,omitempty"`
}

// verificationBlock is the receipt check the verify-receipt endpoint
// returned, echoed back when the caller logs the expense.
type verificationBlock struct {
	Status       string   `json:"status" validate:"required,oneof=verified warning suspicious"`
	Confidence   int      `json:"confidence" validate:"gte=0,lte=100"`
	QualityScore int      `json:"quality_score,omitempty"`
	Flags        []string `json:"flags,omitempty"`
}

type deleteExpenseRequest struct {
	ExpenseIndex int `json:"expense_index" validate:"gte=0"`
}

type reallocateRequest struct {
	FromCategory string  `json:"from_category" validate:"required"`
	ToCategory   string  `json:"to_category" validate:"required"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
}

func resolveSession(r *http.Request, registry *session.Registry) (*session.Session, error) {
	return registry.Get(middleware.SessionIDFromContext(r.Context()))
}

func Create(svc budgetsvc.Service, registry *session.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createBudgetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		budget, err := svc.Create(r.Context(), sess, money.FromFloat(payload.TotalBudget))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logg.Info(logg.WithField(r.Context(), "total_budget", budget.TotalBudget.String()), "budget.created")
		responses.WriteSuccessStatus(w, http.StatusCreated, budget)
	}
}

func AddExpense(svc budgetsvc.Service, registry *session.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addExpenseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParseCategory(payload.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parsing category"))
			return
		}

		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := budgetsvc.AddExpenseInput{
			Category:   category,
			Amount:     money.FromFloat(payload.Amount),
			VendorName: payload.VendorName,
		}
		if payload.Verification != nil {
			input.Verification = &model.ReceiptVerification{
				Status:       enums.VerificationStatus(payload.Verification.Status),
				Confidence:   payload.Verification.Confidence,
				QualityScore: payload.Verification.QualityScore,
				Flags:        payload.Verification.Flags,
			}
		}

		expense, err := svc.AddExpense(r.Context(), sess, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logg.Info(logg.WithFields(r.Context(), map[string]any{
			"expense_id": expense.ID,
			"category":   expense.Category.String(),
			"amount":     expense.Amount.String(),
		}), "budget.expense_added")
		responses.WriteSuccessStatus(w, http.StatusCreated, expense)
	}
}

func DeleteExpense(svc budgetsvc.Service, registry *session.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload deleteExpenseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		expense, err := svc.DeleteExpense(r.Context(), sess, payload.ExpenseIndex)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logg.Info(logg.WithField(r.Context(), "expense_id", expense.ID), "budget.expense_deleted")
		responses.WriteSuccess(w, map[string]any{
			"message": fmt.Sprintf("Deleted expense %s (%s)", expense.ID, expense.VendorName),
			"expense": expense,
		})
	}
}

func Reallocate(svc budgetsvc.Service, registry *session.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload reallocateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		from, err := enums.ParseCategory(payload.FromCategory)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parsing from_category"))
			return
		}
		to, err := enums.ParseCategory(payload.ToCategory)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parsing to_category"))
			return
		}

		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		amount := money.FromFloat(payload.Amount)
		budget, err := svc.Reallocate(r.Context(), sess, from, to, amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logg.Info(logg.WithFields(r.Context(), map[string]any{
			"from":   from.String(),
			"to":     to.String(),
			"amount": amount.String(),
		}), "budget.reallocated")
		responses.WriteSuccess(w, map[string]any{
			"message": fmt.Sprintf("Moved %s from %s to %s", amount, from, to),
			"budget":  budget,
		})
	}
}

func Dashboard(svc budgetsvc.Service, registry *session.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dashboard, err := svc.Dashboard(r.Context(), sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dashboard)
	}
}
