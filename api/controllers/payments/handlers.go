// Package payments exposes the money movement endpoints: bulk vendor
// payment, e-transfers, money requests, expense settlement, and the
// combined activity feed.
package payments

import (
	"net/http"

	"github.com/festivault/festivault-backend/api/middleware"
	"github.com/festivault/festivault-backend/api/responses"
	"github.com/festivault/festivault-backend/api/validators"
	paymentsvc "github.com/festivault/festivault-backend/internal/payments"
	"github.com/festivault/festivault-backend/internal/session"
	"github.com/festivault/festivault-backend/pkg/logger"
	"github.com/festivault/festivault-backend/pkg/metrics"
	"github.com/festivault/festivault-backend/pkg/money"
)

type sendTransferRequest struct {
	RecipientEmail   string  `json:"recipient_email" validate:"required,email"`
	Amount           float64 `json:"amount" validate:"required,gt=0"`
	Message          string  `json:"message,omitempty"`
	SecurityQuestion string  `json:"security_question,omitempty"`
	SecurityAnswer   string  `json:"security_answer,omitempty"`
}

type requestMoneyRequest struct {
	RequesterEmail string  `json:"requester_email" validate:"required,email"`
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	Reason         string  `json:"reason,omitempty"`
}

type settleExpenseRequest struct {
	ExpenseID      string `json:"expense_id" validate:"required"`
	RecipientEmail string `json:"recipient_email" validate:"required,email"`
}

func resolveSession(r *http.Request, registry *session.Registry) (*session.Session, error) {
	return registry.Get(middleware.SessionIDFromContext(r.Context()))
}

func BulkPayVendors(svc paymentsvc.Service, registry *session.Registry, payMetrics *metrics.PaymentMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.BulkPayVendors(r.Context(), sess)
		if err != nil {
			payMetrics.IncFailure("bulk_pay")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payMetrics.IncPayment("bulk_pay", result.TotalAmount)

		logg.Info(logg.WithFields(r.Context(), map[string]any{
			"vendors": len(result.Payments),
			"total":   result.TotalAmount.String(),
		}), "payments.bulk_paid")
		responses.WriteSuccess(w, result)
	}
}

func SendTransfer(svc paymentsvc.Service, registry *session.Registry, payMetrics *metrics.PaymentMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload sendTransferRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		transfer, balance, err := svc.SendTransfer(r.Context(), sess, paymentsvc.SendInput{
			Email:            payload.RecipientEmail,
			Amount:           money.FromFloat(payload.Amount),
			Message:          payload.Message,
			SecurityQuestion: payload.SecurityQuestion,
			SecurityAnswer:   payload.SecurityAnswer,
		})
		if err != nil {
			payMetrics.IncFailure("send_transfer")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payMetrics.IncPayment("send_transfer", transfer.Amount)

		logg.Info(logg.WithFields(r.Context(), map[string]any{
			"transfer_id": transfer.ID,
			"amount":      transfer.Amount.String(),
		}), "payments.transfer_sent")
		responses.WriteSuccess(w, map[string]any{
			"status":      "success",
			"transfer":    transfer,
			"new_balance": balance,
		})
	}
}

func RequestMoney(svc paymentsvc.Service, registry *session.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload requestMoneyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		transfer, err := svc.RequestMoney(r.Context(), sess, paymentsvc.RequestInput{
			Email:   payload.RequesterEmail,
			Amount:  money.FromFloat(payload.Amount),
			Message: payload.Reason,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logg.Info(logg.WithField(r.Context(), "transfer_id", transfer.ID), "payments.money_requested")
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"status":  "pending",
			"request": transfer,
		})
	}
}

func SettleExpense(svc paymentsvc.Service, registry *session.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload settleExpenseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		transfer, err := svc.SettleExpense(r.Context(), sess, payload.ExpenseID, payload.RecipientEmail)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logg.Info(logg.WithFields(r.Context(), map[string]any{
			"transfer_id": transfer.ID,
			"expense_id":  transfer.ExpenseID,
		}), "payments.expense_settled")
		responses.WriteSuccess(w, map[string]any{
			"status":     "settled",
			"settlement": transfer,
		})
	}
}

func Transactions(svc paymentsvc.Service, registry *session.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.Transactions(r.Context(), sess, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		requests, err := svc.PendingRequests(r.Context(), sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"transactions":   entries,
			"money_requests": requests,
			"count":          len(entries),
		})
	}
}

func SettlementSuggestions(svc paymentsvc.Service, registry *session.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		suggestions, err := svc.SettlementSuggestions(r.Context(), sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"suggestions": suggestions,
		})
	}
}
