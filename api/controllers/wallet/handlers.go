// Package wallet exposes the shared wallet endpoints: balance, funding,
// the transaction log, and aggregate stats.
package wallet

import (
	"fmt"
	"net/http"

	"github.com/festivault/festivault-backend/api/middleware"
	"github.com/festivault/festivault-backend/api/responses"
	"github.com/festivault/festivault-backend/api/validators"
	"github.com/festivault/festivault-backend/internal/session"
	walletsvc "github.com/festivault/festivault-backend/internal/wallet"
	"github.com/festivault/festivault-backend/pkg/enums"
	pkgerrors "github.com/festivault/festivault-backend/pkg/errors"
	"github.com/festivault/festivault-backend/pkg/logger"
	"github.com/festivault/festivault-backend/pkg/metrics"
	"github.com/festivault/festivault-backend/pkg/money"
)

type addFundsRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required"`
}

func resolveSession(r *http.Request, registry *session.Registry) (*session.Session, error) {
	return registry.Get(middleware.SessionIDFromContext(r.Context()))
}

func Balance(svc walletsvc.Service, registry *session.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		balance, err := svc.Balance(r.Context(), sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"balance":   balance,
			"formatted": balance.String(),
		})
	}
}

func AddFunds(svc walletsvc.Service, registry *session.Registry, payMetrics *metrics.PaymentMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addFundsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parsing payment method"))
			return
		}

		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		amount := money.FromFloat(payload.Amount)
		tx, balance, err := svc.AddFunds(r.Context(), sess, amount, method)
		if err != nil {
			payMetrics.IncFailure("add_funds")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payMetrics.IncPayment("add_funds", amount)

		logg.Info(logg.WithFields(r.Context(), map[string]any{
			"transaction_id": tx.ID,
			"amount":         amount.String(),
			"method":         method.String(),
		}), "wallet.funds_added")
		responses.WriteSuccess(w, map[string]any{
			"status":      "success",
			"transaction": tx,
			"new_balance": balance,
			"message":     fmt.Sprintf("Successfully added %s to wallet", amount),
		})
	}
}

func Transactions(svc walletsvc.Service, registry *session.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// No limit means the full transaction log.
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		transactions, err := svc.Transactions(r.Context(), sess, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"transactions": transactions,
			"count":        len(transactions),
		})
	}
}

func Stats(svc walletsvc.Service, registry *session.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := resolveSession(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context(), sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}
