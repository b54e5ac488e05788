// Package shopper exposes the personal shopper endpoints: ranked
// product search, autonomous purchase, and the static category list.
package shopper

import (
	"net/http"

	"github.com/festivault/festivault-backend/api/middleware"
	"github.com/festivault/festivault-backend/api/responses"
	"github.com/festivault/festivault-backend/api/validators"
	"github.com/festivault/festivault-backend/internal/session"
	shoppersvc "github.com/festivault/festivault-backend/internal/shopper"
	"github.com/festivault/festivault-backend/pkg/enums"
	pkgerrors "github.com/festivault/festivault-backend/pkg/errors"
	"github.com/festivault/festivault-backend/pkg/logger"
	"github.com/festivault/festivault-backend/pkg/metrics"
	"github.com/festivault/festivault-backend/pkg/money"
)

type searchRequest struct {
	Category        string  `json:"category" validate:"required"`
	OptimizeFor     string  `json:"optimize_for" validate:"omitempty,oneof=balanced cheapest closest best_rated"`
	StudentDiscount bool    `json:"student_discount"`
	Halal           bool    `json:"halal"`
	Vegan           bool    `json:"vegan"`
	Ethical         bool    `json:"ethical"`
	MaxPrice        float64 `json:"max_price" validate:"gte=0"`
	MaxDistance     float64 `json:"max_distance" validate:"gte=0"`
}

type purchaseRequest struct {
	ProductIndex   int    `json:"product_index" validate:"gte=0"`
	Category       string `json:"category" validate:"required"`
	AutoAddExpense *bool  `json:"auto_add_expense,omitempty"`
	UseWallet      bool   `json:"use_wallet"`
}

func resolveSession(r *http.Request, registry *session.Registry) (*session.Session, error) {
	return registry.Get(middleware.SessionIDFromContext(r.Context()))
}

func Search(svc shoppersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload searchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParseCategory(payload.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parsing category"))
			return
		}

		optimize := shoppersvc.OptimizeFor(payload.OptimizeFor)
		if payload.OptimizeFor == "" {
			optimize = shoppersvc.OptimizeBalanced
		}

		result, err := svc.Search(r.Context(), shoppersvc.Preferences{
			Category:        category,
			OptimizeFor:     optimize,
			StudentDiscount: payload.StudentDiscount,
			Halal:           payload.Halal,
			Vegan:           payload.Vegan,
			Ethical:         payload.Ethical,
			MaxPrice:        money.FromFloat(payload.MaxPrice),
			MaxDistanceKm:   payload.MaxDistance,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logg.Info(logg.WithFields(r.Context(), map[string]any{
			"category": category.String(),
			"results":  len(result.Products),
		}), "shopper.search")
		responses.WriteSuccess(w, result)
	}
}

func Purchase(svc shoppersvc.Service, registry *session.Registry, payMetrics *metrics.PaymentMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload purchaseRequest
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

		autoAdd := true
		if payload.AutoAddExpense != nil {
			autoAdd = *payload.AutoAddExpense
		}

		result, err := svc.Purchase(r.Context(), sess, shoppersvc.PurchaseInput{
			Category:       category,
			ProductIndex:   payload.ProductIndex,
			AutoAddExpense: autoAdd,
			UseWallet:      payload.UseWallet,
		})
		if err != nil {
			if payload.UseWallet {
				payMetrics.IncFailure("ai_purchase")
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.UseWallet {
			payMetrics.IncPayment("ai_purchase", result.FinalPrice)
		}

		logg.Info(logg.WithFields(r.Context(), map[string]any{
			"purchase_id": result.PurchaseID,
			"product":     result.ProductName,
			"price":       result.FinalPrice.String(),
		}), "shopper.purchase")
		responses.WriteSuccess(w, result)
	}
}

func Categories(logg *logger.Logger) http.HandlerFunc {
	type option struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Type        string `json:"type,omitempty"`
	}
	payload := map[string]any{
		"categories": []string{"food", "venue", "decor", "misc"},
		"filters": []option{
			{ID: "student_discount", Name: "Student Discount", Type: "boolean"},
			{ID: "halal", Name: "Halal Certified", Type: "boolean"},
			{ID: "vegan", Name: "Vegan", Type: "boolean"},
			{ID: "ethical", Name: "Ethical Brands", Type: "boolean"},
		},
		"optimize_options": []option{
			{ID: "balanced", Name: "Balanced", Description: "Best overall value"},
			{ID: "cheapest", Name: "Cheapest", Description: "Lowest price"},
			{ID: "closest", Name: "Closest", Description: "Nearest location"},
			{ID: "best_rated", Name: "Best Rated", Description: "Highest customer ratings"},
		},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, payload)
	}
}
