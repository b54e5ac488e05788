// Package receipts exposes the receipt verification endpoint.
package receipts

import (
	"net/http"

	"github.com/festivault/festivault-backend/api/responses"
	"github.com/festivault/festivault-backend/api/validators"
	receiptsvc "github.com/festivault/festivault-backend/internal/receipts"
	"github.com/festivault/festivault-backend/pkg/enums"
	pkgerrors "github.com/festivault/festivault-backend/pkg/errors"
	"github.com/festivault/festivault-backend/pkg/logger"
)

type verifyRequest struct {
	Text     string `json:"text" validate:"required"`
	Filename string `json:"filename,omitempty"`
	Category string `json:"category,omitempty"`
}

func Verify(verifier receiptsvc.Verifier, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload verifyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var userCategory enums.Category
		if payload.Category != "" {
			parsed, err := enums.ParseCategory(payload.Category)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parsing category"))
				return
			}
			userCategory = parsed
		}

		result, err := verifier.Process(r.Context(), payload.Text, payload.Filename, userCategory)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logg.Info(logg.WithFields(r.Context(), map[string]any{
			"status": result.Verification.Status.String(),
			"amount": result.Amount.String(),
		}), "receipts.verified")
		responses.WriteSuccess(w, result)
	}
}
