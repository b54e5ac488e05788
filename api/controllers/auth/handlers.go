// Package auth exposes the demo login endpoint. Any email and
// password pair is accepted; the token exists to carry the caller's
// session binding, not to gate access.
package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/festivault/festivault-backend/api/responses"
	"github.com/festivault/festivault-backend/api/validators"
	pkgauth "github.com/festivault/festivault-backend/pkg/auth"
	"github.com/festivault/festivault-backend/pkg/config"
	pkgerrors "github.com/festivault/festivault-backend/pkg/errors"
	"github.com/festivault/festivault-backend/pkg/logger"
)

type loginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	SessionID string `json:"session_id,omitempty"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	SessionID   string `json:"session_id"`
	Email       string `json:"email"`
}

func Login(cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := strings.TrimSpace(payload.SessionID)
		if sessionID == "" {
			sessionID = cfg.Session.DefaultSessionID
		}

		token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
			Email:     payload.Email,
			SessionID: sessionID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token"))
			return
		}

		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "email", payload.Email), "auth.login")
		}

		responses.WriteSuccess(w, loginResponse{
			AccessToken: token,
			TokenType:   "bearer",
			ExpiresIn:   int(cfg.JWT.Expiration().Seconds()),
			SessionID:   sessionID,
			Email:       payload.Email,
		})
	}
}
