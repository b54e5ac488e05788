package middleware

import (
	"net/http"
	"strings"

	"github.com/festivault/festivault-backend/pkg/auth"
	"github.com/festivault/festivault-backend/pkg/config"
	"github.com/festivault/festivault-backend/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

// Session resolves which ledger session a request operates on. A valid
// bearer token wins, then the X-Session-Id header, then the configured
// default. Anonymous requests are allowed; the token only binds the
// caller to their own session.
func Session(jwtCfg config.JWTConfig, defaultSessionID string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sessionID := defaultSessionID

			if raw := bearerToken(r); raw != "" {
				if claims, err := auth.ParseAccessToken(jwtCfg, raw); err == nil {
					sessionID = claims.SessionID
					ctx = WithUserEmail(ctx, claims.Email)
				} else if logg != nil {
					logg.Warn(logg.WithField(ctx, "reason", err.Error()), "auth.token_rejected")
				}
			} else if header := strings.TrimSpace(r.Header.Get(sessionIDHeader)); header != "" {
				sessionID = header
			}

			ctx = WithSessionID(ctx, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
