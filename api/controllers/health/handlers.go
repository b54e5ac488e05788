package health

import (
	"net/http"

	"github.com/festivault/festivault-backend/api/responses"
	"github.com/festivault/festivault-backend/pkg/config"
	"github.com/festivault/festivault-backend/pkg/logger"
)

func Live(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"status": "ok",
			"env":    cfg.App.Env,
		})
	}
}

// Ready reports readiness. State lives in process memory, so once the
// process serves traffic it is ready; the check exists so deploys have
// a stable probe target.
func Ready(cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "env", cfg.App.Env), "health.ready")
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
