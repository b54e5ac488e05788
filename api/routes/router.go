package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authcontrollers "github.com/festivault/festivault-backend/api/controllers/auth"
	budgetcontrollers "github.com/festivault/festivault-backend/api/controllers/budget"
	healthcontrollers "github.com/festivault/festivault-backend/api/controllers/health"
	paymentcontrollers "github.com/festivault/festivault-backend/api/controllers/payments"
	receiptcontrollers "github.com/festivault/festivault-backend/api/controllers/receipts"
	shoppercontrollers "github.com/festivault/festivault-backend/api/controllers/shopper"
	walletcontrollers "github.com/festivault/festivault-backend/api/controllers/wallet"
	"github.com/festivault/festivault-backend/api/middleware"
	budgetsvc "github.com/festivault/festivault-backend/internal/budget"
	paymentsvc "github.com/festivault/festivault-backend/internal/payments"
	receiptsvc "github.com/festivault/festivault-backend/internal/receipts"
	"github.com/festivault/festivault-backend/internal/session"
	shoppersvc "github.com/festivault/festivault-backend/internal/shopper"
	walletsvc "github.com/festivault/festivault-backend/internal/wallet"
	"github.com/festivault/festivault-backend/pkg/config"
	"github.com/festivault/festivault-backend/pkg/logger"
	"github.com/festivault/festivault-backend/pkg/memstore"
	"github.com/festivault/festivault-backend/pkg/metrics"
)

type Services struct {
	Budget   budgetsvc.Service
	Wallet   walletsvc.Service
	Payments paymentsvc.Service
	Shopper  shoppersvc.Service
	Receipts receiptsvc.Verifier
}

type Metrics struct {
	Registry *prometheus.Registry
	HTTP     *metrics.HTTPMetrics
	Payments *metrics.PaymentMetrics
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *session.Registry,
	services Services,
	mtr Metrics,
	idempotencyStore memstore.IdempotencyStore,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Metrics(mtr.HTTP),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", healthcontrollers.Live(cfg))
		r.Get("/ready", healthcontrollers.Ready(cfg, logg))
	})

	if mtr.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(mtr.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(
			middleware.Session(cfg.JWT, cfg.Session.DefaultSessionID, logg),
			middleware.Idempotency(idempotencyStore, cfg.Idempotency.TTL, logg),
		)

		r.Post("/login", authcontrollers.Login(cfg, logg))

		r.Post("/create-budget", budgetcontrollers.Create(services.Budget, registry, logg))
		r.Post("/add-expense", budgetcontrollers.AddExpense(services.Budget, registry, logg))
		r.Post("/delete-expense", budgetcontrollers.DeleteExpense(services.Budget, registry, logg))
		r.Post("/reallocate-funds", budgetcontrollers.Reallocate(services.Budget, registry, logg))
		r.Get("/dashboard", budgetcontrollers.Dashboard(services.Budget, registry, logg))

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/balance", walletcontrollers.Balance(services.Wallet, registry, logg))
			r.Post("/add-funds", walletcontrollers.AddFunds(services.Wallet, registry, mtr.Payments, logg))
			r.Get("/transactions", walletcontrollers.Transactions(services.Wallet, registry, logg))
			r.Get("/stats", walletcontrollers.Stats(services.Wallet, registry, logg))
		})

		r.Post("/bulk-pay-vendors", paymentcontrollers.BulkPayVendors(services.Payments, registry, mtr.Payments, logg))
		r.Post("/send-interac", paymentcontrollers.SendTransfer(services.Payments, registry, mtr.Payments, logg))
		r.Post("/request-money", paymentcontrollers.RequestMoney(services.Payments, registry, logg))
		r.Post("/settle-expense", paymentcontrollers.SettleExpense(services.Payments, registry, logg))
		r.Get("/transactions", paymentcontrollers.Transactions(services.Payments, registry, logg))
		r.Get("/settlement-suggestions", paymentcontrollers.SettlementSuggestions(services.Payments, registry, logg))

		r.Route("/shop", func(r chi.Router) {
			r.Post("/search", shoppercontrollers.Search(services.Shopper, logg))
			r.Post("/purchase", shoppercontrollers.Purchase(services.Shopper, registry, mtr.Payments, logg))
			r.Get("/categories", shoppercontrollers.Categories(logg))
		})

		r.Post("/verify-receipt", receiptcontrollers.Verify(services.Receipts, logg))
	})

	// Older frontend pages call these without the /api prefix.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(cfg.JWT, cfg.Session.DefaultSessionID, logg))
		r.Get("/dashboard", budgetcontrollers.Dashboard(services.Budget, registry, logg))
		r.Post("/create-budget", budgetcontrollers.Create(services.Budget, registry, logg))
	})

	return r
}
