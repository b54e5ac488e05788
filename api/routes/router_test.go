package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/festivault/festivault-backend/internal/advisor"
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

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{Env: "dev", Port: "8000"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "festivault",
			ExpirationMinutes: 60,
		},
		Session:     config.SessionConfig{DefaultSessionID: "default"},
		Idempotency: config.IdempotencyConfig{TTL: time.Hour},
		CORS:        config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	engine := advisor.NewEngine()
	budgetService, err := budgetsvc.NewService(engine)
	if err != nil {
		t.Fatalf("budget service: %v", err)
	}
	walletService, err := walletsvc.NewService()
	if err != nil {
		t.Fatalf("wallet service: %v", err)
	}
	paymentService, err := paymentsvc.NewService(engine)
	if err != nil {
		t.Fatalf("payments service: %v", err)
	}
	shopperService, err := shoppersvc.NewService()
	if err != nil {
		t.Fatalf("shopper service: %v", err)
	}

	promRegistry := prometheus.NewRegistry()
	return NewRouter(cfg, logg, session.NewRegistry(nil), Services{
		Budget:   budgetService,
		Wallet:   walletService,
		Payments: paymentService,
		Shopper:  shopperService,
		Receipts: receiptsvc.NewVerifier(),
	}, Metrics{
		Registry: promRegistry,
		HTTP:     metrics.NewHTTPMetrics(promRegistry),
		Payments: metrics.NewPaymentMetrics(promRegistry),
	}, memstore.New())
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterBudgetFlow(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/create-budget", strings.NewReader(`{"total_budget": 800}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", "router-test")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create budget: %d %s", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("X-Session-Id", "router-test")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("dashboard: %d %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		TotalBudget float64 `json:"total_budget"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if payload.TotalBudget != 800 {
		t.Fatalf("expected total 800 got %v", payload.TotalBudget)
	}
}

func TestRouterRootPathAliases(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/create-budget", strings.NewReader(`{"total_budget": 1200}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", "alias-test")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create budget: %d %s", resp.Code, resp.Body.String())
	}

	// The aliased and prefixed dashboards serve the same session.
	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("X-Session-Id", "alias-test")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("dashboard alias: %d %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		TotalBudget float64 `json:"total_budget"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if payload.TotalBudget != 1200 {
		t.Fatalf("expected total 1200 got %v", payload.TotalBudget)
	}
}

func TestRouterSessionsAreIsolated(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/create-budget", strings.NewReader(`{"total_budget": 500}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", "trip-a")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create budget: %d", resp.Code)
	}

	// A different session has no budget yet.
	req = httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("X-Session-Id", "trip-b")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for budgetless session got %d", resp.Code)
	}
}

func TestRouterIdempotentAddFunds(t *testing.T) {
	router := newTestRouter(t)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/wallet/add-funds",
			strings.NewReader(`{"amount": 50, "payment_method": "interac_debit"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Session-Id", "idem-test")
		req.Header.Set("Idempotency-Key", "add-funds-1")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	first := send()
	if first.Code != http.StatusOK {
		t.Fatalf("first call: %d %s", first.Code, first.Body.String())
	}
	second := send()
	if second.Code != http.StatusOK {
		t.Fatalf("replay: %d", second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replay must return the stored response")
	}

	// The balance reflects a single credit.
	req := httptest.NewRequest(http.MethodGet, "/api/wallet/balance", nil)
	req.Header.Set("X-Session-Id", "idem-test")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	var payload struct {
		Balance float64 `json:"balance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode balance: %v", err)
	}
	if payload.Balance != 50 {
		t.Fatalf("expected balance 50 got %v", payload.Balance)
	}
}
