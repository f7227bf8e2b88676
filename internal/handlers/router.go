package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/finblog/backend/internal/logger"
)

// HealthCheck reports whether the storage backend is reachable.
type HealthCheck func() error

// RouterConfig collects what NewRouter wires together.
type RouterConfig struct {
	Calculator  *CalculatorHandler
	Portfolio   *PortfolioHandler
	RateLimiter *RateLimiter
	Health      HealthCheck
	Logger      *zap.Logger
}

// NewRouter registers every route. Swagger docs are served when the docs
// package has been linked into the binary.
func NewRouter(cfg RouterConfig) http.Handler {
	log := logger.OrNop(cfg.Logger)
	r := mux.NewRouter()

	r.HandleFunc("/health", healthHandler(cfg.Health)).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	api := r.PathPrefix("/api").Subrouter()
	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter.Limit)
	}

	if cfg.Calculator != nil {
		api.HandleFunc("/calculators/{kind}", cfg.Calculator.HandleCalculate).Methods(http.MethodGet, http.MethodPost)
		api.HandleFunc("/calculators/{kind}/schedule", cfg.Calculator.HandleSchedule).Methods(http.MethodGet)
	}

	if p := cfg.Portfolio; p != nil {
		api.HandleFunc("/portfolio", p.HandlePortfolio).Methods(http.MethodGet, http.MethodDelete)
		api.HandleFunc("/portfolio/metrics", p.HandleMetrics).Methods(http.MethodGet)
		api.HandleFunc("/portfolio/settings", p.HandleSettings).Methods(http.MethodPut)
		api.HandleFunc("/portfolio/holdings", p.HandleAddHolding).Methods(http.MethodPost)
		api.HandleFunc("/portfolio/holdings/{id}", p.HandleHolding).Methods(http.MethodPatch, http.MethodDelete)
		api.HandleFunc("/portfolio/prices", p.HandleApplyPrices).Methods(http.MethodPost)
		api.HandleFunc("/portfolio/refresh", p.HandleRefresh).Methods(http.MethodPost)
		api.HandleFunc("/portfolio/export", p.HandleExport).Methods(http.MethodGet)
		api.HandleFunc("/portfolio/import", p.HandleImport).Methods(http.MethodPost)
	}

	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
	})

	return CORS(RequestLogger(log)(r))
}

// healthHandler answers 503 while the storage backend is unreachable.
func healthHandler(check HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if check != nil {
			if err := check(); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "finblog-backend",
		})
	}
}
