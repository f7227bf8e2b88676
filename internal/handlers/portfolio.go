package handlers

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/finblog/backend/internal/errors"
	"github.com/finblog/backend/internal/logger"
	"github.com/finblog/backend/internal/models"
	"github.com/finblog/backend/internal/services"
)

// PortfolioIDHeader selects the portfolio a request operates on.
const PortfolioIDHeader = "X-Portfolio-ID"

type PortfolioHandler struct {
	service *services.PortfolioService
	logger  *zap.Logger
}

func NewPortfolioHandler(service *services.PortfolioService, log *zap.Logger) *PortfolioHandler {
	return &PortfolioHandler{service: service, logger: logger.OrNop(log)}
}

// PortfolioResponse is a portfolio with the derived figures of each holding.
type PortfolioResponse struct {
	Holdings          []models.HoldingValuation `json:"holdings"`
	LastSyncTimestamp string                    `json:"lastSyncTimestamp"`
	Settings          models.Settings           `json:"settings"`
	Metrics           models.PortfolioMetrics   `json:"metrics"`
}

// PricesRequest maps symbols to their latest price.
type PricesRequest struct {
	Prices map[string]decimal.Decimal `json:"prices"`
}

// PricesResponse reports how many holdings received a price.
type PricesResponse struct {
	Updated int `json:"updated"`
}

func portfolioID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(PortfolioIDHeader)); id != "" {
		return id
	}
	return services.DefaultPortfolioID
}

// HandlePortfolio handles GET|DELETE /api/portfolio
// @Summary Get or clear the portfolio
// @Description GET returns every holding with its valuation plus aggregate metrics. DELETE resets the portfolio to its empty default.
// @Tags portfolio
// @Produce json
// @Param X-Portfolio-ID header string false "Portfolio id" default(default)
// @Success 200 {object} PortfolioResponse
// @Success 204 "Cleared"
// @Failure 500 {object} ErrorResponse
// @Router /portfolio [get]
// @Router /portfolio [delete]
func (h *PortfolioHandler) HandlePortfolio(w http.ResponseWriter, r *http.Request) {
	id := portfolioID(r)
	switch r.Method {
	case http.MethodGet:
		p, err := h.service.GetPortfolio(r.Context(), id)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		resp := PortfolioResponse{
			Holdings: make([]models.HoldingValuation, len(p.Holdings)),
			Settings: p.Settings,
			Metrics:  models.ComputeMetrics(p.Holdings),
		}
		for i, hr := range p.Holdings {
			resp.Holdings[i] = models.Valuate(hr)
		}
		if !p.LastSyncTimestamp.IsZero() {
			resp.LastSyncTimestamp = p.LastSyncTimestamp.Format(time.RFC3339)
		}
		writeJSON(w, http.StatusOK, resp)
	case http.MethodDelete:
		if err := h.service.Clear(r.Context(), id); err != nil {
			writeError(w, h.logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r)
	}
}

// HandleMetrics handles GET /api/portfolio/metrics
// @Summary Portfolio metrics
// @Tags portfolio
// @Produce json
// @Param X-Portfolio-ID header string false "Portfolio id" default(default)
// @Success 200 {object} models.PortfolioMetrics
// @Failure 500 {object} ErrorResponse
// @Router /portfolio/metrics [get]
func (h *PortfolioHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.Metrics(r.Context(), portfolioID(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// HandleSettings handles PUT /api/portfolio/settings
// @Summary Replace portfolio settings
// @Tags portfolio
// @Accept json
// @Produce json
// @Param X-Portfolio-ID header string false "Portfolio id" default(default)
// @Param settings body models.Settings true "Settings"
// @Success 200 {object} models.Settings
// @Failure 400 {object} ErrorResponse
// @Router /portfolio/settings [put]
func (h *PortfolioHandler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	var s models.Settings
	if err := decodeJSON(r, &s); err != nil {
		writeError(w, h.logger, err)
		return
	}
	out, err := h.service.UpdateSettings(r.Context(), portfolioID(r), s)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleAddHolding handles POST /api/portfolio/holdings
// @Summary Add a holding
// @Tags holdings
// @Accept json
// @Produce json
// @Param X-Portfolio-ID header string false "Portfolio id" default(default)
// @Param holding body models.HoldingInput true "Holding"
// @Success 201 {object} models.HoldingRecord
// @Failure 400 {object} ErrorResponse
// @Router /portfolio/holdings [post]
func (h *PortfolioHandler) HandleAddHolding(w http.ResponseWriter, r *http.Request) {
	var in models.HoldingInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.logger, err)
		return
	}
	created, err := h.service.AddHolding(r.Context(), portfolioID(r), in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleHolding handles PATCH|DELETE /api/portfolio/holdings/{id}
// @Summary Update or delete a holding
// @Description PATCH merges the given fields. DELETE of an unknown id succeeds.
// @Tags holdings
// @Accept json
// @Produce json
// @Param X-Portfolio-ID header string false "Portfolio id" default(default)
// @Param id path string true "Holding ID"
// @Param patch body models.HoldingPatch false "Fields to change"
// @Success 200 {object} models.HoldingRecord
// @Success 204 "Deleted"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /portfolio/holdings/{id} [patch]
// @Router /portfolio/holdings/{id} [delete]
func (h *PortfolioHandler) HandleHolding(w http.ResponseWriter, r *http.Request) {
	holdingID := mux.Vars(r)["id"]
	switch r.Method {
	case http.MethodPatch:
		var patch models.HoldingPatch
		if err := decodeJSON(r, &patch); err != nil {
			writeError(w, h.logger, err)
			return
		}
		updated, err := h.service.UpdateHolding(r.Context(), portfolioID(r), holdingID, patch)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := h.service.DeleteHolding(r.Context(), portfolioID(r), holdingID); err != nil {
			writeError(w, h.logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r)
	}
}

// HandleApplyPrices handles POST /api/portfolio/prices
// @Summary Apply a symbol to price map
// @Description Holdings whose symbol is absent from the map keep their previous price.
// @Tags prices
// @Accept json
// @Produce json
// @Param X-Portfolio-ID header string false "Portfolio id" default(default)
// @Param prices body PricesRequest true "Prices by symbol"
// @Success 200 {object} PricesResponse
// @Failure 400 {object} ErrorResponse
// @Router /portfolio/prices [post]
func (h *PortfolioHandler) HandleApplyPrices(w http.ResponseWriter, r *http.Request) {
	var req PricesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	n, err := h.service.ApplyPrices(r.Context(), portfolioID(r), req.Prices)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, PricesResponse{Updated: n})
}

// HandleRefresh handles POST /api/portfolio/refresh
// @Summary Fetch market prices for every held symbol
// @Description Symbols the market data provider cannot price keep their previous price and are listed as failed.
// @Tags prices
// @Produce json
// @Param X-Portfolio-ID header string false "Portfolio id" default(default)
// @Success 200 {object} services.RefreshSummary
// @Failure 500 {object} ErrorResponse
// @Router /portfolio/refresh [post]
func (h *PortfolioHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.RefreshPrices(r.Context(), portfolioID(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleExport handles GET /api/portfolio/export
// @Summary Export the portfolio
// @Tags snapshot
// @Produce json
// @Produce text/csv
// @Param X-Portfolio-ID header string false "Portfolio id" default(default)
// @Param format query string false "Export format" Enums(json, csv) default(json)
// @Success 200 {object} models.Portfolio
// @Failure 400 {object} ErrorResponse
// @Router /portfolio/export [get]
func (h *PortfolioHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	id := portfolioID(r)
	switch format := strings.ToLower(r.URL.Query().Get("format")); format {
	case "", "json":
		data, err := h.service.ExportSnapshot(r.Context(), id)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="portfolio.json"`)
		w.Write(data)
	case "csv":
		var buf bytes.Buffer
		if err := h.service.ExportCSV(r.Context(), id, &buf); err != nil {
			writeError(w, h.logger, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="portfolio.csv"`)
		w.Write(buf.Bytes())
	default:
		writeError(w, h.logger, errors.Invalid("format", "unsupported export format %q", format))
	}
}

// HandleImport handles POST /api/portfolio/import
// @Summary Replace the portfolio with a JSON snapshot
// @Description The snapshot is validated first; on failure the stored portfolio is unchanged.
// @Tags snapshot
// @Accept json
// @Produce json
// @Param X-Portfolio-ID header string false "Portfolio id" default(default)
// @Param snapshot body models.Portfolio true "Snapshot"
// @Success 200 {object} models.Portfolio
// @Failure 400 {object} ErrorResponse
// @Router /portfolio/import [post]
func (h *PortfolioHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, h.logger, errors.ImportFormat("unreadable body", err))
		return
	}
	p, err := h.service.ImportSnapshot(r.Context(), portfolioID(r), data)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
