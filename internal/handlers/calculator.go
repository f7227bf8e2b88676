package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/finblog/backend/internal/calculator"
	"github.com/finblog/backend/internal/errors"
	"github.com/finblog/backend/internal/logger"
)

type CalculatorHandler struct {
	logger *zap.Logger
}

func NewCalculatorHandler(log *zap.Logger) *CalculatorHandler {
	return &CalculatorHandler{logger: logger.OrNop(log)}
}

// HandleCalculate handles GET|POST /api/calculators/{kind}
// @Summary Run a financial calculator
// @Description SIP, lumpsum, EMI or ROI projection. GET reads the query string, POST a JSON body.
// @Tags calculators
// @Accept json
// @Produce json
// @Param kind path string true "Calculator" Enums(sip, lumpsum, emi, roi)
// @Param amount query number false "Monthly amount, principal or loan amount"
// @Param rate query number false "Annual rate in percent"
// @Param years query number false "Duration in years"
// @Param input body calculator.Input false "Calculator input"
// @Success 200 {object} calculator.ROIResult
// @Failure 400 {object} ErrorResponse
// @Router /calculators/{kind} [get]
// @Router /calculators/{kind} [post]
func (h *CalculatorHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	kind, in, err := h.parse(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	result, err := calculator.Calculate(kind, in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleSchedule handles GET /api/calculators/{kind}/schedule
// @Summary Year by year projection
// @Description Growth schedule for sip, lumpsum and roi; amortization schedule for emi.
// @Tags calculators
// @Produce json
// @Param kind path string true "Calculator" Enums(sip, lumpsum, emi, roi)
// @Param amount query number true "Monthly amount, principal or loan amount"
// @Param rate query number true "Annual rate in percent"
// @Param years query number true "Duration in years"
// @Success 200 {array} calculator.GrowthPoint
// @Failure 400 {object} ErrorResponse
// @Router /calculators/{kind}/schedule [get]
func (h *CalculatorHandler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	kind, in, err := h.parse(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	points, err := calculator.Schedule(kind, in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (h *CalculatorHandler) parse(r *http.Request) (calculator.Kind, calculator.Input, error) {
	kind, err := calculator.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		return "", calculator.Input{}, err
	}

	var in calculator.Input
	if r.Method == http.MethodPost {
		if err := decodeJSON(r, &in); err != nil {
			return "", calculator.Input{}, err
		}
		return kind, in, nil
	}

	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"amount", &in.Amount},
		{"rate", &in.AnnualRatePercent},
		{"years", &in.Years},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			return "", calculator.Input{}, errors.Invalid(p.name, "%s is required", p.name)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", calculator.Input{}, errors.Invalid(p.name, "%q is not a number", raw)
		}
		*p.dst = v
	}
	return kind, in, nil
}
