package server

import (
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/RaxHax/fratak/internal/cache"
	"github.com/RaxHax/fratak/internal/calculations"
	"github.com/RaxHax/fratak/internal/export"
	"github.com/RaxHax/fratak/internal/metrics"
	"github.com/RaxHax/fratak/internal/tracing"
	"github.com/RaxHax/fratak/internal/validators"
)

// HandleSchedule computes an amortization schedule for a posted loan
// configuration. Results are served from the cache when the same
// configuration was computed before.
func (s *Server) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	const kind = "schedule"

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, span := tracing.Tracer.Start(r.Context(), "calculate_schedule")
	defer span.End()

	var lc calculations.LoanConfig
	if err := json.NewDecoder(r.Body).Decode(&lc); err != nil {
		metrics.CalculationErrors.WithLabelValues(kind, "decode").Inc()
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validators.CheckLoanConfig(s.cfg, lc); err != nil {
		metrics.Calculations.WithLabelValues(kind, "validation_error").Inc()
		metrics.CalculationErrors.WithLabelValues(kind, "validation").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	span.SetAttributes(
		attribute.Float64("loan_amount", lc.LoanAmount),
		attribute.Float64("annual_interest_rate", lc.AnnualInterestRate),
		attribute.Int("loan_term_years", lc.LoanTermYears),
		attribute.String("loan_type", string(lc.LoanType)),
		attribute.String("payment_policy", string(lc.Policy())),
	)

	if key, err := cache.ConfigKey(lc); err == nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			metrics.Calculations.WithLabelValues(kind, "cache_hit").Inc()
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(raw))
			return
		}
	}

	result := calculations.CalculateSchedule(lc)
	if result == nil {
		metrics.Calculations.WithLabelValues(kind, "rejected").Inc()
		http.Error(w, "loan amount and term must be positive", http.StatusBadRequest)
		return
	}

	span.SetAttributes(
		attribute.Int("term_months", result.Summary.TermMonths),
		attribute.Float64("total_interest", result.Summary.TotalInterest),
	)
	metrics.Calculations.WithLabelValues(kind, "success").Inc()
	metrics.ScheduleMonths.Observe(float64(result.Summary.TermMonths))

	raw, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if key, keyErr := cache.ConfigKey(lc); keyErr == nil {
		if err := s.cache.Set(ctx, key, string(raw)); err != nil {
			s.logger.Warn("failed to cache schedule result", zap.Error(err))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}

// HandleScheduleCSV computes a schedule and streams it as CSV.
func (s *Server) HandleScheduleCSV(w http.ResponseWriter, r *http.Request) {
	const kind = "schedule_csv"

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var lc calculations.LoanConfig
	if err := json.NewDecoder(r.Body).Decode(&lc); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validators.CheckLoanConfig(s.cfg, lc); err != nil {
		metrics.CalculationErrors.WithLabelValues(kind, "validation").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := calculations.CalculateSchedule(lc)
	if result == nil {
		http.Error(w, "loan amount and term must be positive", http.StatusBadRequest)
		return
	}
	metrics.Calculations.WithLabelValues(kind, "success").Inc()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.csv"`)
	if err := export.WriteScheduleCSV(w, result); err != nil {
		s.logger.Error("failed to write schedule csv", zap.Error(err))
	}
}

// HandleCompare runs the posted configuration as both an indexed and a
// non-indexed annuity.
func (s *Server) HandleCompare(w http.ResponseWriter, r *http.Request) {
	const kind = "compare"

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_, span := tracing.Tracer.Start(r.Context(), "compare_loan_types")
	defer span.End()

	var lc calculations.LoanConfig
	if err := json.NewDecoder(r.Body).Decode(&lc); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if lc.LoanType == "" {
		lc.LoanType = calculations.IndexedAnnuity
	}
	if err := validators.CheckLoanConfig(s.cfg, lc); err != nil {
		metrics.CalculationErrors.WithLabelValues(kind, "validation").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := calculations.CompareLoanTypes(lc)
	if result == nil {
		http.Error(w, "loan amount and term must be positive", http.StatusBadRequest)
		return
	}
	metrics.Calculations.WithLabelValues(kind, "success").Inc()
	span.SetAttributes(attribute.String("cheaper_type", string(result.Comparison.CheaperType)))

	writeJSON(w, result)
}

// HandleInvestment derives investment metrics. The request carries the loan
// configuration; the schedule is generated server-side so the metrics always
// reflect the same engine the schedule endpoint uses.
func (s *Server) HandleInvestment(w http.ResponseWriter, r *http.Request) {
	const kind = "investment"

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_, span := tracing.Tracer.Start(r.Context(), "calculate_investment")
	defer span.End()

	var req struct {
		Loan       calculations.LoanConfig       `json:"loan"`
		Investment calculations.InvestmentConfig `json:"investment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validators.CheckLoanConfig(s.cfg, req.Loan); err != nil {
		metrics.CalculationErrors.WithLabelValues(kind, "validation").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validators.CheckInvestmentConfig(s.cfg, req.Investment); err != nil {
		metrics.CalculationErrors.WithLabelValues(kind, "validation").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	schedule := calculations.CalculateSchedule(req.Loan)
	if schedule == nil {
		http.Error(w, "loan amount and term must be positive", http.StatusBadRequest)
		return
	}
	req.Investment.Schedule = schedule

	result := calculations.CalculateInvestmentMetrics(req.Investment)
	if result == nil {
		http.Error(w, "schedule is required", http.StatusBadRequest)
		return
	}
	metrics.Calculations.WithLabelValues(kind, "success").Inc()
	span.SetAttributes(
		attribute.Float64("equity_at_sale", result.EquityAtSale),
		attribute.Float64("total_roi", result.TotalROI),
	)

	writeJSON(w, result)
}

// HandleNetRent evaluates the rental model on its own.
func (s *Server) HandleNetRent(w http.ResponseWriter, r *http.Request) {
	const kind = "net_rent"

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Rental          calculations.RentalConfig `json:"rental"`
		InflationFactor float64                   `json:"inflation_factor,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validators.CheckRentalConfig(req.Rental); err != nil {
		metrics.CalculationErrors.WithLabelValues(kind, "validation").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	factor := req.InflationFactor
	if factor == 0 {
		factor = 1.0
	}

	metrics.Calculations.WithLabelValues(kind, "success").Inc()
	writeJSON(w, map[string]float64{"net_rent": calculations.NetRent(req.Rental, factor)})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
