// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine orchestration,
// output serialization. The API NEVER performs billing logic.
package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bill-optimizer/core/appliance"
	"bill-optimizer/core/estimator"
	"bill-optimizer/core/tariff"
	"bill-optimizer/core/types"
	"bill-optimizer/db"
	"bill-optimizer/internal/errors"
	"bill-optimizer/internal/logging"
	"bill-optimizer/internal/metrics"
)

// Server is the API server
type Server struct {
	engine  *estimator.Estimator
	table   *tariff.Table
	mux     *http.ServeMux
	version string
	history db.HistoryStore
	log     *zap.Logger
}

// NewServer creates a new API server without a history store
func NewServer(version string, engine *estimator.Estimator, table *tariff.Table) *Server {
	return NewServerWithHistory(version, engine, table, nil)
}

// NewServerWithHistory creates a new API server that records estimations
func NewServerWithHistory(version string, engine *estimator.Estimator, table *tariff.Table, history db.HistoryStore) *Server {
	s := &Server{
		engine:  engine,
		table:   table,
		mux:     http.NewServeMux(),
		version: version,
		history: history,
		log:     logging.Named("api"),
	}

	s.registerRoutes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /estimate", s.instrument("estimate", s.handleEstimate))
	s.mux.HandleFunc("POST /units", s.instrument("units", s.handleUnits))
	s.mux.HandleFunc("GET /tariffs", s.instrument("tariffs", s.handleTariffs))

	// Supporting endpoints
	s.mux.HandleFunc("GET /model-info", s.instrument("model-info", s.handleModelInfo))
	s.mux.HandleFunc("GET /history", s.instrument("history", s.handleHistory))
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// instrument wraps a handler with duration metrics
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// handleEstimate handles POST /estimate
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	if err := validateEstimateRequest(&req); err != nil {
		s.writeValidationError(w, err)
		return
	}

	result := s.engine.Estimate(r.Context(), req.RawUserInput)

	requestID := uuid.NewString()
	if s.history != nil {
		if _, err := s.history.SaveEstimation(r.Context(), req.RawUserInput, result); err != nil {
			// History is best-effort; the estimate still goes out.
			s.log.Warn("failed to persist estimation", zap.Error(err))
		}
	}

	s.writeJSON(w, EstimateResponse{
		EstimationResult: result,
		RequestID:        requestID,
		InputSummary: InputSummary{
			HouseholdSize:       req.HouseholdSize,
			TotalAppliances:     req.NumAppliances,
			ACUnits:             req.ACUnits,
			PreviousConsumption: fmt.Sprintf("%g units/month", req.PreviousUnits),
			ConsumerCategory:    req.Category().String(),
			UsageHours:          fmt.Sprintf("%g hours/day", req.UsageHours),
		},
		DurationMs: time.Since(start).Milliseconds(),
	}, http.StatusOK)
}

// handleUnits handles POST /units
func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	var req UnitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	if err := validateUnitsRequest(&req); err != nil {
		s.writeValidationError(w, err)
		return
	}

	units := appliance.UnitsFromAppliances(req.Appliances)
	cat := types.ParseCategory(req.ConsumerType)
	bill, lines := s.table.Breakdown(units, cat)

	s.writeJSON(w, UnitsResponse{
		TotalUnits:           units,
		DailyUnits:           round2(units / 30),
		EstimatedMonthlyBill: bill,
		Breakdown:            lines,
		ApplianceCount:       len(req.Appliances),
	}, http.StatusOK)
}

// handleTariffs handles GET /tariffs
func (s *Server) handleTariffs(w http.ResponseWriter, r *http.Request) {
	payload := make(map[string]TariffCategoryInfo)
	for _, cat := range s.table.Categories() {
		slabs := s.table.RateSlabs(cat)
		notes := tariff.SavingsNotes[cat]

		infos := make([]TariffSlabInfo, len(slabs))
		for i, slab := range slabs {
			info := TariffSlabInfo{
				Range: slab.Label,
				Rate:  slab.Rate.InexactFloat64(),
			}
			if i < len(notes) {
				info.SavingsTip = notes[i]
			}
			infos[i] = info
		}

		payload[cat.String()] = TariffCategoryInfo{
			Description: fmt.Sprintf("%s Consumer", cat),
			Slabs:       infos,
		}
	}

	s.writeJSON(w, map[string]interface{}{
		"tariff_slabs": payload,
		"source":       "NEPRA Official Tariffs",
		"note":         "Rates are per unit in Pakistani Rupees. Additional taxes and duties may apply.",
	}, http.StatusOK)
}

// handleModelInfo handles GET /model-info
func (s *Server) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	info := s.engine.ModelInfo()
	if info == nil {
		s.writeJSON(w, map[string]string{
			"model_name": "Deterministic Calculator",
			"note":       "No model artifact loaded; estimates use the deterministic path",
		}, http.StatusOK)
		return
	}
	s.writeJSON(w, info, http.StatusOK)
}

// handleHistory handles GET /history
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeError(w, "HISTORY_DISABLED", "estimation history is not enabled", http.StatusServiceUnavailable)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 200 {
			s.writeError(w, "VALIDATION_ERROR", "limit must be an integer in [1, 200]", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := s.history.RecentEstimations(r.Context(), limit)
	if err != nil {
		s.log.Error("history query failed", zap.Error(err))
		s.writeError(w, "STORAGE_ERROR", "failed to read history", http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, map[string]interface{}{
		"estimations": records,
		"count":       len(records),
	}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "bill-optimizer",
		"api_version": "v1",
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}, status)
}

// writeValidationError surfaces a typed validation error with its details
func (s *Server) writeValidationError(w http.ResponseWriter, err error) {
	payload := map[string]interface{}{
		"code":    string(errors.TypeValidation),
		"message": "invalid input values",
	}
	if e, ok := err.(*errors.Error); ok {
		payload["message"] = e.Message
		if details, present := e.Context["details"]; present {
			payload["details"] = details
		}
	}
	s.writeJSON(w, map[string]interface{}{"error": payload}, http.StatusBadRequest)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
