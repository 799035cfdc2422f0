package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/wonny/sectorpulse/internal/contracts"
	"github.com/wonny/sectorpulse/internal/sectorsignal"
	"github.com/wonny/sectorpulse/internal/strategyconfig"
	"github.com/wonny/sectorpulse/pkg/logger"
)

// SignalCalculator is the slice of the signal service the handlers need.
type SignalCalculator interface {
	CalculateSectorSignals(ctx context.Context, req sectorsignal.Request) (*contracts.SectorSignalResult, error)
}

// SectorLister lists the sectors the data source knows about.
type SectorLister interface {
	Sectors(ctx context.Context) ([]string, error)
}

// SignalHandler handles signal calculation API endpoints
// ⭐ SSOT: 시그널 API 핸들러는 이 구조체에서만
type SignalHandler struct {
	calculator SignalCalculator
	registry   *strategyconfig.Registry
	sectors    SectorLister
	logger     *logger.Logger
}

// NewSignalHandler creates a new signal handler
func NewSignalHandler(calculator SignalCalculator, registry *strategyconfig.Registry, sectors SectorLister, log *logger.Logger) *SignalHandler {
	return &SignalHandler{
		calculator: calculator,
		registry:   registry,
		sectors:    sectors,
		logger:     log,
	}
}

// CalculateRequest represents a batch calculation request
type CalculateRequest struct {
	Sectors    []string                         `json:"sectors"`
	Strategies []string                         `json:"strategies,omitempty"`
	StartDate  string                           `json:"start_date,omitempty"`
	EndDate    string                           `json:"end_date,omitempty"`
	Overrides  map[string]strategyconfig.Params `json:"overrides,omitempty"`
}

// CalculateResponse bundles the batch result with its summary
type CalculateResponse struct {
	Result  *contracts.SectorSignalResult `json:"result"`
	Summary contracts.SignalSummary       `json:"summary"`
}

// Calculate runs a signal batch
// POST /api/signals
func (h *SignalHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.calculator.CalculateSectorSignals(r.Context(), sectorsignal.Request{
		Sectors:    req.Sectors,
		Strategies: req.Strategies,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Overrides:  req.Overrides,
	})
	if err != nil {
		h.logger.WithError(err).Warn("Signal batch rejected")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, CalculateResponse{
		Result:  result,
		Summary: sectorsignal.Summarize(result),
	})
}

// ConfigResponse describes the active strategy configuration
type ConfigResponse struct {
	Strategies    map[string]strategyconfig.Params `json:"strategies"`
	StrategyOrder []string                         `json:"strategy_order"`
	DefaultRange  contracts.DateRange              `json:"default_range"`
	ConfigHash    string                           `json:"config_hash"`
}

// GetConfig returns the active strategy configuration
// GET /api/config
func (h *SignalHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	hash, err := h.registry.Hash()
	if err != nil {
		h.logger.WithError(err).Error("Failed to hash strategy config")
		respondError(w, http.StatusInternalServerError, "Failed to describe configuration")
		return
	}

	respondJSON(w, http.StatusOK, ConfigResponse{
		Strategies:    h.registry.AllStrategyParams(),
		StrategyOrder: h.registry.Names(),
		DefaultRange:  h.registry.DefaultDateRange(),
		ConfigHash:    hash,
	})
}

// GetSectors returns the known sector names
// GET /api/sectors
func (h *SignalHandler) GetSectors(w http.ResponseWriter, r *http.Request) {
	names, err := h.sectors.Sectors(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list sectors")
		respondError(w, http.StatusBadGateway, "Sector list unavailable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sectors": names,
		"count":   len(names),
	})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
