package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wonny/sectorpulse/internal/contracts"
	"github.com/wonny/sectorpulse/internal/sectorsignal"
	"github.com/wonny/sectorpulse/internal/strategyconfig"
	"github.com/wonny/sectorpulse/pkg/config"
	"github.com/wonny/sectorpulse/pkg/logger"
)

type stubCalculator struct {
	lastReq sectorsignal.Request
	result  *contracts.SectorSignalResult
	err     error
}

func (s *stubCalculator) CalculateSectorSignals(_ context.Context, req sectorsignal.Request) (*contracts.SectorSignalResult, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubLister struct {
	names []string
	err   error
}

func (s stubLister) Sectors(context.Context) ([]string, error) {
	return s.names, s.err
}

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func sampleResult() *contracts.SectorSignalResult {
	return &contracts.SectorSignalResult{
		SectorOrder: []string{"银行"},
		SectorSignals: map[string][]contracts.SectorStrategyResult{
			"银行": {
				{
					SectorName:   "银行",
					StrategyName: strategyconfig.StrategyRSI,
					Signals:      []contracts.SignalPoint{{Date: "20250331", Signal: contracts.SignalBuy}},
					LatestSignal: contracts.SignalPoint{Date: "20250331", Signal: contracts.SignalBuy},
				},
			},
		},
		TotalSectors:   1,
		StrategiesUsed: []string{strategyconfig.StrategyRSI},
	}
}

func newTestHandler(calc *stubCalculator, lister SectorLister) *SignalHandler {
	return NewSignalHandler(calc, strategyconfig.New(), lister, testLogger())
}

func TestCalculate(t *testing.T) {
	calc := &stubCalculator{result: sampleResult()}
	h := newTestHandler(calc, stubLister{})

	body, _ := json.Marshal(CalculateRequest{
		Sectors:    []string{"银行"},
		Strategies: []string{strategyconfig.StrategyRSI},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/signals", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Calculate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp CalculateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Result.TotalSectors != 1 {
		t.Errorf("TotalSectors = %d, want 1", resp.Result.TotalSectors)
	}
	if resp.Summary.BuyCount != 1 {
		t.Errorf("summary BuyCount = %d, want 1", resp.Summary.BuyCount)
	}
	if len(calc.lastReq.Sectors) != 1 || calc.lastReq.Sectors[0] != "银行" {
		t.Errorf("service received sectors %v", calc.lastReq.Sectors)
	}
}

func TestCalculate_InvalidBody(t *testing.T) {
	h := newTestHandler(&stubCalculator{result: sampleResult()}, stubLister{})

	req := httptest.NewRequest(http.MethodPost, "/api/signals", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Calculate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCalculate_ServiceError(t *testing.T) {
	calc := &stubCalculator{err: errors.New("invalid start date")}
	h := newTestHandler(calc, stubLister{})

	req := httptest.NewRequest(http.MethodPost, "/api/signals", strings.NewReader(`{"sectors":["银行"]}`))
	rec := httptest.NewRecorder()

	h.Calculate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid start date") {
		t.Errorf("body %q does not carry the service error", rec.Body.String())
	}
}

func TestGetConfig(t *testing.T) {
	h := newTestHandler(&stubCalculator{}, stubLister{})

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	rec := httptest.NewRecorder()

	h.GetConfig(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp ConfigResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Strategies) != 4 {
		t.Errorf("got %d strategies, want 4", len(resp.Strategies))
	}
	if len(resp.StrategyOrder) != 4 || resp.StrategyOrder[0] != strategyconfig.StrategyMACD {
		t.Errorf("strategy order = %v", resp.StrategyOrder)
	}
	if resp.ConfigHash == "" {
		t.Error("config hash is empty")
	}
}

func TestGetSectors(t *testing.T) {
	h := newTestHandler(&stubCalculator{}, stubLister{names: []string{"航空机场", "银行"}})

	req := httptest.NewRequest(http.MethodGet, "/api/sectors", nil)
	rec := httptest.NewRecorder()

	h.GetSectors(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Sectors []string `json:"sectors"`
		Count   int      `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 2 || len(resp.Sectors) != 2 {
		t.Errorf("got %d sectors, want 2", resp.Count)
	}
}

func TestGetSectors_ListerError(t *testing.T) {
	h := newTestHandler(&stubCalculator{}, stubLister{err: errors.New("upstream down")})

	req := httptest.NewRequest(http.MethodGet, "/api/sectors", nil)
	rec := httptest.NewRecorder()

	h.GetSectors(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}
