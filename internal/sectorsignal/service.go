package sectorsignal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wonny/sectorpulse/internal/contracts"
	"github.com/wonny/sectorpulse/internal/strategies"
	"github.com/wonny/sectorpulse/internal/strategyconfig"
	"github.com/wonny/sectorpulse/pkg/logger"
)

// DefaultWorkers bounds concurrent sector fetches when the caller does not
// set Service.Workers.
const DefaultWorkers = 4

// Service orchestrates signal calculation across sectors and strategies.
// ⭐ SSOT: 섹터 시그널 배치 계산은 이 패키지에서만
type Service struct {
	registry *strategyconfig.Registry
	provider contracts.PriceProvider
	logger   *logger.Logger

	// Workers is the number of concurrent sector fetches. Zero means
	// DefaultWorkers.
	Workers int
}

// NewService creates a new Service instance.
func NewService(registry *strategyconfig.Registry, provider contracts.PriceProvider, log *logger.Logger) *Service {
	return &Service{
		registry: registry,
		provider: provider,
		logger:   log.WithField("module", "sectorsignal"),
	}
}

// Update is a single sector/strategy outcome, delivered to Request.Progress
// as results arrive. Exactly one of Result and Failure is set.
type Update struct {
	Sector   string
	Strategy string
	Result   *contracts.SectorStrategyResult
	Failure  *contracts.FailedPair
}

// Request describes one batch calculation.
type Request struct {
	// Sectors to screen, in the order results should be reported.
	Sectors []string

	// Strategies to apply. Empty means every registered strategy.
	// Unknown names are dropped without error.
	Strategies []string

	// StartDate and EndDate bound the price history (YYYYMMDD, inclusive).
	// Empty fields fall back to the registry's default range.
	StartDate string
	EndDate   string

	// Overrides replaces individual strategy parameters for this request
	// only. Overridden parameter sets are validated before any fetch.
	Overrides map[string]strategyconfig.Params

	// Progress, when set, receives each outcome as workers produce it.
	// Delivery order is not deterministic.
	Progress func(Update)
}

// sectorOutcome carries one sector's results back from a worker, keyed by
// input position so assembly stays deterministic.
type sectorOutcome struct {
	index    int
	sector   string
	results  []contracts.SectorStrategyResult
	failures []contracts.FailedPair
}

// CalculateSectorSignals runs every requested strategy over every requested
// sector. Per-pair problems (missing data, short history) are absorbed into
// the result's Failures list; an error is returned only when the request
// itself is malformed.
func (s *Service) CalculateSectorSignals(ctx context.Context, req Request) (*contracts.SectorSignalResult, error) {
	dateRange, err := s.resolveRange(req)
	if err != nil {
		return nil, err
	}

	strategyNames := s.effectiveStrategies(req.Strategies)
	params, err := s.resolveParams(strategyNames, req.Overrides)
	if err != nil {
		return nil, err
	}

	sectors := dedupe(req.Sectors)

	result := &contracts.SectorSignalResult{
		StartDate:     dateRange.StartDate,
		EndDate:       dateRange.EndDate,
		SectorSignals: make(map[string][]contracts.SectorStrategyResult),
	}
	if len(sectors) == 0 || len(strategyNames) == 0 {
		return result, nil
	}

	s.logger.WithFields(map[string]interface{}{
		"sectors":    len(sectors),
		"strategies": len(strategyNames),
		"start_date": dateRange.StartDate,
		"end_date":   dateRange.EndDate,
	}).Info("Starting sector signal calculation")

	workers := s.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(sectors) {
		workers = len(sectors)
	}

	sectorCh := make(chan sectorOutcome, len(sectors))
	outcomeCh := make(chan sectorOutcome, len(sectors))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range sectorCh {
				task.results, task.failures = s.computeSector(ctx, task.sector, strategyNames, params, dateRange)
				outcomeCh <- task
			}
		}()
	}

	for i, sector := range sectors {
		sectorCh <- sectorOutcome{index: i, sector: sector}
	}
	close(sectorCh)

	go func() {
		wg.Wait()
		close(outcomeCh)
	}()

	outcomes := make([]sectorOutcome, len(sectors))
	for outcome := range outcomeCh {
		outcomes[outcome.index] = outcome
		if req.Progress != nil {
			for i := range outcome.results {
				req.Progress(Update{
					Sector:   outcome.sector,
					Strategy: outcome.results[i].StrategyName,
					Result:   &outcome.results[i],
				})
			}
			for i := range outcome.failures {
				req.Progress(Update{
					Sector:   outcome.sector,
					Strategy: outcome.failures[i].StrategyName,
					Failure:  &outcome.failures[i],
				})
			}
		}
	}

	used := make(map[string]bool)
	for _, outcome := range outcomes {
		if len(outcome.results) > 0 {
			result.SectorOrder = append(result.SectorOrder, outcome.sector)
			result.SectorSignals[outcome.sector] = outcome.results
			for _, r := range outcome.results {
				used[r.StrategyName] = true
			}
		}
		result.Failures = append(result.Failures, outcome.failures...)
	}
	result.TotalSectors = len(result.SectorOrder)
	for _, name := range strategyNames {
		if used[name] {
			result.StrategiesUsed = append(result.StrategiesUsed, name)
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"sectors_ok": result.TotalSectors,
		"failures":   len(result.Failures),
	}).Info("Sector signal calculation completed")

	return result, nil
}

// computeSector fetches one sector's history and runs every strategy over it.
func (s *Service) computeSector(
	ctx context.Context,
	sector string,
	strategyNames []string,
	params map[string]strategyconfig.Params,
	dateRange contracts.DateRange,
) ([]contracts.SectorStrategyResult, []contracts.FailedPair) {
	history, err := s.provider.FetchPriceHistory(ctx, sector, dateRange.StartDate, dateRange.EndDate)
	if err != nil {
		s.logger.WithError(err).WithField("sector", sector).Warn("Price history unavailable")
		failures := make([]contracts.FailedPair, 0, len(strategyNames))
		for _, name := range strategyNames {
			failures = append(failures, contracts.FailedPair{
				SectorName:   sector,
				StrategyName: name,
				Reason:       err.Error(),
			})
		}
		return nil, failures
	}

	var results []contracts.SectorStrategyResult
	var failures []contracts.FailedPair
	for _, name := range strategyNames {
		strategy, ok := strategies.ForName(name)
		if !ok {
			// effectiveStrategies already filtered to registered names.
			continue
		}

		signals, err := strategy.Compute(history, params[name])
		if err != nil {
			if !errors.Is(err, contracts.ErrInsufficientHistory) && !errors.Is(err, contracts.ErrDataUnavailable) {
				s.logger.WithError(err).WithFields(map[string]interface{}{
					"sector":   sector,
					"strategy": name,
				}).Error("Strategy computation failed")
			}
			failures = append(failures, contracts.FailedPair{
				SectorName:   sector,
				StrategyName: name,
				Reason:       err.Error(),
			})
			continue
		}

		latest := contracts.SignalPoint{Signal: contracts.SignalHold}
		if len(signals) > 0 {
			latest = signals[len(signals)-1]
		}
		results = append(results, contracts.SectorStrategyResult{
			SectorName:   sector,
			StrategyName: name,
			Signals:      signals,
			LatestSignal: latest,
		})

		s.logger.WithFields(map[string]interface{}{
			"sector":   sector,
			"strategy": name,
			"signals":  len(signals),
			"latest":   string(latest.Signal),
		}).Debug("Computed signals")
	}
	return results, failures
}

// resolveRange fills missing request dates from the registry default and
// validates the final window.
func (s *Service) resolveRange(req Request) (contracts.DateRange, error) {
	dateRange := s.registry.DefaultDateRange()
	if req.StartDate != "" {
		dateRange.StartDate = req.StartDate
	}
	if req.EndDate != "" {
		dateRange.EndDate = req.EndDate
	}
	if err := dateRange.Validate(); err != nil {
		return contracts.DateRange{}, fmt.Errorf("invalid date range: %w", err)
	}
	return dateRange, nil
}

// effectiveStrategies resolves the requested strategy list against the
// registry. Empty input means all registered strategies, in registry order;
// otherwise the caller's order is kept and unknown names are dropped.
func (s *Service) effectiveStrategies(requested []string) []string {
	if len(requested) == 0 {
		return s.registry.Names()
	}
	seen := make(map[string]bool, len(requested))
	names := make([]string, 0, len(requested))
	for _, name := range requested {
		if !s.registry.IsKnown(name) || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// resolveParams merges request overrides over registry defaults and
// validates each merged set before any data is fetched.
func (s *Service) resolveParams(names []string, overrides map[string]strategyconfig.Params) (map[string]strategyconfig.Params, error) {
	params := make(map[string]strategyconfig.Params, len(names))
	for _, name := range names {
		p, err := s.registry.StrategyParams(name)
		if err != nil {
			return nil, err
		}
		if override, ok := overrides[name]; ok {
			p = p.Merge(override)
			if err := strategyconfig.ValidateParams(name, p); err != nil {
				return nil, fmt.Errorf("override for %s: %w", name, err)
			}
		}
		params[name] = p
	}
	return params, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
