package marketdata

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/wonny/sectorpulse/internal/contracts"
	"github.com/wonny/sectorpulse/pkg/config"
	"github.com/wonny/sectorpulse/pkg/httputil"
	"github.com/wonny/sectorpulse/pkg/logger"
)

// EastMoneyClient fetches sector board kline data from the EastMoney push2his
// API and adapts it to contracts.PriceProvider.
// ⭐ SSOT: EastMoney API 호출은 이 클라이언트에서만
type EastMoneyClient struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	directory  *SectorDirectory
}

// NewEastMoneyClient creates a new EastMoney client. The directory resolves
// sector names to board codes before any kline request.
func NewEastMoneyClient(cfg *config.Config, httpClient *httputil.Client, directory *SectorDirectory, log *logger.Logger) *EastMoneyClient {
	return &EastMoneyClient{
		httpClient: httpClient.WithRateLimit(cfg.EastMoney.RatePerSec, cfg.EastMoney.Burst),
		logger:     log.WithField("module", "eastmoney"),
		baseURL:    cfg.EastMoney.BaseURL,
		directory:  directory,
	}
}

// klineResponse mirrors the push2his kline payload. Each kline row is a
// comma-joined string: date,open,close,high,low,volume,amount.
type klineResponse struct {
	Data *struct {
		Code   string   `json:"code"`
		Name   string   `json:"name"`
		Klines []string `json:"klines"`
	} `json:"data"`
}

// FetchPriceHistory implements contracts.PriceProvider. Unknown sectors and
// empty kline responses surface as contracts.ErrDataUnavailable.
func (c *EastMoneyClient) FetchPriceHistory(ctx context.Context, sector, startDate, endDate string) (contracts.PriceHistory, error) {
	code, err := c.directory.BoardCode(ctx, sector)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("secid", "90."+code)
	params.Set("fields1", "f1,f2,f3,f4,f5,f6")
	params.Set("fields2", "f51,f52,f53,f54,f55,f56,f57")
	params.Set("klt", "101") // daily bars
	params.Set("fqt", "1")
	params.Set("beg", startDate)
	params.Set("end", endDate)
	fullURL := fmt.Sprintf("%s/api/qt/stock/kline/get?%s", c.baseURL, params.Encode())

	var payload klineResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, &payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", contracts.ErrDataUnavailable, sector, err)
	}
	if payload.Data == nil || len(payload.Data.Klines) == 0 {
		return nil, fmt.Errorf("%w: %s: empty kline response", contracts.ErrDataUnavailable, sector)
	}

	history := make(contracts.PriceHistory, 0, len(payload.Data.Klines))
	for _, line := range payload.Data.Klines {
		bar, err := parseKline(line)
		if err != nil {
			c.logger.WithError(err).WithField("sector", sector).Warn("Skipping malformed kline row")
			continue
		}
		history = append(history, bar)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: %s: no parseable klines", contracts.ErrDataUnavailable, sector)
	}
	if err := history.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", contracts.ErrDataUnavailable, sector, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"sector": sector,
		"code":   code,
		"bars":   len(history),
	}).Debug("Fetched sector klines")
	return history, nil
}

// parseKline parses one "2025-01-06,10.1,10.5,10.7,10.0,12345,67890" row.
func parseKline(line string) (contracts.PriceBar, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 6 {
		return contracts.PriceBar{}, fmt.Errorf("kline row has %d fields", len(fields))
	}

	date := strings.ReplaceAll(fields[0], "-", "")
	if len(date) != 8 {
		return contracts.PriceBar{}, fmt.Errorf("bad kline date %q", fields[0])
	}

	open, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return contracts.PriceBar{}, fmt.Errorf("bad open %q", fields[1])
	}
	close, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return contracts.PriceBar{}, fmt.Errorf("bad close %q", fields[2])
	}
	high, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return contracts.PriceBar{}, fmt.Errorf("bad high %q", fields[3])
	}
	low, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return contracts.PriceBar{}, fmt.Errorf("bad low %q", fields[4])
	}
	volume, err := strconv.ParseInt(fields[5], 10, 64)
	if err != nil {
		return contracts.PriceBar{}, fmt.Errorf("bad volume %q", fields[5])
	}

	return contracts.PriceBar{
		Date:   date,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  close,
		Volume: volume,
	}, nil
}
