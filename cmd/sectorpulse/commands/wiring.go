package commands

import (
	"fmt"

	"github.com/wonny/sectorpulse/internal/contracts"
	"github.com/wonny/sectorpulse/internal/marketdata"
	"github.com/wonny/sectorpulse/internal/sectorsignal"
	"github.com/wonny/sectorpulse/internal/strategyconfig"
	"github.com/wonny/sectorpulse/pkg/config"
	"github.com/wonny/sectorpulse/pkg/httputil"
	"github.com/wonny/sectorpulse/pkg/logger"
	"github.com/wonny/sectorpulse/pkg/redis"
)

// stack bundles the dependencies shared by every command.
// ⭐ SSOT: 의존성 조립은 이 파일에서만
type stack struct {
	cfg       *config.Config
	log       *logger.Logger
	registry  *strategyconfig.Registry
	directory *marketdata.SectorDirectory
	provider  contracts.PriceProvider
	service   *sectorsignal.Service
	redis     *redis.Client
}

func (s *stack) Close() {
	if s.redis != nil {
		s.redis.Close()
	}
}

// initStack wires config, logger, strategy registry and the EastMoney
// price provider. Redis caching is layered in only when enabled.
func initStack() (*stack, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Build strategy registry, applying YAML overrides when configured
	registry := strategyconfig.New()
	if cfg.Strategies.ConfigPath != "" {
		registry, _, err = strategyconfig.Load(cfg.Strategies.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load strategy config: %w", err)
		}
	}

	// 4. Create HTTP client with outbound rate limiting
	httpClient := httputil.New(cfg, log)

	// 5. Create sector directory and kline client
	directory := marketdata.NewSectorDirectory(cfg.EastMoney.BoardListURL, httpClient, log)
	var provider contracts.PriceProvider = marketdata.NewEastMoneyClient(cfg, httpClient, directory, log)

	// 6. Layer in the Redis cache when enabled
	rdb, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	if rdb.Enabled() {
		provider = marketdata.NewCachedProvider(provider, redis.NewCache(rdb, "sectorpulse"))
		log.Info("Redis price cache enabled")
	}

	// 7. Create signal service
	service := sectorsignal.NewService(registry, provider, log)
	service.Workers = cfg.Strategies.Workers

	return &stack{
		cfg:       cfg,
		log:       log,
		registry:  registry,
		directory: directory,
		provider:  provider,
		service:   service,
		redis:     rdb,
	}, nil
}
