package di

import (
	"fmt"

	drepo "SectorScope/internal/domain/repository"
	"SectorScope/internal/registry"
	"SectorScope/internal/sentiment"
	"SectorScope/internal/services/market"
	"SectorScope/internal/services/news"
	"SectorScope/internal/services/yahoo"
	"SectorScope/internal/usecase"
	"SectorScope/pkg/config"
	applogger "SectorScope/pkg/logger"
	"SectorScope/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideRegistry builds the sector registry from config, falling back to
// the built-in eleven-sector table when no sectors are configured.
func ProvideRegistry(cfg *config.Config) (*registry.Registry, error) {
	if len(cfg.Sectors) == 0 {
		return registry.Default(), nil
	}
	sectors := make([]registry.Sector, 0, len(cfg.Sectors))
	for _, sc := range cfg.Sectors {
		leaders := make([]registry.Leader, 0, len(sc.Leaders))
		for _, lc := range sc.Leaders {
			leaders = append(leaders, registry.Leader{
				Ticker:  lc.Ticker,
				Name:    lc.Name,
				Aliases: lc.Aliases,
			})
		}
		sectors = append(sectors, registry.Sector{Name: sc.Name, Leaders: leaders})
	}
	reg, err := registry.New(sectors)
	if err != nil {
		return nil, fmt.Errorf("sector registry: %w", err)
	}
	return reg, nil
}

// ProvideLexicon returns the built-in sentiment lexicon.
func ProvideLexicon() *sentiment.Lexicon {
	return sentiment.Default()
}

// ProvideMarketData creates the Yahoo Finance provider.
func ProvideMarketData(cfg *config.Config, log *applogger.Logger) drepo.MarketData {
	return yahoo.New(cfg.Provider.ChartBaseURL, cfg.Provider.UserAgent, cfg.Provider.Timeout, log)
}

// ProvideNewsSource creates the news dump parser.
func ProvideNewsSource(reg *registry.Registry, lex *sentiment.Lexicon, log *applogger.Logger) drepo.NewsSource {
	return news.NewParser(reg, lex, log)
}

// ProvideAggregator creates the sector market-cap aggregator.
func ProvideAggregator(provider drepo.MarketData, cfg *config.Config, log *applogger.Logger) *market.Aggregator {
	return market.NewAggregator(provider, cfg.Provider.MaxConcurrency, log)
}

// ProvideForecast creates the pipeline use case.
func ProvideForecast(source drepo.NewsSource, agg *market.Aggregator, reg *registry.Registry, log *applogger.Logger) *usecase.Forecast {
	return usecase.NewForecast(source, agg, reg, log)
}

// ProvideApp creates the application.
func ProvideApp(cfg *config.Config, forecaster *usecase.Forecast, log *applogger.Logger) *server.App {
	return server.New(cfg, forecaster, log)
}
