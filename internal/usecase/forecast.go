package usecase

import (
	"context"
	"fmt"
	"time"

	"SectorScope/internal/domain/models"
	drepo "SectorScope/internal/domain/repository"
	"SectorScope/internal/ranking"
	"SectorScope/internal/registry"
	"SectorScope/internal/services/market"
	"SectorScope/internal/services/news"
	"SectorScope/pkg/logger"
)

// ForecastParams fixes one analysis run: the date window, the dump to
// read and the signal blend.
type ForecastParams struct {
	Start    time.Time
	End      time.Time
	NewsPath string

	Weights ranking.Weights

	RecencyHalfLife  time.Duration
	MinRecencyWeight float64
	NeutralScore     float64
}

// Forecast runs the full sector-outlook pipeline: news sentiment and
// market-cap growth computed independently, then blended into one ranking.
type Forecast struct {
	source drepo.NewsSource
	agg    *market.Aggregator
	reg    *registry.Registry
	log    *logger.Logger
}

func NewForecast(source drepo.NewsSource, agg *market.Aggregator, reg *registry.Registry, log *logger.Logger) *Forecast {
	return &Forecast{source: source, agg: agg, reg: reg, log: log}
}

func (f *Forecast) Run(ctx context.Context, p ForecastParams) (*models.ForecastReport, error) {
	if !p.End.After(p.Start) {
		return nil, fmt.Errorf("end date must be after start date")
	}

	f.log.Info("analysing news sentiment", logger.String("path", p.NewsPath))
	articles, skipped, err := f.source.Load(p.NewsPath)
	if err != nil {
		return nil, fmt.Errorf("load news: %w", err)
	}
	sentiment := news.Aggregate(articles, news.AggregateOptions{
		End:       p.End,
		HalfLife:  p.RecencyHalfLife,
		MinWeight: p.MinRecencyWeight,
	})
	f.log.Info("news sentiment ready",
		logger.Int("articles", len(articles)),
		logger.Int("skipped", skipped),
		logger.Int("sectors", len(sentiment)))

	f.log.Info("fetching market data for sector leaders",
		logger.Int("tickers", len(f.reg.Tickers())))
	snap, err := f.agg.Aggregate(ctx, f.reg, p.Start, p.End)
	if err != nil {
		return nil, fmt.Errorf("aggregate market caps: %w", err)
	}

	rank, err := ranking.Rank(ranking.Inputs{
		Sectors:      f.reg.SectorNames(),
		Growth:       snap.Growth,
		Sentiment:    sentiment,
		Notes:        snap.Notes,
		NeutralScore: p.NeutralScore,
	}, p.Weights)
	if err != nil {
		return nil, err
	}

	return &models.ForecastReport{
		Start:           p.Start,
		End:             p.End,
		Sentiment:       sentiment,
		SkippedArticles: skipped,
		MarketHistory:   snap.History,
		Growth:          snap.Growth,
		FailedTickers:   snap.FailedTickers,
		Ranking:         rank,
	}, nil
}
