package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SectorScope/internal/domain/models"
	"SectorScope/internal/ranking"
	"SectorScope/internal/registry"
	"SectorScope/internal/services/market"
	"SectorScope/pkg/logger"
)

type stubNews struct {
	articles []models.Article
	skipped  int
	err      error
}

func (s *stubNews) Load(string) ([]models.Article, int, error) {
	return s.articles, s.skipped, s.err
}

type stubMarket struct {
	closes map[string][]models.PricePoint
	shares map[string]float64
}

func (s *stubMarket) DailyCloses(_ context.Context, ticker string, _, _ time.Time) (models.PriceSeries, error) {
	pts, ok := s.closes[ticker]
	if !ok {
		return models.PriceSeries{}, fmt.Errorf("%s: %w", ticker, models.ErrDataUnavailable)
	}
	return models.PriceSeries{Ticker: ticker, Points: pts}, nil
}

func (s *stubMarket) SharesOutstanding(_ context.Context, ticker string) (float64, error) {
	n, ok := s.shares[ticker]
	if !ok {
		return 0, fmt.Errorf("%s: %w", ticker, models.ErrDataUnavailable)
	}
	return n, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New([]registry.Sector{
		{Name: "Energy", Leaders: []registry.Leader{{Ticker: "XOM", Name: "Exxon Mobil", Aliases: []string{"Exxon"}}}},
		{Name: "Technology", Leaders: []registry.Leader{{Ticker: "AAPL", Name: "Apple"}}},
	})
	require.NoError(t, err)
	return reg
}

func testParams() ForecastParams {
	return ForecastParams{
		Start:            day(2024, 1, 1),
		End:              day(2024, 3, 1),
		NewsPath:         "unused.json",
		Weights:          ranking.Weights{Growth: 0.7, Sentiment: 0.3},
		RecencyHalfLife:  180 * 24 * time.Hour,
		MinRecencyWeight: 0.1,
		NeutralScore:     0.5,
	}
}

func TestForecastRunBlendsBothSignals(t *testing.T) {
	source := &stubNews{
		articles: []models.Article{
			{Title: "Apple surges on record profit", Published: day(2024, 2, 1), Score: 0.4, Sectors: []string{"Technology"}},
			{Title: "Exxon warns of weak demand", Published: day(2024, 2, 1), Score: -0.2, Sectors: []string{"Energy"}},
		},
		skipped: 1,
	}
	provider := &stubMarket{
		closes: map[string][]models.PricePoint{
			"AAPL": {{Date: day(2024, 1, 2), Close: 100}, {Date: day(2024, 2, 29), Close: 150}},
			"XOM":  {{Date: day(2024, 1, 2), Close: 100}, {Date: day(2024, 2, 29), Close: 110}},
		},
		shares: map[string]float64{"AAPL": 1000, "XOM": 1000},
	}

	f := NewForecast(source, market.NewAggregator(provider, 2, logger.Nop()), testRegistry(t), logger.Nop())
	report, err := f.Run(context.Background(), testParams())
	require.NoError(t, err)

	assert.Equal(t, 1, report.SkippedArticles)
	require.Len(t, report.Ranking.Sectors, 2)
	assert.Equal(t, "Technology", report.Ranking.Top())
	// Technology wins on both growth and sentiment, so its composite is maximal.
	assert.Equal(t, 1.0, report.Ranking.Sectors[0].CompositeScore)
	assert.Empty(t, report.FailedTickers)
	assert.NotEmpty(t, report.MarketHistory)
}

func TestForecastRunNewsFailureIsFatal(t *testing.T) {
	source := &stubNews{err: fmt.Errorf("decode dump: %w", models.ErrInputFormat)}
	provider := &stubMarket{}

	f := NewForecast(source, market.NewAggregator(provider, 2, logger.Nop()), testRegistry(t), logger.Nop())
	_, err := f.Run(context.Background(), testParams())
	assert.True(t, errors.Is(err, models.ErrInputFormat))
}

func TestForecastRunRejectsInvertedWindow(t *testing.T) {
	f := NewForecast(&stubNews{}, market.NewAggregator(&stubMarket{}, 1, logger.Nop()), testRegistry(t), logger.Nop())

	p := testParams()
	p.Start, p.End = p.End, p.Start
	_, err := f.Run(context.Background(), p)
	assert.Error(t, err)
}

func TestForecastRunIsDeterministic(t *testing.T) {
	source := &stubNews{
		articles: []models.Article{
			{Title: "markets rally", Published: day(2024, 2, 1), Score: 0.1, Sectors: []string{"Energy", "Technology"}},
		},
	}
	provider := &stubMarket{
		closes: map[string][]models.PricePoint{
			"AAPL": {{Date: day(2024, 1, 2), Close: 100}, {Date: day(2024, 2, 29), Close: 120}},
			"XOM":  {{Date: day(2024, 1, 2), Close: 50}, {Date: day(2024, 2, 29), Close: 55}},
		},
		shares: map[string]float64{"AAPL": 500, "XOM": 2000},
	}

	f := NewForecast(source, market.NewAggregator(provider, 4, logger.Nop()), testRegistry(t), logger.Nop())

	first, err := f.Run(context.Background(), testParams())
	require.NoError(t, err)
	second, err := f.Run(context.Background(), testParams())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
