package repository

import (
	"context"
	"time"

	"SectorScope/internal/domain/models"
)

// MarketData provides historical prices and share-count metadata for one
// ticker at a time. Implementations wrap an external provider; callers
// treat per-ticker failures as recoverable.
type MarketData interface {
	// DailyCloses returns the daily close series for the inclusive range
	// [start, end]. An empty provider response is reported as
	// models.ErrDataUnavailable.
	DailyCloses(ctx context.Context, ticker string, start, end time.Time) (models.PriceSeries, error)

	// SharesOutstanding returns a point estimate of the ticker's share
	// count, inferred from provider metadata.
	SharesOutstanding(ctx context.Context, ticker string) (float64, error)
}

// NewsSource loads and scores the raw article records of a news dump.
// The int result is the number of skipped (unusable) records.
type NewsSource interface {
	Load(path string) ([]models.Article, int, error)
}
