package models

import "time"

// Article is one scored news record from the dump.
// Note: no transport (json/file-format) concerns here.
type Article struct {
	Title     string
	Text      string
	Published time.Time
	Score     float64
	Sectors   []string
}

// SentimentEntry is the aggregated sentiment signal for one sector.
type SentimentEntry struct {
	Sector       string
	Sentiment    float64
	ArticleCount int
}

// PricePoint is one daily close observation.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// PriceSeries holds the fetched close history for one ticker.
type PriceSeries struct {
	Ticker string
	Points []PricePoint
}

// First returns the earliest point. Callers must check Len first.
func (s PriceSeries) First() PricePoint { return s.Points[0] }

// Last returns the latest point. Callers must check Len first.
func (s PriceSeries) Last() PricePoint { return s.Points[len(s.Points)-1] }

func (s PriceSeries) Len() int { return len(s.Points) }

// ShareCountEstimate is an inferred, point-in-time share count for a
// ticker. It is held constant across the analysis window.
type ShareCountEstimate struct {
	Ticker string
	Shares float64
}

// CapPoint is one daily total-market-cap observation for a sector.
type CapPoint struct {
	Date      time.Time
	MarketCap float64
}

// SectorMarketCapSeries is the reconstructed market-cap history of one
// sector, summed across its bellwether tickers on a shared date axis.
type SectorMarketCapSeries struct {
	Sector string
	Points []CapPoint
}

// GrowthScore is the raw market-cap growth for one sector over the window.
type GrowthScore struct {
	Sector         string
	StartMarketCap float64
	EndMarketCap   float64
	Growth         float64
}

// RankedSector is one row of the composite ranking.
type RankedSector struct {
	Sector         string
	StartMarketCap float64
	EndMarketCap   float64
	Growth         float64
	Sentiment      float64
	ArticleCount   int
	GrowthScore    float64
	SentimentScore float64
	CompositeScore float64
	// Notes carries per-sector annotations such as "no price data" or
	// "insufficient data"; empty for sectors with both signals.
	Notes []string
}

// CompositeRanking is the ordered ranking output, best sector first.
type CompositeRanking struct {
	Sectors []RankedSector
}

// Top returns the best-ranked sector name, or "" for an empty ranking.
func (r CompositeRanking) Top() string {
	if len(r.Sectors) == 0 {
		return ""
	}
	return r.Sectors[0].Sector
}

// ForecastReport is the full pipeline output consumed by report/export.
type ForecastReport struct {
	Start time.Time
	End   time.Time

	Sentiment       []SentimentEntry
	SkippedArticles int

	MarketHistory map[string]SectorMarketCapSeries
	Growth        []GrowthScore
	FailedTickers []string

	Ranking CompositeRanking
}
