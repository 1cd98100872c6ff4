package market

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"SectorScope/internal/domain/models"
	drepo "SectorScope/internal/domain/repository"
	"SectorScope/internal/registry"
	"SectorScope/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// notionalMarketCap scales a price series when no share-count metadata is
// available, so the series still contributes a growth shape to its sector.
const notionalMarketCap = 1_000_000_000.0

// Snapshot is the market side of the pipeline: reconstructed sector
// market-cap histories plus the growth extracted from them.
type Snapshot struct {
	History map[string]models.SectorMarketCapSeries
	Growth  []models.GrowthScore
	// FailedTickers lists tickers excluded because the provider returned
	// no usable data.
	FailedTickers []string
	// Notes annotates sectors excluded from the growth ranking, keyed by
	// sector name.
	Notes map[string][]string
}

// Aggregator reconstructs per-sector market-cap series from bellwether
// ticker histories.
type Aggregator struct {
	provider       drepo.MarketData
	maxConcurrency int
	log            *logger.Logger
}

func NewAggregator(provider drepo.MarketData, maxConcurrency int, log *logger.Logger) *Aggregator {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &Aggregator{provider: provider, maxConcurrency: maxConcurrency, log: log}
}

type tickerData struct {
	series models.PriceSeries
	shares models.ShareCountEstimate
}

// Aggregate fetches every registry ticker over [start, end] and sums
// close x shares per sector on a shared forward-filled date axis.
// Per-ticker failures are recovered by exclusion; only a run with no data
// at all returns an error.
func (a *Aggregator) Aggregate(ctx context.Context, reg *registry.Registry, start, end time.Time) (*Snapshot, error) {
	fetched, failed, err := a.fetchAll(ctx, reg.Tickers(), start, end)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		History:       make(map[string]models.SectorMarketCapSeries),
		FailedTickers: failed,
		Notes:         make(map[string][]string),
	}

	for _, sec := range reg.Sectors() {
		var members []tickerData
		for _, leader := range sec.Leaders {
			if td, ok := fetched[leader.Ticker]; ok {
				members = append(members, td)
			}
		}
		if len(members) == 0 {
			snap.Notes[sec.Name] = append(snap.Notes[sec.Name], "no price data")
			continue
		}

		series := buildSectorSeries(sec.Name, members)
		snap.History[sec.Name] = series

		growth, err := extractGrowth(series)
		if err != nil {
			a.log.Warn("sector excluded from growth ranking",
				logger.String("sector", sec.Name), logger.Error(err))
			snap.Notes[sec.Name] = append(snap.Notes[sec.Name], "insufficient data")
			continue
		}
		snap.Growth = append(snap.Growth, growth)
	}

	if len(snap.History) == 0 {
		return nil, fmt.Errorf("no market data for any sector: %w", models.ErrDataUnavailable)
	}

	sort.Slice(snap.Growth, func(i, j int) bool {
		if snap.Growth[i].Growth != snap.Growth[j].Growth {
			return snap.Growth[i].Growth > snap.Growth[j].Growth
		}
		return snap.Growth[i].Sector < snap.Growth[j].Sector
	})
	return snap, nil
}

// fetchAll downloads every ticker's history and share count through a
// bounded worker pool. Each result lands in its own slot keyed by symbol;
// completion order does not matter.
func (a *Aggregator) fetchAll(ctx context.Context, tickers []string, start, end time.Time) (map[string]tickerData, []string, error) {
	var mu sync.Mutex
	fetched := make(map[string]tickerData, len(tickers))
	var failed []string

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxConcurrency)

	for _, ticker := range tickers {
		ticker := ticker
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			series, err := a.provider.DailyCloses(ctx, ticker, start, end)
			if err != nil {
				a.log.Warn("ticker excluded, no price history",
					logger.String("ticker", ticker), logger.Error(err))
				mu.Lock()
				failed = append(failed, ticker)
				mu.Unlock()
				return nil
			}

			shares, err := a.provider.SharesOutstanding(ctx, ticker)
			if err != nil || shares <= 0 {
				// Scale so the first close maps to a notional cap; the
				// growth rate is unaffected by the constant.
				shares = notionalMarketCap / series.First().Close
				a.log.Warn("share count unavailable, using notional scale",
					logger.String("ticker", ticker))
			}

			mu.Lock()
			fetched[ticker] = tickerData{
				series: series,
				shares: models.ShareCountEstimate{Ticker: ticker, Shares: shares},
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("fetch market data: %w", err)
	}

	sort.Strings(failed)
	return fetched, failed, nil
}

// buildSectorSeries aligns member series onto the union of their trading
// dates and sums close x shares per date. Gaps are forward-filled from the
// member's most recent prior close; a member contributes nothing before
// its first observation, so no future value ever leaks backward.
func buildSectorSeries(sector string, members []tickerData) models.SectorMarketCapSeries {
	dateSet := make(map[time.Time]struct{})
	for _, m := range members {
		for _, p := range m.series.Points {
			dateSet[p.Date] = struct{}{}
		}
	}
	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := models.SectorMarketCapSeries{Sector: sector}
	cursor := make([]int, len(members))
	lastClose := make([]float64, len(members))
	for _, date := range dates {
		var total float64
		for i, m := range members {
			for cursor[i] < m.series.Len() && !m.series.Points[cursor[i]].Date.After(date) {
				lastClose[i] = m.series.Points[cursor[i]].Close
				cursor[i]++
			}
			total += lastClose[i] * m.shares.Shares
		}
		out.Points = append(out.Points, models.CapPoint{Date: date, MarketCap: total})
	}
	return out
}

func extractGrowth(series models.SectorMarketCapSeries) (models.GrowthScore, error) {
	if len(series.Points) < 2 {
		return models.GrowthScore{}, fmt.Errorf("sector %s: %w", series.Sector, models.ErrInsufficientData)
	}
	first := series.Points[0].MarketCap
	last := series.Points[len(series.Points)-1].MarketCap
	growth := 0.0
	if first != 0 {
		growth = (last - first) / first
	}
	return models.GrowthScore{
		Sector:         series.Sector,
		StartMarketCap: first,
		EndMarketCap:   last,
		Growth:         growth,
	}, nil
}
