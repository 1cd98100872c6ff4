package yahoo

import (
	"context"
	"fmt"
	"time"

	"SectorScope/internal/domain/models"
	drepo "SectorScope/internal/domain/repository"
	xhttp "SectorScope/pkg/http"
	"SectorScope/pkg/logger"
	"SectorScope/pkg/util"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/shopspring/decimal"
)

// Client implements a MarketData provider backed by Yahoo Finance. Daily
// history comes from the chart API, share counts from quote metadata.
type Client struct {
	baseURL   string
	userAgent string
	httpc     *xhttp.Client
	log       *logger.Logger
}

// New creates a Yahoo Finance MarketData provider.
func New(baseURL, userAgent string, timeout time.Duration, log *logger.Logger) drepo.MarketData {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpc:     xhttp.NewClient(xhttp.WithTimeout(timeout)),
		log:       log,
	}
}

// DailyCloses fetches the daily close series for [start, end]. The chart
// library is tried first; if it yields nothing the v8 endpoint is queried
// directly, since the library lags behind Yahoo's API changes.
func (c *Client) DailyCloses(ctx context.Context, ticker string, start, end time.Time) (models.PriceSeries, error) {
	// Yahoo treats period2 as exclusive; pad one day to keep the range inclusive.
	fetchEnd := end.AddDate(0, 0, 1)

	series, err := c.closesFromLibrary(ticker, start, fetchEnd)
	if err != nil || series.Len() == 0 {
		if err != nil {
			c.log.Debug("chart library fetch failed, trying raw endpoint",
				logger.String("ticker", ticker), logger.Error(err))
		}
		series, err = c.closesFromEndpoint(ctx, ticker, start, fetchEnd)
		if err != nil {
			return models.PriceSeries{}, err
		}
	}
	if series.Len() == 0 {
		return models.PriceSeries{}, fmt.Errorf("%s: %w", ticker, models.ErrDataUnavailable)
	}
	return series, nil
}

func (c *Client) closesFromLibrary(ticker string, start, end time.Time) (models.PriceSeries, error) {
	iter := chart.Get(&chart.Params{
		Symbol:   ticker,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	})

	series := models.PriceSeries{Ticker: ticker}
	for iter.Next() {
		bar := iter.Bar()
		if bar.Close.LessThanOrEqual(decimal.Zero) {
			continue
		}
		px, _ := bar.Close.Float64()
		series.Points = append(series.Points, models.PricePoint{
			Date:  util.Day(time.Unix(int64(bar.Timestamp), 0)),
			Close: px,
		})
	}
	if err := iter.Err(); err != nil {
		return models.PriceSeries{}, fmt.Errorf("chart %s: %w", ticker, err)
	}
	return series, nil
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (c *Client) closesFromEndpoint(ctx context.Context, ticker string, start, end time.Time) (models.PriceSeries, error) {
	var resp chartResponse
	err := c.httpc.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, ticker),
		Headers: map[string]string{
			"User-Agent": c.userAgent,
		},
		QueryParams: map[string][]string{
			"period1":  {fmt.Sprintf("%d", start.Unix())},
			"period2":  {fmt.Sprintf("%d", end.Unix())},
			"interval": {"1d"},
		},
	}, &resp)
	if err != nil {
		return models.PriceSeries{}, fmt.Errorf("chart endpoint %s: %w", ticker, err)
	}
	if resp.Chart.Error != nil {
		return models.PriceSeries{}, fmt.Errorf("chart endpoint %s: %s: %w",
			ticker, resp.Chart.Error.Code, models.ErrDataUnavailable)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return models.PriceSeries{}, fmt.Errorf("%s: %w", ticker, models.ErrDataUnavailable)
	}

	result := resp.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close
	series := models.PriceSeries{Ticker: ticker}
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil || *closes[i] <= 0 {
			continue
		}
		series.Points = append(series.Points, models.PricePoint{
			Date:  util.Day(time.Unix(ts, 0)),
			Close: *closes[i],
		})
	}
	return series, nil
}

// SharesOutstanding infers a share count from quote metadata: the reported
// count when present, otherwise market cap divided by the latest price.
func (c *Client) SharesOutstanding(_ context.Context, ticker string) (float64, error) {
	q, err := equity.Get(ticker)
	if err != nil {
		return 0, fmt.Errorf("equity %s: %w", ticker, err)
	}
	if q == nil {
		return 0, fmt.Errorf("equity %s: empty response", ticker)
	}
	if q.SharesOutstanding > 0 {
		return float64(q.SharesOutstanding), nil
	}
	price := q.RegularMarketPrice
	if price == 0 {
		price = q.RegularMarketPreviousClose
	}
	if q.MarketCap > 0 && price > 0 {
		return float64(q.MarketCap) / price, nil
	}
	return 0, fmt.Errorf("equity %s: no share count metadata", ticker)
}

var _ drepo.MarketData = (*Client)(nil)
