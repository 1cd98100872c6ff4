package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"SectorScope/internal/domain/models"
)

// WriteCSV writes the three report tables to dir as market_history.csv,
// news_sentiment.csv and sector_rankings.csv, creating dir if needed.
func WriteCSV(dir string, report *models.ForecastReport) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := writeRecords(filepath.Join(dir, "market_history.csv"), historyRecords(report)); err != nil {
		return err
	}
	if err := writeRecords(filepath.Join(dir, "news_sentiment.csv"), sentimentRecords(report)); err != nil {
		return err
	}
	return writeRecords(filepath.Join(dir, "sector_rankings.csv"), rankingRecords(report))
}

func writeRecords(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// historyRecords flattens the per-sector series into rows ordered by date
// then sector, so identical inputs always export identical files.
func historyRecords(report *models.ForecastReport) [][]string {
	type row struct {
		date   string
		sector string
		cap    float64
	}
	var rows []row
	for _, series := range report.MarketHistory {
		for _, p := range series.Points {
			rows = append(rows, row{
				date:   p.Date.Format("2006-01-02"),
				sector: series.Sector,
				cap:    p.MarketCap,
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].date != rows[j].date {
			return rows[i].date < rows[j].date
		}
		return rows[i].sector < rows[j].sector
	})

	records := [][]string{{"date", "sector", "sector_market_cap"}}
	for _, r := range rows {
		records = append(records, []string{r.date, r.sector, formatFloat(r.cap)})
	}
	return records
}

func sentimentRecords(report *models.ForecastReport) [][]string {
	records := [][]string{{"sector", "sentiment", "article_count"}}
	for _, e := range report.Sentiment {
		records = append(records, []string{
			e.Sector,
			formatFloat(e.Sentiment),
			strconv.Itoa(e.ArticleCount),
		})
	}
	return records
}

func rankingRecords(report *models.ForecastReport) [][]string {
	records := [][]string{{
		"sector", "start_market_cap", "end_market_cap", "growth_rate",
		"article_count", "sentiment", "growth_score", "sentiment_score",
		"composite_score", "notes",
	}}
	for _, s := range report.Ranking.Sectors {
		records = append(records, []string{
			s.Sector,
			formatFloat(s.StartMarketCap),
			formatFloat(s.EndMarketCap),
			formatFloat(s.Growth),
			strconv.Itoa(s.ArticleCount),
			formatFloat(s.Sentiment),
			formatFloat(s.GrowthScore),
			formatFloat(s.SentimentScore),
			formatFloat(s.CompositeScore),
			strings.Join(s.Notes, "; "),
		})
	}
	return records
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
