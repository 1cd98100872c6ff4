package export

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"SectorScope/internal/domain/models"
)

// RenderSentiment formats the per-sector sentiment table.
func RenderSentiment(entries []models.SentimentEntry) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "sector\tsentiment\tarticles")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%.4f\t%d\n", e.Sector, e.Sentiment, e.ArticleCount)
	}
	w.Flush()
	return sb.String()
}

// RenderGrowth formats the market-cap growth table, best growth first.
func RenderGrowth(growth []models.GrowthScore) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "sector\tstart_market_cap\tend_market_cap\tgrowth_rate")
	for _, g := range growth {
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.2f%%\n", g.Sector, g.StartMarketCap, g.EndMarketCap, g.Growth*100)
	}
	w.Flush()
	return sb.String()
}

// RenderRanking formats the composite ranking with per-sector notes.
func RenderRanking(r models.CompositeRanking) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "sector\tgrowth_rate\tsentiment\tgrowth_score\tsentiment_score\tcomposite_score\tnotes")
	for _, s := range r.Sectors {
		fmt.Fprintf(w, "%s\t%.2f%%\t%.4f\t%.2f\t%.2f\t%.2f\t%s\n",
			s.Sector, s.Growth*100, s.Sentiment,
			s.GrowthScore, s.SentimentScore, s.CompositeScore,
			strings.Join(s.Notes, "; "))
	}
	w.Flush()
	return sb.String()
}
