package ranking

import (
	"fmt"
	"math"
	"sort"

	"SectorScope/internal/domain/models"
)

// Weights blends the two normalized signals. Growth and Sentiment must
// sum to 1; config validation enforces this before a run starts.
type Weights struct {
	Growth    float64
	Sentiment float64
}

// Inputs carries everything the ranker needs. Sectors is the full registry
// list so that every sector appears in the output exactly once, even when
// a signal is missing for it.
type Inputs struct {
	Sectors   []string
	Growth    []models.GrowthScore
	Sentiment []models.SentimentEntry
	// Notes are upstream per-sector annotations (exclusion reasons)
	// carried through to the ranking rows.
	Notes map[string][]string
	// NeutralScore is assigned in place of a missing normalized signal.
	NeutralScore float64
}

// Rank normalizes both signals with min-max across the sectors present in
// each, blends them with the given weights and returns the ordered
// ranking. Sectors missing a signal get NeutralScore for it and an
// explanatory note. Returns models.ErrEmptyRanking when no sector has at
// least one real signal.
func Rank(in Inputs, w Weights) (models.CompositeRanking, error) {
	growthBySector := make(map[string]models.GrowthScore, len(in.Growth))
	for _, g := range in.Growth {
		growthBySector[g.Sector] = g
	}
	sentimentBySector := make(map[string]models.SentimentEntry, len(in.Sentiment))
	for _, s := range in.Sentiment {
		sentimentBySector[s.Sector] = s
	}

	growthNorm := normalize(in.Growth, func(g models.GrowthScore) (string, float64) {
		return g.Sector, g.Growth
	})
	sentimentNorm := normalize(in.Sentiment, func(s models.SentimentEntry) (string, float64) {
		return s.Sector, s.Sentiment
	})

	anySignal := false
	rows := make([]models.RankedSector, 0, len(in.Sectors))
	for _, sector := range in.Sectors {
		row := models.RankedSector{Sector: sector}
		row.Notes = append(row.Notes, in.Notes[sector]...)

		if g, ok := growthBySector[sector]; ok {
			row.StartMarketCap = g.StartMarketCap
			row.EndMarketCap = g.EndMarketCap
			row.Growth = g.Growth
			row.GrowthScore = growthNorm[sector]
			anySignal = true
		} else {
			row.GrowthScore = in.NeutralScore
		}

		if s, ok := sentimentBySector[sector]; ok {
			row.Sentiment = s.Sentiment
			row.ArticleCount = s.ArticleCount
			row.SentimentScore = sentimentNorm[sector]
			anySignal = true
		} else {
			row.SentimentScore = in.NeutralScore
			row.Notes = append(row.Notes, "no news coverage")
		}

		row.CompositeScore = w.Growth*row.GrowthScore + w.Sentiment*row.SentimentScore
		rows = append(rows, row)
	}

	if !anySignal {
		return models.CompositeRanking{}, fmt.Errorf("rank sectors: %w", models.ErrEmptyRanking)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CompositeScore != rows[j].CompositeScore {
			return rows[i].CompositeScore > rows[j].CompositeScore
		}
		return rows[i].Sector < rows[j].Sector
	})
	return models.CompositeRanking{Sectors: rows}, nil
}

// normalize min-max scales the raw values onto [0, 1] across the sectors
// present in the signal. A degenerate signal (all values equal) maps every
// member to 1 so it neither rewards nor penalizes anyone unevenly.
func normalize[T any](items []T, key func(T) (string, float64)) map[string]float64 {
	out := make(map[string]float64, len(items))
	if len(items) == 0 {
		return out
	}

	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	for _, it := range items {
		_, v := key(it)
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}

	span := maxVal - minVal
	for _, it := range items {
		sector, v := key(it)
		if span == 0 {
			out[sector] = 1
			continue
		}
		out[sector] = (v - minVal) / span
	}
	return out
}
