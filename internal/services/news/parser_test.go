package news

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SectorScope/internal/domain/models"
	"SectorScope/internal/registry"
	"SectorScope/internal/sentiment"
	"SectorScope/pkg/logger"
)

func newParser(t *testing.T) *Parser {
	t.Helper()
	return NewParser(registry.Default(), sentiment.Default(), logger.Nop())
}

func writeDump(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "news_dumps.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSingleArray(t *testing.T) {
	p := newParser(t)
	path := writeDump(t, `[
		{"title": "Apple posts record growth", "clean_text": "strong iphone sales", "seendate": "20240610T120000Z"},
		{"title": "Exxon warns of weak demand", "clean_text": "declining profits and losses", "seendate": "20240611T090000Z"}
	]`)

	articles, skipped, err := p.Load(path)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, articles, 2)

	assert.Contains(t, articles[0].Sectors, "Information Technology")
	assert.Greater(t, articles[0].Score, 0.0)
	assert.Contains(t, articles[1].Sectors, "Energy")
	assert.Less(t, articles[1].Score, 0.0)
}

func TestLoadConcatenatedArraysRoundTrip(t *testing.T) {
	p := newParser(t)
	// Three valid arrays concatenated without separators must yield the
	// union of their elements.
	path := writeDump(t,
		`[{"title": "a one", "clean_text": "apple", "seendate": "20240601T000000Z"}]`+
			"\n  "+
			`[{"title": "b two", "clean_text": "exxon", "seendate": "20240602T000000Z"},
			  {"title": "c three", "clean_text": "pfizer", "seendate": "20240603T000000Z"}]`+
			`[{"title": "d four", "clean_text": "boeing", "seendate": "20240604T000000Z"}]`)

	articles, skipped, err := p.Load(path)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Len(t, articles, 4)
}

func TestLoadSkipsRecordsMissingTextOrDate(t *testing.T) {
	p := newParser(t)
	path := writeDump(t, `[
		{"title": "", "clean_text": "", "seendate": "20240601T000000Z"},
		{"title": "no date here", "clean_text": "apple growth"},
		{"title": "bad date", "clean_text": "apple growth", "seendate": "junk"},
		{"title": "kept", "clean_text": "apple growth", "seendate": "20240601T000000Z"}
	]`)

	articles, skipped, err := p.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, skipped)
	require.Len(t, articles, 1)
	assert.Equal(t, "kept", articles[0].Title)
}

func TestLoadBlankDumpIsEmpty(t *testing.T) {
	p := newParser(t)
	path := writeDump(t, "   \n\t ")

	articles, skipped, err := p.Load(path)
	require.NoError(t, err)
	assert.Empty(t, articles)
	assert.Zero(t, skipped)
}

func TestLoadGarbageIsInputFormatError(t *testing.T) {
	p := newParser(t)
	path := writeDump(t, `{"not": "an array"`)

	_, _, err := p.Load(path)
	assert.True(t, errors.Is(err, models.ErrInputFormat))
}

func TestLoadMissingFile(t *testing.T) {
	p := newParser(t)
	_, _, err := p.Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestDetectSectorsMultipleAndNone(t *testing.T) {
	p := newParser(t)

	multi := p.detectSectors("apple and exxon both moved today")
	assert.Contains(t, multi, "Information Technology")
	assert.Contains(t, multi, "Energy")

	assert.Empty(t, p.detectSectors("nothing relevant happened"))
}

func TestDetectSectorsTickerIsWholeTokenOnly(t *testing.T) {
	p := newParser(t)
	// Visa's ticker V must not match every word containing a v.
	assert.Empty(t, p.detectSectors("revenue visibility across markets"))
	assert.Contains(t, p.detectSectors("shares of V rallied"), "Financials")
}

func TestDetectSectorsCompoundCompanyName(t *testing.T) {
	p := newParser(t)
	assert.Contains(t, p.detectSectors("ExxonMobil reported earnings"), "Energy")
}

func TestDetectSectorsMatchesAliases(t *testing.T) {
	p := newParser(t)
	got := p.detectSectors("azure revenue keeps climbing")
	assert.Equal(t, []string{"Information Technology"}, got)
}

func TestAggregateTechBeatsEnergy(t *testing.T) {
	p := newParser(t)
	path := writeDump(t, `[
		{"title": "Apple surges on strong growth", "clean_text": "record iphone profits", "seendate": "20250601T000000Z"},
		{"title": "Apple expands", "clean_text": "solid gains for apple", "seendate": "20250602T000000Z"},
		{"title": "ExxonMobil slumps", "clean_text": "exxon warns of losses and declining demand", "seendate": "20250603T000000Z"}
	]`)
	articles, _, err := p.Load(path)
	require.NoError(t, err)

	entries := Aggregate(articles, AggregateOptions{
		End:       time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		HalfLife:  180 * 24 * time.Hour,
		MinWeight: 0.1,
	})

	scores := make(map[string]float64)
	counts := make(map[string]int)
	for _, e := range entries {
		scores[e.Sector] = e.Sentiment
		counts[e.Sector] = e.ArticleCount
	}
	assert.Greater(t, scores["Information Technology"], scores["Energy"])
	assert.Equal(t, 2, counts["Information Technology"])
	assert.Equal(t, 1, counts["Energy"])
}

func TestAggregateRecencyWeighting(t *testing.T) {
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	// One strongly positive but old article, one mildly negative recent
	// one; recency weighting pulls the mean toward the recent signal.
	articles := []models.Article{
		{Published: end.AddDate(-3, 0, 0), Score: 1, Sectors: []string{"Energy"}},
		{Published: end, Score: -0.5, Sectors: []string{"Energy"}},
	}

	weighted := Aggregate(articles, AggregateOptions{End: end, HalfLife: 180 * 24 * time.Hour, MinWeight: 0.1})
	unweighted := Aggregate(articles, AggregateOptions{End: end})

	require.Len(t, weighted, 1)
	require.Len(t, unweighted, 1)
	assert.Less(t, weighted[0].Sentiment, unweighted[0].Sentiment)
	assert.InDelta(t, 0.25, unweighted[0].Sentiment, 1e-12)
}

func TestAggregateDeterministicOrder(t *testing.T) {
	articles := []models.Article{
		{Published: time.Now(), Score: 0.5, Sectors: []string{"Energy"}},
		{Published: time.Now(), Score: 0.5, Sectors: []string{"Financials"}},
		{Published: time.Now(), Score: 0.9, Sectors: []string{"Utilities"}},
	}
	entries := Aggregate(articles, AggregateOptions{End: time.Now()})
	require.Len(t, entries, 3)
	assert.Equal(t, "Utilities", entries[0].Sector)
	// Equal sentiment ties break on sector name.
	assert.Equal(t, "Energy", entries[1].Sector)
	assert.Equal(t, "Financials", entries[2].Sector)
}

func TestAggregateIgnoresUnmatchedArticles(t *testing.T) {
	articles := []models.Article{
		{Published: time.Now(), Score: 1, Sectors: nil},
	}
	assert.Empty(t, Aggregate(articles, AggregateOptions{End: time.Now()}))
}
