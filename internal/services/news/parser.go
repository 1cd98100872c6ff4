package news

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"SectorScope/internal/domain/models"
	"SectorScope/internal/domain/repository"
	"SectorScope/internal/registry"
	"SectorScope/internal/sentiment"
	"SectorScope/pkg/logger"
	"SectorScope/pkg/util"
)

// arrayBoundary matches the seam between two concatenated JSON arrays.
// Dumps produced by repeated append runs contain "][" boundaries; joining
// them with commas yields one valid array.
var arrayBoundary = regexp.MustCompile(`\]\s*\[`)

type rawArticle struct {
	Title     string `json:"title"`
	CleanText string `json:"clean_text"`
	Seendate  string `json:"seendate"`
}

// Parser loads a news dump, scores each article against the lexicon and
// tags it with the sectors whose bellwether keywords it mentions.
type Parser struct {
	matchers []sectorMatcher
	lex      *sentiment.Lexicon
	log      *logger.Logger
}

type sectorMatcher struct {
	name string
	// tickers match the raw content as case-sensitive whole tokens, so
	// "SO" hits the symbol but not the word "so". Names and aliases match
	// the lowercased content on a word-boundary prefix, so a compound
	// mention like "ExxonMobil" still counts for "Exxon".
	tickers []*regexp.Regexp
	names   []*regexp.Regexp
}

func NewParser(reg *registry.Registry, lex *sentiment.Lexicon, log *logger.Logger) *Parser {
	matchers := make([]sectorMatcher, 0, len(reg.Sectors()))
	for _, sec := range reg.Sectors() {
		m := sectorMatcher{name: sec.Name}
		for _, l := range sec.Leaders {
			m.tickers = append(m.tickers, tickerPattern(l.Ticker))
			m.names = append(m.names, namePattern(l.Name))
			for _, a := range l.Aliases {
				m.names = append(m.names, namePattern(a))
			}
		}
		matchers = append(matchers, m)
	}
	return &Parser{matchers: matchers, lex: lex, log: log}
}

func tickerPattern(symbol string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(symbol) + `\b`)
}

func namePattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(keyword)))
}

// Load reads the dump at path and returns scored articles plus the number
// of skipped records. Records missing text or a parseable date are skipped;
// a dump from which no JSON array can be recovered is models.ErrInputFormat.
func (p *Parser) Load(path string) ([]models.Article, int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read news dump: %w", err)
	}

	records, err := decodeRecords(b)
	if err != nil {
		return nil, 0, err
	}

	articles := make([]models.Article, 0, len(records))
	skipped := 0
	for _, rec := range records {
		content := rec.Title + "\n" + rec.CleanText
		if strings.TrimSpace(content) == "" {
			skipped++
			continue
		}
		published, ok := util.ParseTime(rec.Seendate)
		if !ok {
			skipped++
			continue
		}
		articles = append(articles, models.Article{
			Title:     rec.Title,
			Text:      rec.CleanText,
			Published: published,
			Score:     p.lex.Score(content),
			Sectors:   p.detectSectors(content),
		})
	}
	if skipped > 0 {
		p.log.Warn("skipped unusable news records", logger.Int("skipped", skipped))
	}
	return articles, skipped, nil
}

// decodeRecords normalizes concatenated JSON arrays and unmarshals the
// result. Blank input is treated as an empty dump, not an error.
func decodeRecords(b []byte) ([]rawArticle, error) {
	stripped := strings.TrimSpace(string(b))
	if stripped == "" {
		return nil, nil
	}
	cleaned := arrayBoundary.ReplaceAllString(stripped, ",")

	var records []rawArticle
	if err := json.Unmarshal([]byte(cleaned), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInputFormat, err)
	}
	return records, nil
}

func (p *Parser) detectSectors(content string) []string {
	lower := strings.ToLower(content)
	var matched []string
	for _, m := range p.matchers {
		if matchesAny(m.tickers, content) || matchesAny(m.names, lower) {
			matched = append(matched, m.name)
		}
	}
	return matched
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, pat := range patterns {
		if pat.MatchString(s) {
			return true
		}
	}
	return false
}

// AggregateOptions tune the recency weighting of article sentiment.
type AggregateOptions struct {
	// End anchors recency: articles published at End carry weight 1.
	End time.Time
	// HalfLife is the exponential decay constant; older articles lose
	// influence but are never discounted below MinWeight.
	HalfLife  time.Duration
	MinWeight float64
}

// Aggregate combines scored articles into one recency-weighted mean
// sentiment per matched sector, ordered by sentiment descending with ties
// broken by sector name.
func Aggregate(articles []models.Article, opts AggregateOptions) []models.SentimentEntry {
	type bucket struct {
		weighted float64
		weights  float64
		count    int
	}
	buckets := make(map[string]*bucket)

	halfLifeDays := opts.HalfLife.Hours() / 24
	for _, a := range articles {
		if len(a.Sectors) == 0 {
			continue
		}
		weight := 1.0
		if halfLifeDays > 0 {
			days := opts.End.Sub(a.Published).Hours() / 24
			weight = math.Exp(-math.Max(days, 0) / halfLifeDays)
			if weight < opts.MinWeight {
				weight = opts.MinWeight
			}
		}
		for _, sec := range a.Sectors {
			b, ok := buckets[sec]
			if !ok {
				b = &bucket{}
				buckets[sec] = b
			}
			b.weighted += a.Score * weight
			b.weights += weight
			b.count++
		}
	}

	entries := make([]models.SentimentEntry, 0, len(buckets))
	for sec, b := range buckets {
		weights := b.weights
		if weights == 0 {
			weights = 1
		}
		entries = append(entries, models.SentimentEntry{
			Sector:       sec,
			Sentiment:    b.weighted / weights,
			ArticleCount: b.count,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Sentiment != entries[j].Sentiment {
			return entries[i].Sentiment > entries[j].Sentiment
		}
		return entries[i].Sector < entries[j].Sector
	})
	return entries
}

var _ repository.NewsSource = (*Parser)(nil)
