package registry

import (
	"fmt"
	"sort"
)

// Leader is one bellwether ticker standing in for part of a sector.
// The ticker matches articles as a whole token; name and aliases match as
// word-boundary prefixes (see the news parser).
type Leader struct {
	Ticker  string
	Name    string
	Aliases []string
}

// Sector groups the bellwether leaders representing one equity sector.
type Sector struct {
	Name    string
	Leaders []Leader
}

// Registry is the immutable sector -> leaders configuration driving both
// the news matcher and the market aggregator.
type Registry struct {
	sectors []Sector
}

// New builds a registry from the given sectors, ordered by sector name so
// that iteration order is deterministic.
func New(sectors []Sector) (*Registry, error) {
	if len(sectors) == 0 {
		return nil, fmt.Errorf("registry requires at least one sector")
	}
	seen := make(map[string]bool, len(sectors))
	out := make([]Sector, 0, len(sectors))
	for _, s := range sectors {
		if s.Name == "" {
			return nil, fmt.Errorf("sector name required")
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate sector %q", s.Name)
		}
		if len(s.Leaders) == 0 {
			return nil, fmt.Errorf("sector %q has no leaders", s.Name)
		}
		seen[s.Name] = true
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return &Registry{sectors: out}, nil
}

// Sectors returns the sectors in name order.
func (r *Registry) Sectors() []Sector { return r.sectors }

// SectorNames returns every sector name in order.
func (r *Registry) SectorNames() []string {
	names := make([]string, len(r.sectors))
	for i, s := range r.sectors {
		names[i] = s.Name
	}
	return names
}

// Tickers returns every leader ticker across all sectors, in sector then
// leader order, without duplicates.
func (r *Registry) Tickers() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range r.sectors {
		for _, l := range s.Leaders {
			if !seen[l.Ticker] {
				seen[l.Ticker] = true
				out = append(out, l.Ticker)
			}
		}
	}
	return out
}

// Default returns the built-in eleven-sector registry of U.S. large caps.
func Default() *Registry {
	r, err := New([]Sector{
		{Name: "Information Technology", Leaders: []Leader{
			{Ticker: "AAPL", Name: "Apple", Aliases: []string{"iphone", "macbook"}},
			{Ticker: "MSFT", Name: "Microsoft", Aliases: []string{"azure", "windows"}},
			{Ticker: "NVDA", Name: "Nvidia", Aliases: []string{"geforce", "cuda"}},
		}},
		{Name: "Communication Services", Leaders: []Leader{
			{Ticker: "GOOGL", Name: "Alphabet", Aliases: []string{"google", "youtube"}},
			{Ticker: "META", Name: "Meta Platforms", Aliases: []string{"facebook", "instagram"}},
			{Ticker: "NFLX", Name: "Netflix"},
		}},
		{Name: "Consumer Discretionary", Leaders: []Leader{
			{Ticker: "AMZN", Name: "Amazon", Aliases: []string{"aws", "prime"}},
			{Ticker: "TSLA", Name: "Tesla"},
			{Ticker: "HD", Name: "Home Depot"},
		}},
		{Name: "Financials", Leaders: []Leader{
			{Ticker: "JPM", Name: "JPMorgan Chase", Aliases: []string{"j.p. morgan", "jp morgan"}},
			{Ticker: "BAC", Name: "Bank of America"},
			{Ticker: "V", Name: "Visa"},
		}},
		{Name: "Health Care", Leaders: []Leader{
			{Ticker: "UNH", Name: "UnitedHealth", Aliases: []string{"optum"}},
			{Ticker: "JNJ", Name: "Johnson & Johnson", Aliases: []string{"janssen"}},
			{Ticker: "PFE", Name: "Pfizer"},
		}},
		{Name: "Industrials", Leaders: []Leader{
			{Ticker: "CAT", Name: "Caterpillar"},
			{Ticker: "HON", Name: "Honeywell"},
			{Ticker: "BA", Name: "Boeing"},
		}},
		{Name: "Energy", Leaders: []Leader{
			{Ticker: "XOM", Name: "Exxon Mobil", Aliases: []string{"exxon", "mobil"}},
			{Ticker: "CVX", Name: "Chevron"},
			{Ticker: "SLB", Name: "Schlumberger", Aliases: []string{"slb"}},
		}},
		{Name: "Consumer Staples", Leaders: []Leader{
			{Ticker: "PG", Name: "Procter & Gamble", Aliases: []string{"p&g", "tide"}},
			{Ticker: "KO", Name: "Coca-Cola", Aliases: []string{"coke"}},
			{Ticker: "PEP", Name: "PepsiCo", Aliases: []string{"pepsi"}},
		}},
		{Name: "Utilities", Leaders: []Leader{
			{Ticker: "NEE", Name: "NextEra Energy"},
			{Ticker: "DUK", Name: "Duke Energy"},
			{Ticker: "SO", Name: "Southern Company", Aliases: []string{"southern co"}},
		}},
		{Name: "Real Estate", Leaders: []Leader{
			{Ticker: "PLD", Name: "Prologis"},
			{Ticker: "AMT", Name: "American Tower"},
			{Ticker: "EQIX", Name: "Equinix"},
		}},
		{Name: "Materials", Leaders: []Leader{
			{Ticker: "LIN", Name: "Linde"},
			{Ticker: "SHW", Name: "Sherwin-Williams", Aliases: []string{"sherwin williams"}},
			{Ticker: "NEM", Name: "Newmont"},
		}},
	})
	if err != nil {
		panic(err) // static data, cannot fail
	}
	return r
}
