package models

import "errors"

// Pipeline error taxonomy. Per-ticker and per-sector errors are recovered
// locally and surfaced as report annotations; only ErrInputFormat and
// ErrEmptyRanking abort a run.
var (
	// ErrInputFormat means no valid JSON array could be recovered from
	// the news dump.
	ErrInputFormat = errors.New("news dump format invalid")

	// ErrDataUnavailable means the provider returned no price data for a
	// ticker. The ticker is excluded from its sector's sum.
	ErrDataUnavailable = errors.New("no price data available")

	// ErrInsufficientData means a sector's market-cap series has fewer
	// than two points, so growth cannot be computed.
	ErrInsufficientData = errors.New("insufficient data points")

	// ErrEmptyRanking means no sector ended up with at least one signal.
	ErrEmptyRanking = errors.New("no sector has a usable signal")
)
