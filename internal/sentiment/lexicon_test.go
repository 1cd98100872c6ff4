package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorePositive(t *testing.T) {
	lex := Default()
	got := lex.Score("Strong growth and record profits")
	assert.Greater(t, got, 0.0)
}

func TestScoreNegative(t *testing.T) {
	lex := Default()
	got := lex.Score("Weak demand and mounting losses spark recession fears")
	assert.Less(t, got, 0.0)
}

func TestScoreNormalizedByLength(t *testing.T) {
	lex := Default()
	short := lex.Score("growth")
	long := lex.Score("growth in the quarter was tempered by many unrelated words about nothing")
	assert.Greater(t, short, long)
}

func TestScoreCaseInsensitive(t *testing.T) {
	lex := Default()
	assert.Equal(t, lex.Score("BULLISH SURGE"), lex.Score("bullish surge"))
}

func TestScoreEmpty(t *testing.T) {
	lex := Default()
	assert.Zero(t, lex.Score(""))
	assert.Zero(t, lex.Score("1234 !!!"))
}

func TestScoreMixedCancelsOut(t *testing.T) {
	lex := Default()
	assert.Zero(t, lex.Score("gain loss"))
}

func TestCustomWeights(t *testing.T) {
	lex := NewLexicon(map[string]float64{"Moonshot": 2})
	assert.InDelta(t, 2.0/3.0, lex.Score("a moonshot idea"), 1e-12)
}
