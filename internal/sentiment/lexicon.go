package sentiment

import (
	"regexp"
	"strings"
)

var tokenRe = regexp.MustCompile(`[A-Za-z']+`)

// Lexicon maps lowercased terms to signed weights. Positive terms push a
// text's score up, negative terms push it down.
type Lexicon struct {
	weights map[string]float64
}

// NewLexicon builds a lexicon from explicit term weights.
func NewLexicon(weights map[string]float64) *Lexicon {
	w := make(map[string]float64, len(weights))
	for term, weight := range weights {
		w[strings.ToLower(term)] = weight
	}
	return &Lexicon{weights: w}
}

// Score tokenizes text and returns the summed term weights divided by the
// token count. Empty or non-alphabetic text scores 0.
func (l *Lexicon) Score(text string) float64 {
	tokens := tokenRe.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return 0
	}
	var sum float64
	for _, tok := range tokens {
		sum += l.weights[tok]
	}
	return sum / float64(len(tokens))
}

var positiveWords = []string{
	"growth", "gain", "gains", "improve", "improved", "improving",
	"surge", "surged", "surging", "strong", "bullish", "optimistic",
	"upbeat", "record", "beat", "beats", "beating", "exceed", "exceeds",
	"expansion", "expand", "expands", "expanding", "profit", "profitable",
	"profits", "advances", "advance", "advanced", "resilient", "tailwind",
	"outperform", "outperformance", "lead", "leading", "positive",
	"constructive", "encourage", "encouraging", "solid",
}

var negativeWords = []string{
	"loss", "losses", "decline", "declines", "declining", "drop", "drops",
	"dropped", "drag", "headwind", "bearish", "weak", "weaker", "weakness",
	"concern", "concerns", "risk", "risks", "volatile", "volatility",
	"selloff", "sell-off", "fear", "fears", "slowdown", "slowing",
	"recession", "warning", "warns", "warned", "pressure", "pressures",
	"problem", "problems", "challenge", "challenges", "uncertain",
	"uncertainty", "negative",
}

// Default returns the built-in financial-news lexicon: unit weight +1 for
// positive terms and -1 for negative terms.
func Default() *Lexicon {
	weights := make(map[string]float64, len(positiveWords)+len(negativeWords))
	for _, w := range positiveWords {
		weights[w] = 1
	}
	for _, w := range negativeWords {
		weights[w] = -1
	}
	return NewLexicon(weights)
}
