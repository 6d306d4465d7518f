package services

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	keywordWeight = 10
	jitterMin     = 20
	jitterMax     = 40
)

// LexicalScorer rates a candidate by how many job description words appear
// in the resume, plus a small random bonus.
type LexicalScorer struct {
	mu    sync.Mutex
	rng   *rand.Rand
	lower cases.Caser
}

func NewLexicalScorer(rng *rand.Rand) *LexicalScorer {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &LexicalScorer{
		rng:   rng,
		lower: cases.Lower(language.Und),
	}
}

func (l *LexicalScorer) Score(_ context.Context, candidateText, jobDescription string) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	matches := keywordMatches(l.lower.String(candidateText), l.lower.String(jobDescription))
	jitter := jitterMin + l.rng.IntN(jitterMax-jitterMin+1)

	return float64(min(100, matches*keywordWeight+jitter)), nil
}

// keywordMatches counts the whitespace separated words of description that
// occur anywhere in text. Repeated words count every time.
func keywordMatches(text, description string) int {
	count := 0
	for _, keyword := range strings.Fields(description) {
		if strings.Contains(text, keyword) {
			count++
		}
	}
	return count
}
