package workflow

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/murtezataher/AgenticAIFYP/internal/models"
	"github.com/murtezataher/AgenticAIFYP/internal/services"
)

type plainExtractor struct{}

func (plainExtractor) ExtractText(data []byte) string { return string(data) }

// tableScorer scores a candidate text by looking it up; unknown texts score 0.
type tableScorer struct {
	scores map[string]float64
	err    error
	calls  int
}

func (t *tableScorer) Score(_ context.Context, candidateText, _ string) (float64, error) {
	t.calls++
	if t.err != nil {
		return 0, t.err
	}
	return t.scores[candidateText], nil
}

func newTestState(scorer Scorer, opts ...Option) *State {
	return NewState(DefaultCatalog(), plainExtractor{}, scorer, append([]Option{WithSeed(7)}, opts...)...)
}

func upload(name, text string) Upload {
	return Upload{Filename: name, Data: []byte(text)}
}

func TestCandidateName(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"alice.pdf", "alice"},
		{"docs/bob.smith.pdf", "bob.smith"},
		{"carol", "carol"},
		{"  dave.txt ", "dave"},
		{"", ""},
	}

	for _, tc := range cases {
		t.Run(tc.filename, func(t *testing.T) {
			assert.Equal(t, tc.want, CandidateName(tc.filename))
		})
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "...", Preview(""))
	assert.Equal(t, "short...", Preview("short"))

	long := strings.Repeat("é", 400)
	preview := Preview(long)
	assert.Equal(t, strings.Repeat("é", 300)+"...", preview)
}

func TestSubmitRanksByFitScore(t *testing.T) {
	scorer := &tableScorer{scores: map[string]float64{
		"low":    10,
		"high":   90,
		"mid":    50,
		"mid-2":  50,
		"bottom": 0,
	}}
	state := newTestState(scorer)

	ranking, err := state.Submit(context.Background(), "Software Developer", []Upload{
		upload("low.pdf", "low"),
		upload("mid-a.pdf", "mid"),
		upload("high.pdf", "high"),
		upload("mid-b.pdf", "mid-2"),
		upload("bottom.pdf", "bottom"),
	})
	require.NoError(t, err)

	var names []string
	for _, app := range ranking {
		names = append(names, app.Candidate)
	}
	assert.Equal(t, []string{"high", "mid-a", "mid-b", "low", "bottom"}, names)

	for i := 1; i < len(ranking); i++ {
		assert.GreaterOrEqual(t, ranking[i-1].FitScore, ranking[i].FitScore)
	}
	assert.Equal(t, ranking, state.Rank("Software Developer"))
}

func TestSubmitIsIdempotent(t *testing.T) {
	scorer := &tableScorer{scores: map[string]float64{"first": 40, "second": 80}}
	state := newTestState(scorer)
	ctx := context.Background()

	_, err := state.Submit(ctx, "Data Scientist", []Upload{upload("alice.pdf", "first")})
	require.NoError(t, err)

	ranking, err := state.Submit(ctx, "Data Scientist", []Upload{
		upload("alice.pdf", "second"),
		upload("bob.pdf", "first"),
		upload("bob.pdf", "second"),
	})
	require.NoError(t, err)

	require.Len(t, ranking, 2)
	assert.Equal(t, "alice", ranking[0].Candidate)
	assert.Equal(t, float64(40), ranking[0].FitScore)
	assert.Equal(t, "bob", ranking[1].Candidate)
	assert.Equal(t, 2, scorer.calls)
}

func TestSubmitSameCandidateDifferentJobs(t *testing.T) {
	state := newTestState(&tableScorer{})
	ctx := context.Background()

	_, err := state.Submit(ctx, "Data Scientist", []Upload{upload("alice.pdf", "x")})
	require.NoError(t, err)
	_, err = state.Submit(ctx, "Network Engineer", []Upload{upload("alice.pdf", "x")})
	require.NoError(t, err)

	assert.Len(t, state.ListPending(), 2)
}

func TestSubmitUnknownJob(t *testing.T) {
	state := newTestState(&tableScorer{})

	ranking, err := state.Submit(context.Background(), "Astronaut", []Upload{upload("alice.pdf", "x")})
	assert.ErrorIs(t, err, ErrUnknownJob)
	assert.Nil(t, ranking)
	assert.Empty(t, state.ListPending())
}

func TestSubmitDegradesOnScorerError(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	state := newTestState(&tableScorer{err: errors.New("embedding quota exceeded")}, WithLogger(zap.New(core)))

	ranking, err := state.Submit(context.Background(), "Data Scientist", []Upload{upload("alice.pdf", "text")})
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	assert.Equal(t, float64(0), ranking[0].FitScore)

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].ContextMap()["candidate"])
}

func TestSubmitAcceptsEmptyText(t *testing.T) {
	state := newTestState(&tableScorer{})

	ranking, err := state.Submit(context.Background(), "Data Scientist", []Upload{upload("scan.pdf", "")})
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	assert.Equal(t, "scan", ranking[0].Candidate)
	assert.Equal(t, "...", ranking[0].Preview)
	assert.False(t, ranking[0].Interviewed)
}

func TestSubmitClampsScores(t *testing.T) {
	state := newTestState(&tableScorer{scores: map[string]float64{"over": 140, "under": -3}})

	ranking, err := state.Submit(context.Background(), "Data Scientist", []Upload{
		upload("over.pdf", "over"),
		upload("under.pdf", "under"),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(100), ranking[0].FitScore)
	assert.Equal(t, float64(0), ranking[1].FitScore)
}

func TestRankUnknownJobIsEmpty(t *testing.T) {
	state := newTestState(&tableScorer{})
	assert.Empty(t, state.Rank("Data Scientist"))
}

func TestListPendingOrder(t *testing.T) {
	state := newTestState(&tableScorer{})
	ctx := context.Background()

	_, err := state.Submit(ctx, "Network Engineer", []Upload{upload("nina.pdf", ""), upload("ned.pdf", "")})
	require.NoError(t, err)
	_, err = state.Submit(ctx, "Data Scientist", []Upload{upload("dora.pdf", "")})
	require.NoError(t, err)
	_, err = state.Submit(ctx, "Network Engineer", []Upload{upload("nora.pdf", "")})
	require.NoError(t, err)

	var got []string
	for _, app := range state.ListPending() {
		got = append(got, app.Candidate+"/"+app.JobID)
	}
	assert.Equal(t, []string{
		"nina/Network Engineer",
		"ned/Network Engineer",
		"nora/Network Engineer",
		"dora/Data Scientist",
	}, got)
}

func TestRankReturnsCopies(t *testing.T) {
	state := newTestState(&tableScorer{})

	ranking, err := state.Submit(context.Background(), "Data Scientist", []Upload{upload("alice.pdf", "")})
	require.NoError(t, err)
	ranking[0].Interviewed = true

	app, ok := state.Application("alice", "Data Scientist")
	require.True(t, ok)
	assert.False(t, app.Interviewed)
}

func TestLexicalRankingScenario(t *testing.T) {
	scorer := services.NewLexicalScorer(rand.New(rand.NewPCG(1, 2)))
	state := newTestState(scorer)

	ranking, err := state.Submit(context.Background(), "Data Scientist", []Upload{
		upload("bob.pdf", "zzz qqq"),
		upload("alice.pdf", "Senior data scientist with Python, SQL, and machine learning."),
	})
	require.NoError(t, err)
	require.Len(t, ranking, 2)

	assert.Equal(t, "alice", ranking[0].Candidate)
	assert.Greater(t, ranking[0].FitScore, ranking[1].FitScore)
	for _, app := range ranking {
		assert.GreaterOrEqual(t, app.FitScore, float64(0))
		assert.LessOrEqual(t, app.FitScore, float64(100))
	}
}

func TestJobsKeepsCatalogOrder(t *testing.T) {
	catalog := []models.JobPosting{{ID: "b"}, {ID: "a"}, {ID: "b", Description: "dup"}}
	state := NewState(catalog, plainExtractor{}, &tableScorer{})

	jobs := state.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "b", jobs[0].ID)
	assert.Equal(t, "", jobs[0].Description)
	assert.Equal(t, "a", jobs[1].ID)
}
