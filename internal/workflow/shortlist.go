package workflow

import (
	"slices"
	"sort"

	"github.com/murtezataher/AgenticAIFYP/internal/models"
)

const DefaultShortlistSize = 3

type Shortlist struct {
	JobID      string
	Candidates []models.Result
}

// TopCandidates returns at most limit results for a job, best interview
// score first. A non-positive limit means DefaultShortlistSize.
func (s *State) TopCandidates(jobID string, limit int) []models.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.topCandidates(jobID, limit)
}

func (s *State) topCandidates(jobID string, limit int) []models.Result {
	if limit <= 0 {
		limit = DefaultShortlistSize
	}

	top := []models.Result{}
	for _, result := range s.results {
		if result.JobID == jobID {
			top = append(top, cloneResult(result))
		}
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Score > top[j].Score
	})

	if len(top) > limit {
		top = top[:limit]
	}
	return top
}

// Shortlists returns one shortlist per job with results, in the order the
// jobs got their first result.
func (s *State) Shortlists(limit int) []Shortlist {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		shortlists []Shortlist
		seen       = make(map[string]bool)
	)
	for _, result := range s.results {
		if seen[result.JobID] {
			continue
		}
		seen[result.JobID] = true
		shortlists = append(shortlists, Shortlist{
			JobID:      result.JobID,
			Candidates: s.topCandidates(result.JobID, limit),
		})
	}

	return shortlists
}

// Results returns every completed interview in completion order.
func (s *State) Results() []models.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]models.Result, 0, len(s.results))
	for _, result := range s.results {
		results = append(results, cloneResult(result))
	}
	return results
}

// cloneResult detaches the answer list so callers cannot reach the stored
// result through it.
func cloneResult(result models.Result) models.Result {
	result.Answers = slices.Clone(result.Answers)
	return result
}
