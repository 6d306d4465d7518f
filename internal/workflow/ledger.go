package workflow

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/murtezataher/AgenticAIFYP/internal/models"
)

const previewLength = 300

var ErrUnknownJob = errors.New("unknown job")

// Upload is a single document handed to Submit.
type Upload struct {
	Filename string
	Data     []byte
}

// CandidateName derives the candidate identity from an uploaded file name.
func CandidateName(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Preview returns the display excerpt of an extracted text.
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) > previewLength {
		runes = runes[:previewLength]
	}
	return string(runes) + "..."
}

// Submit records one application per upload for jobID and returns the
// updated ranking for that job. Uploads whose candidate already applied to
// the job are skipped. Extraction and scoring problems never abort intake.
func (s *State) Submit(ctx context.Context, jobID string, uploads []Upload) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.catalog[jobID]
	if !ok {
		return nil, ErrUnknownJob
	}

	for _, upload := range uploads {
		candidate := CandidateName(upload.Filename)
		if candidate == "" {
			s.logger.Warn("upload without a usable file name skipped", zap.String("job_id", jobID))
			continue
		}

		if s.findApplication(candidate, jobID) != nil {
			s.logger.Debug("duplicate application skipped",
				zap.String("candidate", candidate),
				zap.String("job_id", jobID),
			)
			continue
		}

		text := ""
		if s.extractor != nil {
			text = s.extractor.ExtractText(upload.Data)
		}

		fit := s.score(ctx, candidate, text, job)

		if _, seen := s.applications[jobID]; !seen {
			s.jobOrder = append(s.jobOrder, jobID)
		}
		s.applications[jobID] = append(s.applications[jobID], &models.Application{
			Candidate: candidate,
			JobID:     jobID,
			Text:      text,
			Preview:   Preview(text),
			FitScore:  fit,
		})

		s.logger.Info("application recorded",
			zap.String("candidate", candidate),
			zap.String("job_id", jobID),
			zap.Float64("fit_score", fit),
			zap.Int("text_length", len(text)),
		)
	}

	return s.rank(jobID), nil
}

func (s *State) score(ctx context.Context, candidate, text string, job models.JobPosting) float64 {
	if s.scorer == nil {
		return 0
	}

	fit, err := s.scorer.Score(ctx, text, job.Description)
	if err != nil {
		s.logger.Warn("scoring failed, recording zero fit score",
			zap.String("candidate", candidate),
			zap.String("job_id", job.ID),
			zap.Error(err),
		)
		return 0
	}

	switch {
	case fit < 0:
		return 0
	case fit > 100:
		return 100
	}
	return fit
}

// Rank returns the applications of a job ordered by fit score, highest
// first. Equal scores keep submission order.
func (s *State) Rank(jobID string) []models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rank(jobID)
}

func (s *State) rank(jobID string) []models.Application {
	apps := s.applications[jobID]
	ranking := make([]models.Application, 0, len(apps))
	for _, app := range apps {
		ranking = append(ranking, *app)
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].FitScore > ranking[j].FitScore
	})

	return ranking
}

// ListPending returns every application not yet interviewed, grouped by
// job in the order jobs first received applications.
func (s *State) ListPending() []models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []models.Application
	for _, jobID := range s.jobOrder {
		for _, app := range s.applications[jobID] {
			if !app.Interviewed {
				pending = append(pending, *app)
			}
		}
	}

	return pending
}

// Application looks up a single application.
func (s *State) Application(candidate, jobID string) (models.Application, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app := s.findApplication(candidate, jobID)
	if app == nil {
		return models.Application{}, false
	}
	return *app, true
}

func (s *State) findApplication(candidate, jobID string) *models.Application {
	for _, app := range s.applications[jobID] {
		if app.Candidate == candidate {
			return app
		}
	}
	return nil
}
