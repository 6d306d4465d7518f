package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/murtezataher/AgenticAIFYP/internal/models"
	"github.com/murtezataher/AgenticAIFYP/internal/recruiter"
	"github.com/murtezataher/AgenticAIFYP/internal/workflow"
)

type ShortlistHandler struct {
	recruiter *recruiter.Recruiter
}

func NewShortlistHandler(rec *recruiter.Recruiter) *ShortlistHandler {
	return &ShortlistHandler{recruiter: rec}
}

// HandleShortlist handles GET /sessions/:sid/shortlist?job=&limit=
// Without a job every job with results is listed.
func (h *ShortlistHandler) HandleShortlist(c *fiber.Ctx) error {
	state := stateFrom(c)
	limit := c.QueryInt("limit", workflow.DefaultShortlistSize)

	if jobID := strings.TrimSpace(c.Query("job")); jobID != "" {
		if _, ok := state.Job(jobID); !ok {
			return workflowError(c, workflow.ErrUnknownJob)
		}
		return c.JSON(shortlistResponse(jobID, state.TopCandidates(jobID, limit)))
	}

	shortlists := []models.ShortlistResponse{}
	for _, shortlist := range state.Shortlists(limit) {
		shortlists = append(shortlists, shortlistResponse(shortlist.JobID, shortlist.Candidates))
	}

	return c.JSON(fiber.Map{
		"shortlists": shortlists,
	})
}

// HandleArchive handles GET /archive/shortlist?job=&limit=
func (h *ShortlistHandler) HandleArchive(c *fiber.Ctx) error {
	jobID := strings.TrimSpace(c.Query("job"))
	if jobID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job is required",
		})
	}

	archived, enabled, err := h.recruiter.ArchivedShortlist(jobID, c.QueryInt("limit", workflow.DefaultShortlistSize))
	if !enabled {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "result archive is disabled",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read archived results",
		})
	}

	response := models.ShortlistResponse{JobID: jobID, Candidates: []models.ShortlistEntry{}}
	for _, result := range archived {
		response.Candidates = append(response.Candidates, models.ShortlistEntry{
			Name:     result.Candidate,
			Score:    result.Score,
			Feedback: result.Feedback,
		})
	}

	return c.JSON(response)
}

func shortlistResponse(jobID string, results []models.Result) models.ShortlistResponse {
	response := models.ShortlistResponse{
		JobID:      jobID,
		Candidates: make([]models.ShortlistEntry, 0, len(results)),
	}
	for _, result := range results {
		response.Candidates = append(response.Candidates, models.ShortlistEntry{
			Name:     result.Candidate,
			Score:    result.Score,
			Feedback: result.Feedback,
		})
	}
	return response
}
