package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/murtezataher/AgenticAIFYP/internal/logger"
	"github.com/murtezataher/AgenticAIFYP/internal/models"
	"github.com/murtezataher/AgenticAIFYP/internal/recruiter"
	"github.com/murtezataher/AgenticAIFYP/internal/services"
	"github.com/murtezataher/AgenticAIFYP/internal/workflow"
)

type ApplicationHandler struct {
	recruiter      *recruiter.Recruiter
	storageService services.StorageService
	keepUploads    bool
	logger         *zap.Logger
}

func NewApplicationHandler(
	rec *recruiter.Recruiter,
	storageService services.StorageService,
	keepUploads bool,
	log *zap.Logger,
) *ApplicationHandler {
	return &ApplicationHandler{
		recruiter:      rec,
		storageService: storageService,
		keepUploads:    keepUploads,
		logger:         logger.WithFields(log),
	}
}

// HandleListJobs handles GET /jobs
func (h *ApplicationHandler) HandleListJobs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"jobs": h.recruiter.Jobs(),
	})
}

// HandleSubmit handles POST /sessions/:sid/applications
func (h *ApplicationHandler) HandleSubmit(c *fiber.Ctx) error {
	state := stateFrom(c)

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	jobID := ""
	if values := form.Value["job"]; len(values) > 0 {
		jobID = strings.TrimSpace(values[0])
	}
	if jobID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job is required",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files uploaded. Please upload resumes as 'files' (PDF or TXT).",
		})
	}

	uploads := make([]workflow.Upload, 0, len(files))
	for _, file := range files {
		data, err := h.storageService.ReadUpload(file)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		uploads = append(uploads, workflow.Upload{Filename: file.Filename, Data: data})
	}

	log := logger.ForSession(h.logger, c.Params("sid"))
	if h.keepUploads {
		for _, upload := range uploads {
			if _, err := h.storageService.SaveUpload(upload.Filename, upload.Data); err != nil {
				log.Warn("failed to keep uploaded resume", zap.String("file", upload.Filename), zap.Error(err))
			}
		}
	}

	ranking, err := state.Submit(c.UserContext(), jobID, uploads)
	if err != nil {
		return workflowError(c, err)
	}

	log.Info("applications submitted",
		zap.String(logger.FieldJobID, jobID),
		zap.Int("files", len(uploads)),
		zap.Int("ranked", len(ranking)),
	)

	return c.Status(fiber.StatusCreated).JSON(rankingResponse(jobID, ranking))
}

// HandleRanking handles GET /sessions/:sid/applications?job=
func (h *ApplicationHandler) HandleRanking(c *fiber.Ctx) error {
	state := stateFrom(c)

	jobID := strings.TrimSpace(c.Query("job"))
	if _, ok := state.Job(jobID); !ok {
		return workflowError(c, workflow.ErrUnknownJob)
	}

	return c.JSON(rankingResponse(jobID, state.Rank(jobID)))
}

// HandlePending handles GET /sessions/:sid/applications/pending
func (h *ApplicationHandler) HandlePending(c *fiber.Ctx) error {
	state := stateFrom(c)

	pending := []models.PendingEntry{}
	for _, app := range state.ListPending() {
		pending = append(pending, models.PendingEntry{Candidate: app.Candidate, JobID: app.JobID})
	}

	return c.JSON(fiber.Map{
		"applications": pending,
	})
}

func rankingResponse(jobID string, ranking []models.Application) models.RankingResponse {
	response := models.RankingResponse{
		JobID:      jobID,
		Candidates: make([]models.RankingEntry, 0, len(ranking)),
	}
	for _, app := range ranking {
		response.Candidates = append(response.Candidates, models.RankingEntry{
			Candidate: app.Candidate,
			FitScore:  app.FitScore,
			Preview:   app.Preview,
		})
	}
	return response
}
