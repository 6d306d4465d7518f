package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/murtezataher/AgenticAIFYP/internal/logger"
	"github.com/murtezataher/AgenticAIFYP/internal/models"
	"github.com/murtezataher/AgenticAIFYP/internal/recruiter"
	"github.com/murtezataher/AgenticAIFYP/internal/workflow"
)

type InterviewHandler struct {
	recruiter *recruiter.Recruiter
	logger    *zap.Logger
}

func NewInterviewHandler(rec *recruiter.Recruiter, log *zap.Logger) *InterviewHandler {
	return &InterviewHandler{
		recruiter: rec,
		logger:    logger.WithFields(log),
	}
}

// HandleStart handles POST /sessions/:sid/interview
func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	var req models.StartInterviewRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	req.Candidate = strings.TrimSpace(req.Candidate)
	req.JobID = strings.TrimSpace(req.JobID)
	if req.Candidate == "" || req.JobID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "candidate and job are required",
		})
	}

	question, err := stateFrom(c).StartInterview(req.Candidate, req.JobID)
	if err != nil {
		return workflowError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(questionResponse(question))
}

// HandleCurrent handles GET /sessions/:sid/interview
func (h *InterviewHandler) HandleCurrent(c *fiber.Ctx) error {
	question, ok := stateFrom(c).CurrentQuestion()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no active question",
		})
	}

	return c.JSON(questionResponse(question))
}

// HandleAnswer handles POST /sessions/:sid/interview/answers
func (h *InterviewHandler) HandleAnswer(c *fiber.Ctx) error {
	var req models.AnswerRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	sessionID := c.Params("sid")
	log := logger.ForSession(h.logger, sessionID)
	log.Debug("answer received",
		zap.Int("question", req.Question),
		zap.String("answer", logger.TruncateForLog(req.Answer, 80)),
	)

	outcome := stateFrom(c).SubmitAnswer(req.Question, req.Answer)
	response := models.AnswerResponse{Status: outcome.Status.String()}

	switch outcome.Status {
	case workflow.AnswerNoActiveQuestion:
		return c.Status(fiber.StatusConflict).JSON(response)
	case workflow.AnswerNextQuestion:
		question := questionResponse(outcome.Question)
		response.Question = &question
	case workflow.AnswerCompleted:
		result := outcome.Result
		response.Result = &result
		if err := h.recruiter.ArchiveResult(sessionID, result); err != nil {
			log.Warn("interview result kept in session only", logger.ApplicationFields(result.Candidate, result.JobID)...)
		}
	}

	return c.JSON(response)
}

// HandleAbandon handles DELETE /sessions/:sid/interview
func (h *InterviewHandler) HandleAbandon(c *fiber.Ctx) error {
	if !stateFrom(c).AbandonInterview() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no active interview",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func questionResponse(q workflow.Question) models.QuestionResponse {
	return models.QuestionResponse{
		Candidate: q.Candidate,
		JobID:     q.JobID,
		Number:    q.Number,
		Total:     q.Total,
		Text:      q.Text,
	}
}
