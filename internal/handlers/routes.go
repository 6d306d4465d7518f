package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/murtezataher/AgenticAIFYP/internal/recruiter"
	"github.com/murtezataher/AgenticAIFYP/internal/services"
	"github.com/murtezataher/AgenticAIFYP/internal/workflow"
)

type RouteConfig struct {
	Registry    *workflow.Registry
	Recruiter   *recruiter.Recruiter
	Storage     services.StorageService
	KeepUploads bool
	Logger      *zap.Logger
}

// RegisterRoutes mounts the recruiter API on router.
func RegisterRoutes(router fiber.Router, cfg RouteConfig) {
	sessionHandler := NewSessionHandler(cfg.Registry)
	applicationHandler := NewApplicationHandler(cfg.Recruiter, cfg.Storage, cfg.KeepUploads, cfg.Logger)
	interviewHandler := NewInterviewHandler(cfg.Recruiter, cfg.Logger)
	shortlistHandler := NewShortlistHandler(cfg.Recruiter)

	router.Get("/jobs", applicationHandler.HandleListJobs)
	router.Get("/archive/shortlist", shortlistHandler.HandleArchive)

	router.Post("/sessions", sessionHandler.HandleCreate)
	router.Delete("/sessions/:sid", sessionHandler.HandleDelete)

	session := router.Group("/sessions/:sid", sessionHandler.RequireSession)
	session.Post("/applications", applicationHandler.HandleSubmit)
	session.Get("/applications", applicationHandler.HandleRanking)
	session.Get("/applications/pending", applicationHandler.HandlePending)

	session.Post("/interview", interviewHandler.HandleStart)
	session.Get("/interview", interviewHandler.HandleCurrent)
	session.Post("/interview/answers", interviewHandler.HandleAnswer)
	session.Delete("/interview", interviewHandler.HandleAbandon)

	session.Get("/shortlist", shortlistHandler.HandleShortlist)
}
