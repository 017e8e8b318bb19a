package handlers

import (
	"maternal-care-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	inferenceSvc *services.InferenceGateway
	registry     *services.ModelRegistry
	contentSvc   *services.ContentCatalog
	assistantSvc *services.AssistantService
	authSvc      *services.CredentialChecker
	db           Pinger
}

func New(
	inferenceSvc *services.InferenceGateway,
	registry *services.ModelRegistry,
	contentSvc *services.ContentCatalog,
	assistantSvc *services.AssistantService,
	authSvc *services.CredentialChecker,
) *Handler {
	return &Handler{
		inferenceSvc: inferenceSvc,
		registry:     registry,
		contentSvc:   contentSvc,
		assistantSvc: assistantSvc,
		authSvc:      authSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Predictions
	r.POST("/predict/:backend", h.Predict)
	r.GET("/models", h.ListModels)

	// Content
	r.GET("/education/:language", h.GetEducation)
	r.GET("/faq/:language", h.GetFAQ)

	// Assistant
	r.POST("/ai-assistant", h.AskAssistant)

	// Auth
	r.POST("/login", h.Login)
}

// RegisterHealthRoutes mounts /healthz outside the API group
func (h *Handler) RegisterHealthRoutes(r gin.IRoutes) {
	r.GET("/healthz", h.Health)
}
