package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"maternal-care-service/internal/adapters/primary/http/dto"
)

func (h *Handler) GetEducation(c *gin.Context) {
	items, err := h.contentSvc.Education(c.Request.Context(), c.Param("language"))
	if err != nil {
		log.WithError(err).Error("get education content failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEducationResponse(items))
}

func (h *Handler) GetFAQ(c *gin.Context) {
	items, err := h.contentSvc.FAQ(c.Request.Context(), c.Param("language"))
	if err != nil {
		log.WithError(err).Error("get faq content failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFAQResponse(items))
}

// AskAssistant answers a free-text query from the keyword rules
func (h *Handler) AskAssistant(c *gin.Context) {
	var req dto.AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.AssistantResponse{Response: h.assistantSvc.Respond(req.Query)})
}
