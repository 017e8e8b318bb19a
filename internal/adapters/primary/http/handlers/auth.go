package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"maternal-care-service/internal/adapters/primary/http/dto"
)

func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		log.WithField("email", req.Email).Info("login rejected")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{User: dto.ToUserResponse(user)})
}
