package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"maternal-care-service/internal/adapters/primary/http/dto"
)

// Predict forwards {"data": ...} to the backend named in the path
func (h *Handler) Predict(c *gin.Context) {
	backend := c.Param("backend")

	var req dto.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// an unavailable backend wins over a malformed body
		if uerr := h.inferenceSvc.Check(backend); uerr != nil {
			mapDomainError(c, uerr)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prediction, err := h.inferenceSvc.Predict(c.Request.Context(), backend, req.Data)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PredictResponse{Prediction: prediction})
}

// ListModels reports the load state of every registered backend
func (h *Handler) ListModels(c *gin.Context) {
	states := h.registry.States()

	items := make([]dto.ModelStatusResponse, 0, len(states))
	for _, s := range states {
		items = append(items, dto.ToModelStatusResponse(s))
	}

	c.JSON(http.StatusOK, dto.ListModelsResponse{
		Items: items,
		Total: len(items),
	})
}
