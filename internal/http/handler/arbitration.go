package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"arbiterhq.io/arbiter/internal/http/dto"
	"arbiterhq.io/arbiter/internal/model"
	"arbiterhq.io/arbiter/internal/service"
)

type ArbitrationHandler struct {
	coordinator service.ArbitrationCoordinator
}

func NewArbitrationHandler(coordinator service.ArbitrationCoordinator) *ArbitrationHandler {
	return &ArbitrationHandler{coordinator: coordinator}
}

// Arbitrate runs the full arbitration flow and always answers 200 with a
// structured result; FAIL results carry the internal error in
// critical_issues rather than surfacing as a 5xx.
func (h *ArbitrationHandler) Arbitrate(c *gin.Context) {
	var req dto.ArbitrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	initiator := req.Initiator
	if initiator == "" {
		initiator = "api"
	}

	recommendations := make([]model.Recommendation, 0, len(req.Recommendations))
	for _, rec := range req.Recommendations {
		recommendations = append(recommendations, model.Recommendation{
			ActorID:    rec.ActorID,
			ArtifactID: rec.ArtifactID,
			Category:   rec.Category,
			Text:       rec.Text,
			Confidence: rec.Confidence,
		})
	}

	result := h.coordinator.Arbitrate(c.Request.Context(), service.ArbitrationRequest{
		Scope:           req.Scope,
		Initiator:       initiator,
		DryRun:          req.DryRun,
		Recommendations: recommendations,
	})

	c.JSON(http.StatusOK, result)
}
