package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"arbiterhq.io/arbiter/internal/service"
	"arbiterhq.io/arbiter/internal/store"
)

type DebateHandler struct {
	orchestrator service.DebateOrchestrator
	verdicts     store.VerdictStore
}

func NewDebateHandler(orchestrator service.DebateOrchestrator, verdicts store.VerdictStore) *DebateHandler {
	return &DebateHandler{
		orchestrator: orchestrator,
		verdicts:     verdicts,
	}
}

// Get returns a debate session with its arguments and verdict (if rendered).
func (h *DebateHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid debate session id"})
		return
	}

	ctx := c.Request.Context()

	session, err := h.orchestrator.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "debate session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	arguments, err := h.orchestrator.Arguments(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := gin.H{
		"session":   session,
		"arguments": arguments,
	}

	verdict, err := h.verdicts.GetBySession(ctx, id)
	switch {
	case err == nil:
		response["verdict"] = verdict
	case errors.Is(err, store.ErrNotFound):
		// No verdict yet; session still active or abandoned.
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}
