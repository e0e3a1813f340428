package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lodestar-learning/lodestar-backend/internal/http/response"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/logger"
)

type Navigator interface {
	UnlockedConcepts(ctx context.Context, userRef string) []string
	ValidatePrerequisites(ctx context.Context, userRef, concept string) bool
}

type ProgressWriter interface {
	MarkInProgress(ctx context.Context, userRef, concept string) bool
	MarkCompleted(ctx context.Context, userRef, concept string) bool
}

type ProgressHandler struct {
	navigator Navigator
	writer    ProgressWriter
	log       *logger.Logger
}

func NewProgressHandler(navigator Navigator, writer ProgressWriter, baseLog *logger.Logger) *ProgressHandler {
	return &ProgressHandler{
		navigator: navigator,
		writer:    writer,
		log:       baseLog.With("handler", "ProgressHandler"),
	}
}

// Unlocked handles GET /api/concepts/unlocked
func (h *ProgressHandler) Unlocked(c *gin.Context) {
	response.RespondOK(c, h.navigator.UnlockedConcepts(c.Request.Context(), userRef(c)))
}

// CheckPrerequisites handles GET /api/concepts/:name/prerequisites/check
func (h *ProgressHandler) CheckPrerequisites(c *gin.Context) {
	satisfied := h.navigator.ValidatePrerequisites(c.Request.Context(), userRef(c), c.Param("name"))
	response.RespondOK(c, gin.H{"satisfied": satisfied})
}

// Start handles POST /api/concepts/:name/progress/start
func (h *ProgressHandler) Start(c *gin.Context) {
	ref := userRef(c)
	if ref == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_user", errors.New("X-User-ID header is required"))
		return
	}
	ok := h.writer.MarkInProgress(c.Request.Context(), ref, c.Param("name"))
	response.RespondOK(c, gin.H{"ok": ok})
}

// Complete handles POST /api/concepts/:name/progress/complete
func (h *ProgressHandler) Complete(c *gin.Context) {
	ref := userRef(c)
	if ref == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_user", errors.New("X-User-ID header is required"))
		return
	}
	ok := h.writer.MarkCompleted(c.Request.Context(), ref, c.Param("name"))
	response.RespondOK(c, gin.H{"ok": ok})
}
