package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lodestar-learning/lodestar-backend/internal/domain"
	"github.com/lodestar-learning/lodestar-backend/internal/http/response"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/logger"
)

// PathResolver computes a study plan; nil means no path could be resolved.
type PathResolver interface {
	ResolvePath(ctx context.Context, userRef, targetConcept string, timeBudgetMinutes int) *domain.LearningPath
}

type PathHandler struct {
	resolver PathResolver
	log      *logger.Logger
}

func NewPathHandler(resolver PathResolver, baseLog *logger.Logger) *PathHandler {
	return &PathHandler{resolver: resolver, log: baseLog.With("handler", "PathHandler")}
}

// Resolve handles GET /api/path/resolve?target=...&budget_minutes=...
func (h *PathHandler) Resolve(c *gin.Context) {
	target := c.Query("target")
	if target == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_target", errors.New("target query parameter is required"))
		return
	}
	budget, err := strconv.Atoi(c.Query("budget_minutes"))
	if err != nil || budget < 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_budget", errors.New("budget_minutes must be a non-negative integer"))
		return
	}

	path := h.resolver.ResolvePath(c.Request.Context(), userRef(c), target, budget)
	if path == nil {
		response.RespondError(c, http.StatusNotFound, "no_path", errors.New("no path found to target concept"))
		return
	}
	response.RespondOK(c, path)
}

// userRef reads the caller identity header. Empty means an anonymous caller
// with no recorded progress.
func userRef(c *gin.Context) string {
	return c.GetHeader("X-User-ID")
}
