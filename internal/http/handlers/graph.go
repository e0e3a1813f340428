package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lodestar-learning/lodestar-backend/internal/domain"
	"github.com/lodestar-learning/lodestar-backend/internal/http/response"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/logger"
)

type GraphViewer interface {
	FullGraph(ctx context.Context, userRef string) *domain.GraphView
}

type NeighborhoodProvider interface {
	Neighborhood(ctx context.Context, name string) *domain.Neighborhood
}

type GraphHandler struct {
	viewer        GraphViewer
	neighborhoods NeighborhoodProvider
	log           *logger.Logger
}

func NewGraphHandler(viewer GraphViewer, neighborhoods NeighborhoodProvider, baseLog *logger.Logger) *GraphHandler {
	return &GraphHandler{
		viewer:        viewer,
		neighborhoods: neighborhoods,
		log:           baseLog.With("handler", "GraphHandler"),
	}
}

// Full handles GET /api/graph
func (h *GraphHandler) Full(c *gin.Context) {
	response.RespondOK(c, h.viewer.FullGraph(c.Request.Context(), userRef(c)))
}

// Neighborhood handles GET /api/graph/neighborhood/:name
func (h *GraphHandler) Neighborhood(c *gin.Context) {
	n := h.neighborhoods.Neighborhood(c.Request.Context(), c.Param("name"))
	if n == nil {
		response.RespondError(c, http.StatusNotFound, "unknown_concept", errors.New("concept not found"))
		return
	}
	response.RespondOK(c, n)
}
