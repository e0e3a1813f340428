package conceptgraph

import (
	"context"

	"github.com/lodestar-learning/lodestar-backend/internal/domain"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/logger"
)

// Source supplies a point-in-time snapshot of the concept graph. The neo4j
// store and the in-memory test source both implement it.
type Source interface {
	Snapshot(ctx context.Context) ([]domain.ConceptNode, []domain.PrerequisiteEdge, error)
}

// Accessor answers graph queries against a fresh Source snapshot per call.
// It is stateless and fail-soft: a store failure logs and degrades to the
// empty answer instead of propagating.
type Accessor struct {
	src Source
	log *logger.Logger
}

func NewAccessor(src Source, baseLog *logger.Logger) *Accessor {
	return &Accessor{src: src, log: baseLog.With("component", "ConceptGraphAccessor")}
}

// Graph loads a snapshot and builds the adjacency. Callers that need several
// queries against one consistent view should use this once and query the
// returned Adjacency directly.
func (a *Accessor) Graph(ctx context.Context) (*Adjacency, error) {
	nodes, edges, err := a.src.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return NewAdjacency(nodes, edges), nil
}

// RootConcepts returns all concepts with zero incoming prerequisite edges,
// sorted. Store failure logs and returns the empty list.
func (a *Accessor) RootConcepts(ctx context.Context) []string {
	g, err := a.Graph(ctx)
	if err != nil {
		a.log.Error("root concepts lookup failed", "error", err)
		return []string{}
	}
	return g.Roots()
}

// ShortestPathFromAnyRoot returns nil when the target is absent, unreachable
// or the store failed.
func (a *Accessor) ShortestPathFromAnyRoot(ctx context.Context, target string) []string {
	g, err := a.Graph(ctx)
	if err != nil {
		a.log.Error("shortest path lookup failed", "error", err, "target", target)
		return nil
	}
	return g.ShortestPathFromAnyRoot(target)
}

func (a *Accessor) ConceptExists(ctx context.Context, name string) bool {
	g, err := a.Graph(ctx)
	if err != nil {
		a.log.Error("concept existence check failed", "error", err, "concept", name)
		return false
	}
	return g.Exists(name)
}

// Neighborhood returns nil when the concept is absent or the store failed.
func (a *Accessor) Neighborhood(ctx context.Context, name string) *domain.Neighborhood {
	g, err := a.Graph(ctx)
	if err != nil {
		a.log.Error("neighborhood lookup failed", "error", err, "concept", name)
		return nil
	}
	return g.Neighborhood(name)
}
