package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/lodestar-learning/lodestar-backend/internal/conceptgraph"
	"github.com/lodestar-learning/lodestar-backend/internal/domain"
	"github.com/lodestar-learning/lodestar-backend/internal/normalization"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/logger"
)

// Estimator prices concept batches in study minutes.
type Estimator interface {
	Estimate(ctx context.Context, concepts []string) int
	EstimateOne(ctx context.Context, concept string) int
}

// PathResolverService computes the ordered study plan to a target concept:
// prerequisite chain from a root, minus completed concepts, pruned to the
// time budget.
type PathResolverService struct {
	graph     GraphProvider
	progress  ProgressReader
	estimator Estimator
	log       *logger.Logger
}

func NewPathResolverService(graph GraphProvider, progressReader ProgressReader, estimator Estimator, baseLog *logger.Logger) *PathResolverService {
	return &PathResolverService{
		graph:     graph,
		progress:  progressReader,
		estimator: estimator,
		log:       baseLog.With("service", "PathResolverService"),
	}
}

// ResolvePath returns nil when no path can be computed (unknown target,
// unreachable target, or store failure). An empty-but-non-nil path means the
// user already completed everything on the chain; callers must not collapse
// the two.
func (s *PathResolverService) ResolvePath(ctx context.Context, userRef, targetConcept string, timeBudgetMinutes int) *domain.LearningPath {
	target := normalization.ConceptName(targetConcept)
	if target == "" {
		return nil
	}

	ctx, span := otel.Tracer("services/pathresolver").Start(ctx, "ResolvePath")
	span.SetAttributes(
		attribute.String("target_concept", target),
		attribute.Int("time_budget_minutes", timeBudgetMinutes),
	)
	defer span.End()

	var (
		g         *conceptgraph.Adjacency
		completed map[string]struct{}
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		g, err = s.graph.Graph(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		completed, err = s.progress.CompletedSet(egCtx, userRef)
		return err
	})
	if err := eg.Wait(); err != nil {
		s.log.Error("path resolution failed", "error", err, "target", target, "user_ref", userRef)
		return nil
	}

	if !g.Exists(target) {
		s.log.Warn("no path found", "target", target, "reason", "unknown concept")
		return nil
	}

	// A target with no prerequisites is its own chain; no traversal needed.
	var rawChain []string
	if len(g.Prerequisites(target)) == 0 {
		rawChain = []string{target}
	} else {
		rawChain = g.ShortestPathFromAnyRoot(target)
	}
	if rawChain == nil {
		s.log.Warn("no path found", "target", target, "reason", "unreachable from roots")
		return nil
	}

	activePath := make([]string, 0, len(rawChain))
	for _, name := range rawChain {
		if _, done := completed[name]; done {
			continue
		}
		activePath = append(activePath, name)
	}

	if len(activePath) == 0 {
		// Everything on the chain is already completed.
		return &domain.LearningPath{
			Concepts:             []string{},
			EstimatedTimeMinutes: 0,
			TargetConcept:        target,
			Pruned:               false,
		}
	}

	totalTime := s.estimator.Estimate(ctx, activePath)
	if totalTime <= timeBudgetMinutes {
		return &domain.LearningPath{
			Concepts:             activePath,
			EstimatedTimeMinutes: totalTime,
			TargetConcept:        target,
			Pruned:               false,
		}
	}

	return s.prune(ctx, activePath, target, timeBudgetMinutes)
}

// prune walks the active path in order, accumulating per-concept estimates
// while the running sum stays within budget. Per-concept estimates carry
// their own unit floor, so the running sum is the authoritative cost of the
// pruned plan; it is reported verbatim.
func (s *PathResolverService) prune(ctx context.Context, activePath []string, target string, budget int) *domain.LearningPath {
	kept := []string{}
	running := 0
	for _, name := range activePath {
		cost := s.estimator.EstimateOne(ctx, name)
		if running+cost > budget {
			break
		}
		running += cost
		kept = append(kept, name)
	}

	newTarget := target
	if len(kept) > 0 {
		// The last concept that fits becomes the intermediate goal.
		newTarget = kept[len(kept)-1]
	}
	s.log.Info("path pruned to budget",
		"target", target,
		"new_target", newTarget,
		"kept", len(kept),
		"dropped", len(activePath)-len(kept),
		"estimated_minutes", running,
		"budget_minutes", budget,
	)
	return &domain.LearningPath{
		Concepts:             kept,
		EstimatedTimeMinutes: running,
		TargetConcept:        newTarget,
		Pruned:               true,
	}
}
