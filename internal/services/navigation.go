package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lodestar-learning/lodestar-backend/internal/conceptgraph"
	"github.com/lodestar-learning/lodestar-backend/internal/domain"
	"github.com/lodestar-learning/lodestar-backend/internal/normalization"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/logger"
)

// GraphProvider loads a consistent adjacency snapshot per call.
type GraphProvider interface {
	Graph(ctx context.Context) (*conceptgraph.Adjacency, error)
}

// ProgressReader exposes a user's completion state as normalized name sets.
type ProgressReader interface {
	CompletedSet(ctx context.Context, userRef string) (map[string]struct{}, error)
	InProgressSet(ctx context.Context, userRef string) (map[string]struct{}, error)
}

// NavigationService derives unlock state and the user-facing graph view.
// All operations are fail-soft: store failures log and degrade to empty
// results.
type NavigationService struct {
	graph    GraphProvider
	progress ProgressReader
	log      *logger.Logger
}

func NewNavigationService(graph GraphProvider, progressReader ProgressReader, baseLog *logger.Logger) *NavigationService {
	return &NavigationService{
		graph:    graph,
		progress: progressReader,
		log:      baseLog.With("service", "NavigationService"),
	}
}

func (s *NavigationService) loadGraphAndCompleted(ctx context.Context, userRef string) (*conceptgraph.Adjacency, map[string]struct{}, error) {
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
		return nil, nil, err
	}
	return g, completed, nil
}

// UnlockedConcepts lists the concepts the user can start now: not completed,
// with every immediate prerequisite completed (zero prerequisites count as
// satisfied). Sorted by normalized name.
func (s *NavigationService) UnlockedConcepts(ctx context.Context, userRef string) []string {
	g, completed, err := s.loadGraphAndCompleted(ctx, userRef)
	if err != nil {
		s.log.Error("unlocked concepts lookup failed", "error", err, "user_ref", userRef)
		return []string{}
	}

	unlocked := []string{}
	for _, node := range g.Nodes() {
		if _, done := completed[node.Name]; done {
			continue
		}
		if prereqsSatisfied(g.Prerequisites(node.Name), completed) {
			unlocked = append(unlocked, node.Name)
		}
	}
	return unlocked
}

// ValidatePrerequisites reports whether every immediate prerequisite of the
// concept is completed by the user (vacuously true for zero prerequisites).
// Unknown concepts and store failures validate false.
func (s *NavigationService) ValidatePrerequisites(ctx context.Context, userRef, concept string) bool {
	name := normalization.ConceptName(concept)
	if name == "" {
		return false
	}
	g, completed, err := s.loadGraphAndCompleted(ctx, userRef)
	if err != nil {
		s.log.Error("prerequisite validation failed", "error", err, "concept", name, "user_ref", userRef)
		return false
	}
	if !g.Exists(name) {
		return false
	}
	return prereqsSatisfied(g.Prerequisites(name), completed)
}

// FullGraph builds the whole-graph view with per-node status and visual
// weight. A single status pass suffices: LOCKED/UNLOCKED depend only on
// prerequisite COMPLETED state, which is known before the pass.
func (s *NavigationService) FullGraph(ctx context.Context, userRef string) *domain.GraphView {
	view := &domain.GraphView{Nodes: []domain.GraphNode{}, Links: []domain.GraphLink{}}

	var (
		g          *conceptgraph.Adjacency
		completed  map[string]struct{}
		inProgress map[string]struct{}
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
	eg.Go(func() error {
		var err error
		inProgress, err = s.progress.InProgressSet(egCtx, userRef)
		return err
	})
	if err := eg.Wait(); err != nil {
		s.log.Error("full graph load failed", "error", err, "user_ref", userRef)
		return view
	}

	for _, edge := range g.Edges() {
		view.Links = append(view.Links, domain.GraphLink{
			Source:       edge.Source,
			Target:       edge.Target,
			Relationship: domain.RelPrerequisite,
		})
	}

	for _, node := range g.Nodes() {
		status := domain.StatusLocked
		switch {
		case contains(completed, node.Name):
			status = domain.StatusCompleted
		case contains(inProgress, node.Name):
			status = domain.StatusInProgress
		case prereqsSatisfied(g.Prerequisites(node.Name), completed):
			status = domain.StatusUnlocked
		}
		view.Nodes = append(view.Nodes, domain.GraphNode{
			ID:          node.Name,
			Name:        displayName(node),
			Description: node.Description,
			Status:      status,
			Val:         10 + 2*g.Degree(node.Name),
		})
	}
	return view
}

func displayName(node domain.ConceptNode) string {
	if node.DisplayName != "" {
		return node.DisplayName
	}
	return node.Name
}

func contains(set map[string]struct{}, name string) bool {
	_, ok := set[name]
	return ok
}

func prereqsSatisfied(prereqs []string, completed map[string]struct{}) bool {
	for _, p := range prereqs {
		if _, done := completed[p]; !done {
			return false
		}
	}
	return true
}
