package conceptgraph

import (
	"context"

	"github.com/lodestar-learning/lodestar-backend/internal/domain"
)

// MemorySource is a fixed in-memory Source, used by tests and local tooling.
type MemorySource struct {
	NodeList []domain.ConceptNode
	EdgeList []domain.PrerequisiteEdge
	Err      error
}

func (s *MemorySource) Snapshot(ctx context.Context) ([]domain.ConceptNode, []domain.PrerequisiteEdge, error) {
	if s.Err != nil {
		return nil, nil, s.Err
	}
	return s.NodeList, s.EdgeList, nil
}
