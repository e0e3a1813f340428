package services

import (
	"context"

	"github.com/lodestar-learning/lodestar-backend/internal/normalization"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/logger"
)

// MinutesPerUnit converts content-unit counts into study minutes.
const MinutesPerUnit = 2

// UnitCountSource is the chunk/time-cost store: unit counts per normalized
// concept name, batched. The redis cache and the postgres counter both
// implement it.
type UnitCountSource interface {
	CountByConceptNames(ctx context.Context, names []string) (map[string]int64, error)
}

type TimeEstimatorService struct {
	counts UnitCountSource
	log    *logger.Logger
}

func NewTimeEstimatorService(counts UnitCountSource, baseLog *logger.Logger) *TimeEstimatorService {
	return &TimeEstimatorService{counts: counts, log: baseLog.With("service", "TimeEstimatorService")}
}

// Estimate returns max(1, total units) * MinutesPerUnit over the batch.
// Empty input estimates to zero; so does an unreachable store (logged), which
// only the top-level resolution treats specially. Concepts that exist but
// have no content still cost one unit, the floor applies once per call.
func (s *TimeEstimatorService) Estimate(ctx context.Context, concepts []string) int {
	names := normalization.ConceptNames(concepts)
	if len(names) == 0 {
		return 0
	}
	counts, err := s.counts.CountByConceptNames(ctx, names)
	if err != nil {
		s.log.Error("unit count lookup failed", "error", err, "concepts", len(names))
		return 0
	}
	var total int64
	for _, n := range names {
		total += counts[n]
	}
	if total < 1 {
		total = 1
	}
	return int(total) * MinutesPerUnit
}

// EstimateOne prices a single concept with its own floor. Pruning must use
// this consistently: summing EstimateOne over a batch can exceed Estimate of
// the same batch because the floor applies per concept here.
func (s *TimeEstimatorService) EstimateOne(ctx context.Context, concept string) int {
	return s.Estimate(ctx, []string{concept})
}
