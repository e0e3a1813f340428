package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/lodestar-learning/lodestar-backend/internal/data/repos/progress"
	"github.com/lodestar-learning/lodestar-backend/internal/data/repos/user"
	types "github.com/lodestar-learning/lodestar-backend/internal/domain"
	"github.com/lodestar-learning/lodestar-backend/internal/normalization"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/logger"
)

// ConceptChecker is the slice of the graph accessor progress writes need.
type ConceptChecker interface {
	ConceptExists(ctx context.Context, name string) bool
}

// ProgressService owns per-user completion state. Users are created lazily on
// the first progress write for an external ref.
type ProgressService struct {
	db       *gorm.DB
	log      *logger.Logger
	users    user.UserRepo
	progress progress.ConceptProgressRepo
	concepts ConceptChecker
}

func NewProgressService(db *gorm.DB, baseLog *logger.Logger, users user.UserRepo, progressRepo progress.ConceptProgressRepo, concepts ConceptChecker) *ProgressService {
	return &ProgressService{
		db:       db,
		log:      baseLog.With("service", "ProgressService"),
		users:    users,
		progress: progressRepo,
		concepts: concepts,
	}
}

func (s *ProgressService) namesByStatus(ctx context.Context, userRef, status string) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	u, err := s.users.GetByExternalRef(ctx, nil, userRef)
	if err != nil {
		return nil, err
	}
	if u == nil {
		// No progress records yet; not an error.
		return out, nil
	}
	names, err := s.progress.GetNamesByStatus(ctx, nil, u.ID, status)
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out, nil
}

// CompletedSet returns the normalized names the user has completed.
func (s *ProgressService) CompletedSet(ctx context.Context, userRef string) (map[string]struct{}, error) {
	return s.namesByStatus(ctx, userRef, types.ProgressCompleted)
}

// InProgressSet returns the normalized names the user has started.
func (s *ProgressService) InProgressSet(ctx context.Context, userRef string) (map[string]struct{}, error) {
	return s.namesByStatus(ctx, userRef, types.ProgressInProgress)
}

// MarkInProgress idempotently records that the user started a concept. The
// concept must exist in the graph; prerequisite completion is deliberately
// not enforced, a generated path may start on a concept whose study content
// covers its prerequisites. Returns false on any failure.
func (s *ProgressService) MarkInProgress(ctx context.Context, userRef, concept string) bool {
	name := normalization.ConceptName(concept)
	if name == "" || userRef == "" {
		return false
	}
	if !s.concepts.ConceptExists(ctx, name) {
		s.log.Warn("mark in progress for unknown concept", "concept", name, "user_ref", userRef)
		return false
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		u, err := s.users.EnsureByExternalRef(ctx, tx, userRef)
		if err != nil {
			return err
		}
		return s.progress.UpsertInProgress(ctx, tx, u.ID, name)
	})
	if err != nil {
		s.log.Error("mark in progress failed", "error", err, "concept", name, "user_ref", userRef)
		return false
	}
	return true
}

// MarkCompleted idempotently records completion, refreshing the finished
// timestamp and removing any in-progress marker in the same transaction.
func (s *ProgressService) MarkCompleted(ctx context.Context, userRef, concept string) bool {
	name := normalization.ConceptName(concept)
	if name == "" || userRef == "" {
		return false
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		u, err := s.users.EnsureByExternalRef(ctx, tx, userRef)
		if err != nil {
			return err
		}
		return s.progress.UpsertCompleted(ctx, tx, u.ID, name)
	})
	if err != nil {
		s.log.Error("mark completed failed", "error", err, "concept", name, "user_ref", userRef)
		return false
	}
	return true
}
