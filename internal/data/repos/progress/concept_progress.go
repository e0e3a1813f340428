package progress

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/lodestar-learning/lodestar-backend/internal/domain"
	"github.com/lodestar-learning/lodestar-backend/internal/normalization"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/logger"
)

type ConceptProgressRepo interface {
	// GetNamesByStatus returns the normalized concept names a user has in the
	// given status.
	GetNamesByStatus(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status string) ([]string, error)

	// UpsertInProgress creates the in_progress marker if absent. The started
	// timestamp is set only on first creation; repeat calls are no-ops.
	UpsertInProgress(ctx context.Context, tx *gorm.DB, userID uuid.UUID, conceptName string) error

	// UpsertCompleted writes the completed marker (refreshing the finished
	// timestamp on repeat calls) and deletes any in_progress marker for the
	// same pair. Run it inside a transaction to keep the two writes atomic.
	UpsertCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID, conceptName string) error
}

type conceptProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConceptProgressRepo(db *gorm.DB, baseLog *logger.Logger) ConceptProgressRepo {
	return &conceptProgressRepo{db: db, log: baseLog.With("repo", "ConceptProgressRepo")}
}

func (r *conceptProgressRepo) GetNamesByStatus(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status string) ([]string, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return []string{}, nil
	}
	var names []string
	err := t.WithContext(ctx).
		Model(&types.ConceptProgress{}).
		Where("user_id = ? AND status = ?", userID, status).
		Order("concept_name ASC").
		Pluck("concept_name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *conceptProgressRepo) getOne(ctx context.Context, t *gorm.DB, userID uuid.UUID, conceptName, status string) (*types.ConceptProgress, error) {
	var row types.ConceptProgress
	err := t.WithContext(ctx).
		Where("user_id = ? AND concept_name = ? AND status = ?", userID, conceptName, status).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *conceptProgressRepo) UpsertInProgress(ctx context.Context, tx *gorm.DB, userID uuid.UUID, conceptName string) error {
	t := tx
	if t == nil {
		t = r.db
	}
	name := normalization.ConceptName(conceptName)
	if userID == uuid.Nil || name == "" {
		return errors.New("progress repo: missing user or concept")
	}
	existing, err := r.getOne(ctx, t, userID, name, types.ProgressInProgress)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	now := time.Now().UTC()
	row := &types.ConceptProgress{
		ID:          uuid.New(),
		UserID:      userID,
		ConceptName: name,
		Status:      types.ProgressInProgress,
		StartedAt:   &now,
	}
	return t.WithContext(ctx).Create(row).Error
}

func (r *conceptProgressRepo) UpsertCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID, conceptName string) error {
	t := tx
	if t == nil {
		t = r.db
	}
	name := normalization.ConceptName(conceptName)
	if userID == uuid.Nil || name == "" {
		return errors.New("progress repo: missing user or concept")
	}

	now := time.Now().UTC()
	existing, err := r.getOne(ctx, t, userID, name, types.ProgressCompleted)
	if err != nil {
		return err
	}
	if existing != nil {
		if err := t.WithContext(ctx).
			Model(&types.ConceptProgress{}).
			Where("id = ?", existing.ID).
			Update("finished_at", &now).Error; err != nil {
			return err
		}
	} else {
		row := &types.ConceptProgress{
			ID:          uuid.New(),
			UserID:      userID,
			ConceptName: name,
			Status:      types.ProgressCompleted,
			FinishedAt:  &now,
		}
		if err := t.WithContext(ctx).Create(row).Error; err != nil {
			return err
		}
	}

	return t.WithContext(ctx).
		Where("user_id = ? AND concept_name = ? AND status = ?", userID, name, types.ProgressInProgress).
		Delete(&types.ConceptProgress{}).Error
}
