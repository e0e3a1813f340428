package content

import (
	"context"

	"gorm.io/gorm"

	types "github.com/lodestar-learning/lodestar-backend/internal/domain"
	"github.com/lodestar-learning/lodestar-backend/internal/normalization"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/logger"
)

// ContentChunkRepo is the chunk/time-cost store: per-concept counts of
// learning units, batched by normalized name.
type ContentChunkRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ContentChunk) error
	// CountByConceptNames returns unit counts keyed by normalized concept
	// name. Names with no chunks are absent from the result.
	CountByConceptNames(ctx context.Context, tx *gorm.DB, names []string) (map[string]int64, error)
}

type contentChunkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentChunkRepo(db *gorm.DB, baseLog *logger.Logger) ContentChunkRepo {
	return &contentChunkRepo{db: db, log: baseLog.With("repo", "ContentChunkRepo")}
}

func (r *contentChunkRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ContentChunk) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		if row != nil {
			row.ConceptName = normalization.ConceptName(row.ConceptName)
		}
	}
	return t.WithContext(ctx).Create(&rows).Error
}

func (r *contentChunkRepo) CountByConceptNames(ctx context.Context, tx *gorm.DB, names []string) (map[string]int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	normalized := normalization.ConceptNames(names)
	out := make(map[string]int64, len(normalized))
	if len(normalized) == 0 {
		return out, nil
	}

	type countRow struct {
		ConceptName string
		N           int64
	}
	var rows []countRow
	err := t.WithContext(ctx).
		Model(&types.ContentChunk{}).
		Select("concept_name, COUNT(*) AS n").
		Where("concept_name IN ?", normalized).
		Group("concept_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ConceptName] = row.N
	}
	return out, nil
}
