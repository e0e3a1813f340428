package content

import (
	"context"
)

// Counter adapts the chunk repo for callers that do not manage transactions.
type Counter struct {
	repo ContentChunkRepo
}

func NewCounter(repo ContentChunkRepo) *Counter {
	return &Counter{repo: repo}
}

func (c *Counter) CountByConceptNames(ctx context.Context, names []string) (map[string]int64, error) {
	return c.repo.CountByConceptNames(ctx, nil, names)
}
