package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/lodestar-learning/lodestar-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, externalRef string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:          uuid.New(),
		ExternalRef: externalRef,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedChunks(tb testing.TB, ctx context.Context, tx *gorm.DB, conceptName string, count int) {
	tb.Helper()
	for i := 0; i < count; i++ {
		c := &types.ContentChunk{
			ID:          uuid.New(),
			ConceptName: conceptName,
			Index:       i,
			Text:        "chunk",
			Metadata:    datatypes.JSON([]byte("{}")),
		}
		if err := tx.WithContext(ctx).Create(c).Error; err != nil {
			tb.Fatalf("seed chunk: %v", err)
		}
	}
}
