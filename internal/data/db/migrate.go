package db

import (
	"gorm.io/gorm"

	types "github.com/lodestar-learning/lodestar-backend/internal/domain"
)

func AutoMigrateAll(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&types.User{},
		&types.ConceptProgress{},
		&types.ContentChunk{},
	)
}

func (s *PostgresService) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}
