package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lodestar-learning/lodestar-backend/internal/data/db"
	"github.com/lodestar-learning/lodestar-backend/internal/data/graph"
	"github.com/lodestar-learning/lodestar-backend/internal/data/repos/content"
	"github.com/lodestar-learning/lodestar-backend/internal/domain"
	"github.com/lodestar-learning/lodestar-backend/internal/normalization"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/envutil"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/logger"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/neo4jdb"
)

type seedConcept struct {
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Prerequisites []string `yaml:"prerequisites"`
	Chunks        []string `yaml:"chunks"`
}

type seedFile struct {
	Concepts []seedConcept `yaml:"concepts"`
}

// The seed tool loads a concept graph fixture into neo4j and its content
// chunks into postgres. Re-running it is safe: graph writes are merges and
// chunk rows are replaced per concept.
func main() {
	file := flag.String("file", envutil.String("SEED_FILE", "seed/concepts.yaml"), "path to the concepts YAML fixture")
	flag.Parse()

	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Error("Failed to read seed file", "file", *file, "error", err)
		os.Exit(1)
	}
	var fixture seedFile
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		log.Error("Failed to parse seed file", "file", *file, "error", err)
		os.Exit(1)
	}
	if len(fixture.Concepts) == 0 {
		log.Warn("Seed file has no concepts, nothing to do", "file", *file)
		return
	}

	ctx := context.Background()

	neo4jClient, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Error("Neo4j init failed", "error", err)
		os.Exit(1)
	}
	if neo4jClient == nil {
		log.Error("NEO4J_URI is not set; the concept graph store is required")
		os.Exit(1)
	}
	defer neo4jClient.Close(ctx)

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	gdb := postgresService.DB()
	if err := db.AutoMigrateAll(gdb); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}

	nodes := make([]domain.ConceptNode, 0, len(fixture.Concepts))
	var edges []domain.PrerequisiteEdge
	for _, c := range fixture.Concepts {
		nodes = append(nodes, domain.ConceptNode{
			Name:        c.Name,
			DisplayName: c.Name,
			Description: c.Description,
		})
		for _, p := range c.Prerequisites {
			edges = append(edges, domain.PrerequisiteEdge{Source: p, Target: c.Name})
		}
	}

	graphStore := graph.NewNeo4jConceptGraph(neo4jClient, log)
	if err := graphStore.UpsertConceptGraph(ctx, nodes, edges); err != nil {
		log.Error("Failed to upsert concept graph", "error", err)
		os.Exit(1)
	}
	log.Info("Concept graph seeded", "concepts", len(nodes), "edges", len(edges))

	chunkRepo := content.NewContentChunkRepo(gdb, log)
	for _, c := range fixture.Concepts {
		name := normalization.ConceptName(c.Name)
		if name == "" || len(c.Chunks) == 0 {
			continue
		}
		rows := make([]*domain.ContentChunk, 0, len(c.Chunks))
		for i, text := range c.Chunks {
			rows = append(rows, &domain.ContentChunk{
				ID:          uuid.New(),
				ConceptName: name,
				Index:       i,
				Text:        text,
				Metadata:    datatypes.JSON([]byte(`{"source":"seed"}`)),
			})
		}
		err := gdb.Transaction(func(tx *gorm.DB) error {
			if err := tx.WithContext(ctx).
				Where("concept_name = ?", name).
				Delete(&domain.ContentChunk{}).Error; err != nil {
				return err
			}
			return chunkRepo.Create(ctx, tx, rows)
		})
		if err != nil {
			log.Error("Failed to seed content chunks", "concept", name, "error", err)
			os.Exit(1)
		}
	}
	log.Info("Content chunks seeded", "concepts", len(fixture.Concepts))
}
