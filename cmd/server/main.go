package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lodestar-learning/lodestar-backend/internal/clients/redis"
	"github.com/lodestar-learning/lodestar-backend/internal/conceptgraph"
	"github.com/lodestar-learning/lodestar-backend/internal/data/db"
	"github.com/lodestar-learning/lodestar-backend/internal/data/graph"
	"github.com/lodestar-learning/lodestar-backend/internal/data/repos/content"
	"github.com/lodestar-learning/lodestar-backend/internal/data/repos/progress"
	"github.com/lodestar-learning/lodestar-backend/internal/data/repos/user"
	httpSrv "github.com/lodestar-learning/lodestar-backend/internal/http"
	httpH "github.com/lodestar-learning/lodestar-backend/internal/http/handlers"
	"github.com/lodestar-learning/lodestar-backend/internal/observability"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/envutil"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/logger"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/neo4jdb"
	"github.com/lodestar-learning/lodestar-backend/internal/services"
)

func main() {
	// Logger
	logMode := envutil.String("LOG_MODE", "development")
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// Tracing
	shutdownOTel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "lodestar-backend",
		Environment: envutil.String("APP_ENV", "development"),
	})
	defer func() {
		if shutdownOTel == nil {
			return
		}
		if err := shutdownOTel(ctx); err != nil {
			log.Warn("OTel shutdown failed", "error", err)
		}
	}()

	// Postgres
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

	// Neo4j (concept graph store)
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

	// Repos
	userRepo := user.NewUserRepo(gdb, log)
	progressRepo := progress.NewConceptProgressRepo(gdb, log)
	chunkRepo := content.NewContentChunkRepo(gdb, log)

	// Unit counts, cached when redis is configured.
	var unitCounts services.UnitCountSource = content.NewCounter(chunkRepo)
	cache, err := redis.NewUnitCountCache(log, content.NewCounter(chunkRepo))
	if err != nil {
		log.Warn("Redis unit count cache unavailable, reading postgres directly", "error", err)
	} else {
		unitCounts = cache
		defer cache.Close()
	}

	// Graph access
	graphStore := graph.NewNeo4jConceptGraph(neo4jClient, log)
	graphAccessor := conceptgraph.NewAccessor(graphStore, log)

	// Services
	estimator := services.NewTimeEstimatorService(unitCounts, log)
	progressService := services.NewProgressService(gdb, log, userRepo, progressRepo, graphAccessor)
	navigationService := services.NewNavigationService(graphAccessor, progressService, log)
	pathResolver := services.NewPathResolverService(graphAccessor, progressService, estimator, log)

	// HTTP
	server := httpSrv.NewServer(httpSrv.RouterConfig{
		Log:             log,
		HealthHandler:   httpH.NewHealthHandler(),
		PathHandler:     httpH.NewPathHandler(pathResolver, log),
		GraphHandler:    httpH.NewGraphHandler(navigationService, graphAccessor, log),
		ProgressHandler: httpH.NewProgressHandler(navigationService, progressService, log),
	})

	port := envutil.String("PORT", "8080")
	log.Info("Starting HTTP server", "port", port)
	if err := server.Run(":" + port); err != nil {
		log.Error("HTTP server exited", "error", err)
		os.Exit(1)
	}
}
