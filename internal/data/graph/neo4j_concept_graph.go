package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	types "github.com/lodestar-learning/lodestar-backend/internal/domain"
	"github.com/lodestar-learning/lodestar-backend/internal/normalization"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/logger"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/neo4jdb"
)

// Neo4jConceptGraph reads and writes the concept graph stored as
// (:Concept {name})-[:PREREQUISITE]->(:Concept) where name is the normalized
// key and display_name keeps the canonical casing. It implements
// conceptgraph.Source.
type Neo4jConceptGraph struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewNeo4jConceptGraph(client *neo4jdb.Client, baseLog *logger.Logger) *Neo4jConceptGraph {
	return &Neo4jConceptGraph{client: client, log: baseLog.With("store", "Neo4jConceptGraph")}
}

func (s *Neo4jConceptGraph) timeout() time.Duration {
	if s.client != nil && s.client.Timeout > 0 {
		return s.client.Timeout
	}
	return 10 * time.Second
}

// Snapshot loads every concept node and prerequisite edge. The traversal
// itself happens in Go; this is a single bounded round trip per query.
func (s *Neo4jConceptGraph) Snapshot(ctx context.Context) ([]types.ConceptNode, []types.PrerequisiteEdge, error) {
	if s == nil || s.client == nil || s.client.Driver == nil {
		return nil, nil, fmt.Errorf("neo4j concept graph: client not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	session := s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.client.Database,
	})
	defer session.Close(ctx)

	var nodes []types.ConceptNode
	result, err := session.Run(ctx, `
MATCH (c:Concept)
RETURN c.name AS name, c.display_name AS display_name, c.description AS description
`, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("neo4j concept graph: load nodes: %w", err)
	}
	for result.Next(ctx) {
		record := result.Record()
		nodes = append(nodes, types.ConceptNode{
			Name:        recordString(record, "name"),
			DisplayName: recordString(record, "display_name"),
			Description: recordString(record, "description"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, nil, fmt.Errorf("neo4j concept graph: load nodes: %w", err)
	}

	var edges []types.PrerequisiteEdge
	result, err = session.Run(ctx, `
MATCH (a:Concept)-[:PREREQUISITE]->(b:Concept)
RETURN a.name AS source, b.name AS target
`, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("neo4j concept graph: load edges: %w", err)
	}
	for result.Next(ctx) {
		record := result.Record()
		edges = append(edges, types.PrerequisiteEdge{
			Source: recordString(record, "source"),
			Target: recordString(record, "target"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, nil, fmt.Errorf("neo4j concept graph: load edges: %w", err)
	}

	return nodes, edges, nil
}

// UpsertConceptGraph merges concepts and prerequisite edges, used by the seed
// tool. Names are normalized before writing; display_name keeps the incoming
// casing only when the node is first created.
func (s *Neo4jConceptGraph) UpsertConceptGraph(ctx context.Context, concepts []types.ConceptNode, edges []types.PrerequisiteEdge) error {
	if s == nil || s.client == nil || s.client.Driver == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)

	nodeRows := make([]map[string]any, 0, len(concepts))
	for _, c := range concepts {
		name := normalization.ConceptName(c.Name)
		if name == "" {
			continue
		}
		display := c.DisplayName
		if display == "" {
			display = c.Name
		}
		nodeRows = append(nodeRows, map[string]any{
			"name":         name,
			"display_name": display,
			"description":  c.Description,
			"synced_at":    now,
		})
	}

	edgeRows := make([]map[string]any, 0, len(edges))
	for _, e := range edges {
		src := normalization.ConceptName(e.Source)
		dst := normalization.ConceptName(e.Target)
		if src == "" || dst == "" || src == dst {
			continue
		}
		edgeRows = append(edgeRows, map[string]any{
			"source":    src,
			"target":    dst,
			"synced_at": now,
		})
	}

	session := s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.client.Database,
	})
	defer session.Close(ctx)

	// Best-effort schema init; may fail for restricted users.
	if res, err := session.Run(ctx, `CREATE CONSTRAINT concept_name_unique IF NOT EXISTS FOR (c:Concept) REQUIRE c.name IS UNIQUE`, nil); err != nil {
		s.log.Warn("neo4j schema init failed (continuing)", "error", err)
	} else {
		_, _ = res.Consume(ctx)
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if len(nodeRows) > 0 {
			res, err := tx.Run(ctx, `
UNWIND $nodes AS n
MERGE (c:Concept {name: n.name})
ON CREATE SET c.display_name = n.display_name
SET c.description = n.description,
    c.synced_at = n.synced_at
`, map[string]any{"nodes": nodeRows})
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}

		if len(edgeRows) > 0 {
			res, err := tx.Run(ctx, `
UNWIND $rels AS r
MATCH (a:Concept {name: r.source})
MATCH (b:Concept {name: r.target})
MERGE (a)-[e:PREREQUISITE]->(b)
SET e.synced_at = r.synced_at
`, map[string]any{"rels": edgeRows})
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

func recordString(record *neo4j.Record, key string) string {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
