package conceptgraph

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/lodestar-learning/lodestar-backend/internal/domain"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestAccessor_FailSoftOnSourceError(t *testing.T) {
	src := &MemorySource{Err: errors.New("store unreachable")}
	a := NewAccessor(src, testLogger(t))
	ctx := context.Background()

	if got := a.RootConcepts(ctx); len(got) != 0 {
		t.Fatalf("RootConcepts should degrade to empty, got %v", got)
	}
	if got := a.ShortestPathFromAnyRoot(ctx, "a"); got != nil {
		t.Fatalf("ShortestPathFromAnyRoot should degrade to nil, got %v", got)
	}
	if a.ConceptExists(ctx, "a") {
		t.Fatalf("ConceptExists should degrade to false")
	}
	if nb := a.Neighborhood(ctx, "a"); nb != nil {
		t.Fatalf("Neighborhood should degrade to nil, got %+v", nb)
	}
}

func TestAccessor_QueriesSnapshot(t *testing.T) {
	src := &MemorySource{
		NodeList: []domain.ConceptNode{{Name: "A"}, {Name: "B"}},
		EdgeList: []domain.PrerequisiteEdge{{Source: "A", Target: "B"}},
	}
	a := NewAccessor(src, testLogger(t))
	ctx := context.Background()

	if got := a.RootConcepts(ctx); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("RootConcepts = %v, want [a]", got)
	}
	if got := a.ShortestPathFromAnyRoot(ctx, "b"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("ShortestPathFromAnyRoot(b) = %v, want [a b]", got)
	}
	if !a.ConceptExists(ctx, " B ") {
		t.Fatalf("ConceptExists should normalize the lookup")
	}
}
