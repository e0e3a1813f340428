package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/lodestar-learning/lodestar-backend/internal/conceptgraph"
	"github.com/lodestar-learning/lodestar-backend/internal/domain"
)

type fakeGraphProvider struct {
	g   *conceptgraph.Adjacency
	err error
}

func (f *fakeGraphProvider) Graph(ctx context.Context) (*conceptgraph.Adjacency, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.g, nil
}

type fakeProgressReader struct {
	completed  map[string]struct{}
	inProgress map[string]struct{}
	err        error
}

func (f *fakeProgressReader) CompletedSet(ctx context.Context, userRef string) (map[string]struct{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.completed == nil {
		return map[string]struct{}{}, nil
	}
	return f.completed, nil
}

func (f *fakeProgressReader) InProgressSet(ctx context.Context, userRef string) (map[string]struct{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.inProgress == nil {
		return map[string]struct{}{}, nil
	}
	return f.inProgress, nil
}

func set(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

func buildGraph(t *testing.T, names []string, pairs ...[2]string) *conceptgraph.Adjacency {
	t.Helper()
	nodeList := make([]domain.ConceptNode, 0, len(names))
	for _, n := range names {
		nodeList = append(nodeList, domain.ConceptNode{Name: n})
	}
	edgeList := make([]domain.PrerequisiteEdge, 0, len(pairs))
	for _, p := range pairs {
		edgeList = append(edgeList, domain.PrerequisiteEdge{Source: p[0], Target: p[1]})
	}
	return conceptgraph.NewAdjacency(nodeList, edgeList)
}

func chainGraph(t *testing.T) *conceptgraph.Adjacency {
	t.Helper()
	return buildGraph(t, []string{"a", "b", "c", "d"}, [2]string{"a", "b"}, [2]string{"b", "c"})
}

func TestUnlockedConcepts(t *testing.T) {
	svc := NewNavigationService(
		&fakeGraphProvider{g: chainGraph(t)},
		&fakeProgressReader{completed: set("a")},
		testLogger(t),
	)
	got := svc.UnlockedConcepts(context.Background(), "u1")
	if want := []string{"b", "d"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("UnlockedConcepts = %v, want %v", got, want)
	}
}

func TestUnlockedConcepts_NoProgress(t *testing.T) {
	svc := NewNavigationService(
		&fakeGraphProvider{g: chainGraph(t)},
		&fakeProgressReader{},
		testLogger(t),
	)
	got := svc.UnlockedConcepts(context.Background(), "u1")
	if want := []string{"a", "d"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("UnlockedConcepts = %v, want %v", got, want)
	}
}

func TestUnlockedConcepts_StoreFailure(t *testing.T) {
	svc := NewNavigationService(
		&fakeGraphProvider{err: errors.New("down")},
		&fakeProgressReader{},
		testLogger(t),
	)
	got := svc.UnlockedConcepts(context.Background(), "u1")
	if got == nil || len(got) != 0 {
		t.Fatalf("UnlockedConcepts on failure = %v, want empty slice", got)
	}
}

func TestValidatePrerequisites(t *testing.T) {
	svc := NewNavigationService(
		&fakeGraphProvider{g: chainGraph(t)},
		&fakeProgressReader{completed: set("a")},
		testLogger(t),
	)
	ctx := context.Background()

	if !svc.ValidatePrerequisites(ctx, "u1", "a") {
		t.Fatal("root concept should validate vacuously")
	}
	if !svc.ValidatePrerequisites(ctx, "u1", "B") {
		t.Fatal("completed prerequisite should validate")
	}
	if svc.ValidatePrerequisites(ctx, "u1", "c") {
		t.Fatal("incomplete prerequisite should not validate")
	}
	if svc.ValidatePrerequisites(ctx, "u1", "ghost") {
		t.Fatal("unknown concept should not validate")
	}
	if svc.ValidatePrerequisites(ctx, "u1", "  ") {
		t.Fatal("blank concept should not validate")
	}
}

func TestValidatePrerequisites_StoreFailure(t *testing.T) {
	svc := NewNavigationService(
		&fakeGraphProvider{g: chainGraph(t)},
		&fakeProgressReader{err: errors.New("down")},
		testLogger(t),
	)
	if svc.ValidatePrerequisites(context.Background(), "u1", "a") {
		t.Fatal("store failure should not validate")
	}
}

func TestFullGraph_Statuses(t *testing.T) {
	svc := NewNavigationService(
		&fakeGraphProvider{g: chainGraph(t)},
		&fakeProgressReader{completed: set("a"), inProgress: set("b")},
		testLogger(t),
	)
	view := svc.FullGraph(context.Background(), "u1")

	want := map[string]string{
		"a": domain.StatusCompleted,
		"b": domain.StatusInProgress,
		"c": domain.StatusLocked,
		"d": domain.StatusUnlocked,
	}
	if len(view.Nodes) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(view.Nodes), len(want))
	}
	for _, node := range view.Nodes {
		if node.Status != want[node.ID] {
			t.Errorf("node %s status = %s, want %s", node.ID, node.Status, want[node.ID])
		}
	}
	if len(view.Links) != 2 {
		t.Fatalf("got %d links, want 2", len(view.Links))
	}
	for _, link := range view.Links {
		if link.Relationship != domain.RelPrerequisite {
			t.Errorf("link %s->%s relationship = %s", link.Source, link.Target, link.Relationship)
		}
	}
}

func TestFullGraph_InProgressPrerequisiteDoesNotUnlock(t *testing.T) {
	// Only COMPLETED prerequisites unlock dependents.
	svc := NewNavigationService(
		&fakeGraphProvider{g: buildGraph(t, []string{"x", "y"}, [2]string{"x", "y"})},
		&fakeProgressReader{inProgress: set("x")},
		testLogger(t),
	)
	view := svc.FullGraph(context.Background(), "u1")
	for _, node := range view.Nodes {
		if node.ID == "y" && node.Status != domain.StatusLocked {
			t.Fatalf("y status = %s, want LOCKED", node.Status)
		}
	}
}

func TestFullGraph_NodeWeights(t *testing.T) {
	svc := NewNavigationService(
		&fakeGraphProvider{g: chainGraph(t)},
		&fakeProgressReader{},
		testLogger(t),
	)
	view := svc.FullGraph(context.Background(), "u1")

	// Degree counts both directions: a=1, b=2, c=1, d=0.
	want := map[string]int{"a": 12, "b": 14, "c": 12, "d": 10}
	for _, node := range view.Nodes {
		if node.Val != want[node.ID] {
			t.Errorf("node %s val = %d, want %d", node.ID, node.Val, want[node.ID])
		}
	}
}

func TestFullGraph_DisplayNameFallback(t *testing.T) {
	g := conceptgraph.NewAdjacency([]domain.ConceptNode{
		{Name: "Graph Theory", DisplayName: "Graph Theory"},
		{Name: "sets"},
	}, nil)
	svc := NewNavigationService(&fakeGraphProvider{g: g}, &fakeProgressReader{}, testLogger(t))
	view := svc.FullGraph(context.Background(), "u1")

	byID := make(map[string]domain.GraphNode)
	for _, node := range view.Nodes {
		byID[node.ID] = node
	}
	if byID["graph theory"].Name != "Graph Theory" {
		t.Fatalf("display name = %q, want original casing", byID["graph theory"].Name)
	}
	if byID["sets"].Name != "sets" {
		t.Fatalf("display name fallback = %q, want normalized name", byID["sets"].Name)
	}
}

func TestFullGraph_StoreFailure(t *testing.T) {
	svc := NewNavigationService(
		&fakeGraphProvider{g: chainGraph(t)},
		&fakeProgressReader{err: errors.New("down")},
		testLogger(t),
	)
	view := svc.FullGraph(context.Background(), "u1")
	if view == nil || len(view.Nodes) != 0 || len(view.Links) != 0 {
		t.Fatalf("FullGraph on failure = %+v, want empty view", view)
	}
}
