package conceptgraph

import (
	"reflect"
	"testing"

	"github.com/lodestar-learning/lodestar-backend/internal/domain"
)

func nodes(names ...string) []domain.ConceptNode {
	out := make([]domain.ConceptNode, 0, len(names))
	for _, n := range names {
		out = append(out, domain.ConceptNode{Name: n})
	}
	return out
}

func edges(pairs ...[2]string) []domain.PrerequisiteEdge {
	out := make([]domain.PrerequisiteEdge, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, domain.PrerequisiteEdge{Source: p[0], Target: p[1]})
	}
	return out
}

func TestRoots_ZeroInDegreeSorted(t *testing.T) {
	g := NewAdjacency(
		nodes("C", "a", "B", "d"),
		edges([2]string{"a", "B"}, [2]string{"B", "C"}),
	)
	got := g.Roots()
	want := []string{"a", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Roots() = %v, want %v", got, want)
	}
}

func TestRoots_EmptyGraph(t *testing.T) {
	g := NewAdjacency(nil, nil)
	if got := g.Roots(); len(got) != 0 {
		t.Fatalf("Roots() on empty graph = %v, want empty", got)
	}
}

func TestNewAdjacency_NormalizesAndDedups(t *testing.T) {
	g := NewAdjacency(
		[]domain.ConceptNode{
			{Name: "Linear Algebra", Description: ""},
			{Name: " linear algebra ", Description: "vectors and matrices"},
		},
		edges([2]string{"Linear Algebra", "linear algebra"}), // self-loop after normalization
	)
	n, ok := g.Node("LINEAR ALGEBRA")
	if !ok {
		t.Fatalf("expected node to exist")
	}
	if n.DisplayName != "Linear Algebra" {
		t.Fatalf("first-seen casing should win, got %q", n.DisplayName)
	}
	if n.Description != "vectors and matrices" {
		t.Fatalf("later description should fill the gap, got %q", n.Description)
	}
	if len(g.Edges()) != 0 {
		t.Fatalf("self-loop should be dropped, got %v", g.Edges())
	}
}

func TestNewAdjacency_DropsDanglingEdges(t *testing.T) {
	g := NewAdjacency(nodes("a"), edges([2]string{"a", "ghost"}, [2]string{"ghost", "a"}))
	if len(g.Edges()) != 0 {
		t.Fatalf("edges to absent concepts should be dropped, got %v", g.Edges())
	}
	if got := g.Roots(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("Roots() = %v, want [a]", got)
	}
}

func TestShortestPath_Chain(t *testing.T) {
	g := NewAdjacency(
		nodes("A", "B", "C"),
		edges([2]string{"A", "B"}, [2]string{"B", "C"}),
	)
	got := g.ShortestPathFromAnyRoot("c")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ShortestPathFromAnyRoot(c) = %v, want %v", got, want)
	}
}

func TestShortestPath_TargetIsRoot(t *testing.T) {
	g := NewAdjacency(nodes("a", "b"), edges([2]string{"a", "b"}))
	got := g.ShortestPathFromAnyRoot(" A ")
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("root target should be its own path, got %v", got)
	}
}

func TestShortestPath_PicksFewestEdges(t *testing.T) {
	// Two routes to z: x->y->z (2 edges) and w->z (1 edge).
	g := NewAdjacency(
		nodes("w", "x", "y", "z"),
		edges([2]string{"x", "y"}, [2]string{"y", "z"}, [2]string{"w", "z"}),
	)
	got := g.ShortestPathFromAnyRoot("z")
	want := []string{"w", "z"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ShortestPathFromAnyRoot(z) = %v, want %v", got, want)
	}
}

func TestShortestPath_DeterministicTieBreak(t *testing.T) {
	// Equal-length routes from roots "a" and "b"; the lexicographically
	// smaller root must win every time.
	g := NewAdjacency(
		nodes("a", "b", "t"),
		edges([2]string{"a", "t"}, [2]string{"b", "t"}),
	)
	want := []string{"a", "t"}
	for i := 0; i < 20; i++ {
		if got := g.ShortestPathFromAnyRoot("t"); !reflect.DeepEqual(got, want) {
			t.Fatalf("tie-break not deterministic: got %v, want %v", got, want)
		}
	}
}

func TestShortestPath_AbsentTarget(t *testing.T) {
	g := NewAdjacency(nodes("a"), nil)
	if got := g.ShortestPathFromAnyRoot("missing"); got != nil {
		t.Fatalf("absent target should yield nil, got %v", got)
	}
}

func TestShortestPath_UnreachableFromRoots(t *testing.T) {
	// c and d form a cycle; both have incoming edges so neither is a root,
	// and nothing connects the rooted component to them.
	g := NewAdjacency(
		nodes("a", "c", "d"),
		edges([2]string{"c", "d"}, [2]string{"d", "c"}),
	)
	if got := g.ShortestPathFromAnyRoot("c"); got != nil {
		t.Fatalf("cyclic unreachable target should yield nil, got %v", got)
	}
}

func TestShortestPath_CycleBelowRootTerminates(t *testing.T) {
	// Reachable cycle: a -> b -> c -> b. BFS must terminate and still find c.
	g := NewAdjacency(
		nodes("a", "b", "c"),
		edges([2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "b"}),
	)
	got := g.ShortestPathFromAnyRoot("c")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ShortestPathFromAnyRoot(c) = %v, want %v", got, want)
	}
}

func TestNeighborhood_LabelsAndDedup(t *testing.T) {
	g := NewAdjacency(
		nodes("p1", "p2", "x", "d1"),
		edges([2]string{"p1", "x"}, [2]string{"p2", "x"}, [2]string{"x", "d1"}),
	)
	nb := g.Neighborhood("X")
	if nb == nil {
		t.Fatalf("expected a neighborhood")
	}
	if len(nb.Nodes) != 3 {
		t.Fatalf("expected 3 neighbor nodes, got %d", len(nb.Nodes))
	}
	var prereqs, dependents int
	for _, e := range nb.Edges {
		switch e.Relationship {
		case domain.RelPrerequisite:
			prereqs++
			if e.Target != "x" {
				t.Fatalf("prerequisite edge should point at x, got %+v", e)
			}
		case domain.RelDependent:
			dependents++
			if e.Source != "x" {
				t.Fatalf("dependent edge should start at x, got %+v", e)
			}
		default:
			t.Fatalf("unexpected relationship %q", e.Relationship)
		}
	}
	if prereqs != 2 || dependents != 1 {
		t.Fatalf("expected 2 prerequisite + 1 dependent edges, got %d/%d", prereqs, dependents)
	}
}

func TestNeighborhood_AbsentConcept(t *testing.T) {
	g := NewAdjacency(nodes("a"), nil)
	if nb := g.Neighborhood("nope"); nb != nil {
		t.Fatalf("expected nil neighborhood, got %+v", nb)
	}
}

func TestDegree(t *testing.T) {
	g := NewAdjacency(
		nodes("a", "b", "c"),
		edges([2]string{"a", "b"}, [2]string{"b", "c"}),
	)
	if got := g.Degree("b"); got != 2 {
		t.Fatalf("Degree(b) = %d, want 2", got)
	}
	if got := g.Degree("a"); got != 1 {
		t.Fatalf("Degree(a) = %d, want 1", got)
	}
}
