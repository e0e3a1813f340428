package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func newResolver(t *testing.T, graph GraphProvider, progressReader ProgressReader, counts map[string]int64) *PathResolverService {
	t.Helper()
	log := testLogger(t)
	est := NewTimeEstimatorService(&fakeCounts{counts: counts}, log)
	return NewPathResolverService(graph, progressReader, est, log)
}

func oneUnitEach(names ...string) map[string]int64 {
	out := make(map[string]int64, len(names))
	for _, n := range names {
		out[n] = 1
	}
	return out
}

func TestResolvePath_FitsBudget(t *testing.T) {
	r := newResolver(t, &fakeGraphProvider{g: chainGraph(t)}, &fakeProgressReader{}, oneUnitEach("a", "b", "c"))
	p := r.ResolvePath(context.Background(), "u1", "c", 1000)
	if p == nil {
		t.Fatal("expected a path")
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(p.Concepts, want) {
		t.Fatalf("concepts = %v, want %v", p.Concepts, want)
	}
	if p.EstimatedTimeMinutes != 6 || p.Pruned || p.TargetConcept != "c" {
		t.Fatalf("got %+v, want 6 minutes, unpruned, target c", p)
	}
}

func TestResolvePath_PrunesToBudget(t *testing.T) {
	r := newResolver(t, &fakeGraphProvider{g: chainGraph(t)}, &fakeProgressReader{}, oneUnitEach("a", "b", "c"))
	p := r.ResolvePath(context.Background(), "u1", "c", 5)
	if p == nil {
		t.Fatal("expected a path")
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(p.Concepts, want) {
		t.Fatalf("concepts = %v, want %v", p.Concepts, want)
	}
	if !p.Pruned {
		t.Fatal("expected pruned path")
	}
	if p.TargetConcept != "b" {
		t.Fatalf("target = %s, want b (last kept concept)", p.TargetConcept)
	}
	if p.EstimatedTimeMinutes != 4 {
		t.Fatalf("estimated = %d, want 4", p.EstimatedTimeMinutes)
	}
}

func TestResolvePath_SkipsCompleted(t *testing.T) {
	r := newResolver(t, &fakeGraphProvider{g: chainGraph(t)}, &fakeProgressReader{completed: set("a", "b")}, oneUnitEach("a", "b", "c"))
	p := r.ResolvePath(context.Background(), "u1", "c", 1000)
	if p == nil {
		t.Fatal("expected a path")
	}
	if want := []string{"c"}; !reflect.DeepEqual(p.Concepts, want) {
		t.Fatalf("concepts = %v, want %v", p.Concepts, want)
	}
	if p.EstimatedTimeMinutes != 2 || p.Pruned {
		t.Fatalf("got %+v, want 2 minutes unpruned", p)
	}
}

func TestResolvePath_RootTarget(t *testing.T) {
	r := newResolver(t, &fakeGraphProvider{g: chainGraph(t)}, &fakeProgressReader{}, oneUnitEach("a"))
	p := r.ResolvePath(context.Background(), "u1", " A ", 1000)
	if p == nil {
		t.Fatal("expected a path")
	}
	if want := []string{"a"}; !reflect.DeepEqual(p.Concepts, want) {
		t.Fatalf("concepts = %v, want %v", p.Concepts, want)
	}
}

func TestResolvePath_AllCompleted(t *testing.T) {
	r := newResolver(t, &fakeGraphProvider{g: chainGraph(t)}, &fakeProgressReader{completed: set("a", "b", "c")}, oneUnitEach("a", "b", "c"))
	p := r.ResolvePath(context.Background(), "u1", "c", 1000)
	if p == nil {
		t.Fatal("all-completed chain must return an empty path, not nil")
	}
	if len(p.Concepts) != 0 || p.Concepts == nil {
		t.Fatalf("concepts = %v, want empty non-nil slice", p.Concepts)
	}
	if p.EstimatedTimeMinutes != 0 || p.Pruned || p.TargetConcept != "c" {
		t.Fatalf("got %+v, want zero-minute unpruned path targeting c", p)
	}
}

func TestResolvePath_UnknownTarget(t *testing.T) {
	r := newResolver(t, &fakeGraphProvider{g: chainGraph(t)}, &fakeProgressReader{}, nil)
	if p := r.ResolvePath(context.Background(), "u1", "ghost", 1000); p != nil {
		t.Fatalf("unknown target resolved to %+v, want nil", p)
	}
}

func TestResolvePath_BlankTarget(t *testing.T) {
	r := newResolver(t, &fakeGraphProvider{g: chainGraph(t)}, &fakeProgressReader{}, nil)
	if p := r.ResolvePath(context.Background(), "u1", "   ", 1000); p != nil {
		t.Fatalf("blank target resolved to %+v, want nil", p)
	}
}

func TestResolvePath_BudgetBelowFirstConcept(t *testing.T) {
	r := newResolver(t, &fakeGraphProvider{g: chainGraph(t)}, &fakeProgressReader{}, oneUnitEach("a", "b", "c"))
	p := r.ResolvePath(context.Background(), "u1", "c", 1)
	if p == nil {
		t.Fatal("expected a pruned path")
	}
	if len(p.Concepts) != 0 {
		t.Fatalf("concepts = %v, want empty", p.Concepts)
	}
	if !p.Pruned || p.EstimatedTimeMinutes != 0 {
		t.Fatalf("got %+v, want pruned zero-minute path", p)
	}
	if p.TargetConcept != "c" {
		t.Fatalf("target = %s, want original target when nothing fits", p.TargetConcept)
	}
}

func TestResolvePath_GraphStoreFailure(t *testing.T) {
	r := newResolver(t, &fakeGraphProvider{err: errors.New("down")}, &fakeProgressReader{}, nil)
	if p := r.ResolvePath(context.Background(), "u1", "c", 1000); p != nil {
		t.Fatalf("store failure resolved to %+v, want nil", p)
	}
}

func TestResolvePath_ProgressStoreFailure(t *testing.T) {
	r := newResolver(t, &fakeGraphProvider{g: chainGraph(t)}, &fakeProgressReader{err: errors.New("down")}, nil)
	if p := r.ResolvePath(context.Background(), "u1", "c", 1000); p != nil {
		t.Fatalf("store failure resolved to %+v, want nil", p)
	}
}

func TestResolvePath_ZeroUnitConceptsStillCost(t *testing.T) {
	// Chain concepts with no content: batch floors once to 2 minutes.
	r := newResolver(t, &fakeGraphProvider{g: chainGraph(t)}, &fakeProgressReader{}, map[string]int64{})
	p := r.ResolvePath(context.Background(), "u1", "c", 1000)
	if p == nil {
		t.Fatal("expected a path")
	}
	if p.EstimatedTimeMinutes != 2 || p.Pruned {
		t.Fatalf("got %+v, want 2-minute unpruned path", p)
	}
}
