package dag

import (
	"errors"
	"strings"
	"testing"
)

// node describes a graph node for buildGraph: an ID and its dependencies.
type node struct {
	id   int
	deps []int
}

func buildGraph(t *testing.T, nodes []node) *Graph {
	t.Helper()
	g := New()
	for _, s := range nodes {
		if err := g.AddNode(s.id); err != nil {
			t.Fatalf("AddNode(%d): %v", s.id, err)
		}
	}
	for _, s := range nodes {
		for _, dep := range s.deps {
			if err := g.AddEdge(s.id, dep); err != nil {
				t.Fatalf("AddEdge(%d, %d): %v", s.id, dep, err)
			}
		}
	}
	return g
}

// validTopologicalOrder checks that every dependency appears before
// its dependent in the ordering.
func validTopologicalOrder(g *Graph, order []int) bool {
	pos := make(map[int]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for id, deps := range g.adjacency {
		for dep := range deps {
			if pos[dep] >= pos[id] {
				return false
			}
		}
	}
	return true
}

func TestAddNode(t *testing.T) {
	t.Parallel()

	t.Run("basic add", func(t *testing.T) {
		t.Parallel()
		g := New()
		if err := g.AddNode(1); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
		if g.Len() != 1 {
			t.Errorf("Len() = %d, want 1", g.Len())
		}
		if !g.Has(1) {
			t.Error("Has(1) = false, want true")
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		t.Parallel()
		g := New()
		_ = g.AddNode(1)
		err := g.AddNode(1)
		if !errors.Is(err, ErrDuplicateNode) {
			t.Errorf("got %v, want ErrDuplicateNode", err)
		}
	})
}

func TestAddEdge(t *testing.T) {
	t.Parallel()

	t.Run("missing node", func(t *testing.T) {
		t.Parallel()
		g := New()
		_ = g.AddNode(1)
		if err := g.AddEdge(1, 2); !errors.Is(err, ErrNodeNotFound) {
			t.Errorf("got %v, want ErrNodeNotFound", err)
		}
		if err := g.AddEdge(2, 1); !errors.Is(err, ErrNodeNotFound) {
			t.Errorf("got %v, want ErrNodeNotFound", err)
		}
	})

	t.Run("self edge", func(t *testing.T) {
		t.Parallel()
		g := New()
		_ = g.AddNode(1)
		if err := g.AddEdge(1, 1); !errors.Is(err, ErrSelfEdge) {
			t.Errorf("got %v, want ErrSelfEdge", err)
		}
	})

	t.Run("duplicate edge is no-op", func(t *testing.T) {
		t.Parallel()
		g := buildGraph(t, []node{{id: 1}, {id: 2, deps: []int{1}}})
		if err := g.AddEdge(2, 1); err != nil {
			t.Fatalf("duplicate AddEdge: %v", err)
		}
		if got := g.Dependencies(2); len(got) != 1 || got[0] != 1 {
			t.Errorf("Dependencies(2) = %v, want [1]", got)
		}
	})
}

func TestDependentsAndDependencies(t *testing.T) {
	t.Parallel()
	g := buildGraph(t, []node{
		{id: 1},
		{id: 2, deps: []int{1}},
		{id: 3, deps: []int{1, 2}},
	})

	if got := g.Dependencies(3); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("Dependencies(3) = %v, want [1 2]", got)
	}
	if got := g.Dependents(1); len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("Dependents(1) = %v, want [2 3]", got)
	}
}

func TestRootsAndLeaves(t *testing.T) {
	t.Parallel()
	g := buildGraph(t, []node{
		{id: 1},
		{id: 2, deps: []int{1}},
		{id: 3, deps: []int{2}},
		{id: 4},
	})

	if got := g.Roots(); len(got) != 2 || got[0] != 1 || got[1] != 4 {
		t.Errorf("Roots() = %v, want [1 4]", got)
	}
	if got := g.Leaves(); len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Errorf("Leaves() = %v, want [3 4]", got)
	}
}

func TestTopologicalSort(t *testing.T) {
	t.Parallel()

	t.Run("chain", func(t *testing.T) {
		t.Parallel()
		g := buildGraph(t, []node{
			{id: 1},
			{id: 2, deps: []int{1}},
			{id: 3, deps: []int{2}},
		})
		order, err := g.TopologicalSort()
		if err != nil {
			t.Fatalf("TopologicalSort: %v", err)
		}
		if len(order) != 3 || !validTopologicalOrder(g, order) {
			t.Errorf("invalid order %v", order)
		}
	})

	t.Run("diamond", func(t *testing.T) {
		t.Parallel()
		g := buildGraph(t, []node{
			{id: 1},
			{id: 2, deps: []int{1}},
			{id: 3, deps: []int{1}},
			{id: 4, deps: []int{2, 3}},
		})
		order, err := g.TopologicalSort()
		if err != nil {
			t.Fatalf("TopologicalSort: %v", err)
		}
		if !validTopologicalOrder(g, order) {
			t.Errorf("invalid order %v", order)
		}
		if order[0] != 1 || order[len(order)-1] != 4 {
			t.Errorf("order = %v, want 1 first and 4 last", order)
		}
	})

	t.Run("deterministic among free nodes", func(t *testing.T) {
		t.Parallel()
		g := buildGraph(t, []node{{id: 3}, {id: 1}, {id: 2}})
		for range 10 {
			order, err := g.TopologicalSort()
			if err != nil {
				t.Fatalf("TopologicalSort: %v", err)
			}
			if order[0] != 1 || order[1] != 2 || order[2] != 3 {
				t.Fatalf("order = %v, want [1 2 3]", order)
			}
		}
	})

	t.Run("two-node cycle", func(t *testing.T) {
		t.Parallel()
		g := buildGraph(t, []node{{id: 1}, {id: 2}})
		_ = g.AddEdge(1, 2)
		_ = g.AddEdge(2, 1)

		_, err := g.TopologicalSort()
		if !errors.Is(err, ErrCycle) {
			t.Fatalf("got %v, want ErrCycle", err)
		}
		var ce *CycleError
		if !errors.As(err, &ce) {
			t.Fatalf("error %v is not a *CycleError", err)
		}
		if len(ce.Members) != 2 || ce.Members[0] != 1 || ce.Members[1] != 2 {
			t.Errorf("Members = %v, want [1 2]", ce.Members)
		}
		if !strings.Contains(ce.Error(), "1") || !strings.Contains(ce.Error(), "2") {
			t.Errorf("Error() = %q, want cycle member IDs named", ce.Error())
		}
	})

	t.Run("cycle with clean prefix", func(t *testing.T) {
		t.Parallel()
		g := buildGraph(t, []node{{id: 1}, {id: 2, deps: []int{1}}, {id: 3}, {id: 4}})
		_ = g.AddEdge(3, 4)
		_ = g.AddEdge(4, 3)

		_, err := g.TopologicalSort()
		var ce *CycleError
		if !errors.As(err, &ce) {
			t.Fatalf("got %v, want *CycleError", err)
		}
		if len(ce.Members) != 2 || ce.Members[0] != 3 || ce.Members[1] != 4 {
			t.Errorf("Members = %v, want [3 4]", ce.Members)
		}
	})
}
