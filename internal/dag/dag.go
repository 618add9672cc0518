// Package dag provides a directed acyclic graph over integer task IDs.
// It supports topological sorting, cycle detection with member reporting,
// and root/leaf queries used by the scheduling passes.
package dag

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrCycle is returned when the graph contains a dependency cycle.
var ErrCycle = errors.New("cycle detected")

// ErrNodeNotFound is returned when an operation references a non-existent node.
var ErrNodeNotFound = errors.New("node not found")

// ErrDuplicateNode is returned when adding a node that already exists.
var ErrDuplicateNode = errors.New("duplicate node")

// ErrSelfEdge is returned when an edge would create a self-loop.
var ErrSelfEdge = errors.New("self-referencing edge")

// CycleError reports the node IDs left unordered after a topological sweep.
// Every reported ID is on a cycle or downstream of one.
type CycleError struct {
	Members []int
}

// Error returns a human-readable description naming the cycle members.
func (e *CycleError) Error() string {
	ids := make([]string, len(e.Members))
	for i, id := range e.Members {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("cycle detected among tasks [%s]", strings.Join(ids, ", "))
}

// Unwrap returns ErrCycle for use with errors.Is.
func (e *CycleError) Unwrap() error {
	return ErrCycle
}

// Graph represents a directed acyclic graph of tasks.
// Edges point from a node to its dependencies: if A depends on B,
// there is an edge from A to B.
type Graph struct {
	nodes map[int]bool
	// adjacency maps nodeID → set of dependency IDs (forward edges).
	adjacency map[int]map[int]bool
	// reverse maps nodeID → set of dependent IDs (backward edges).
	reverse map[int]map[int]bool
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodes:     make(map[int]bool),
		adjacency: make(map[int]map[int]bool),
		reverse:   make(map[int]map[int]bool),
	}
}

// AddNode adds a node with the given ID. Returns ErrDuplicateNode if a
// node with that ID already exists.
func (g *Graph) AddNode(id int) error {
	if g.nodes[id] {
		return fmt.Errorf("%w: %d", ErrDuplicateNode, id)
	}
	g.nodes[id] = true
	g.adjacency[id] = make(map[int]bool)
	g.reverse[id] = make(map[int]bool)
	return nil
}

// AddEdge adds a dependency edge: from depends on to. Both nodes must
// already exist. Adding a duplicate edge is a no-op.
func (g *Graph) AddEdge(from, to int) error {
	if from == to {
		return fmt.Errorf("%w: %d", ErrSelfEdge, from)
	}
	if !g.nodes[from] {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, from)
	}
	if !g.nodes[to] {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, to)
	}
	g.adjacency[from][to] = true
	g.reverse[to][from] = true
	return nil
}

// Has reports whether a node with the given ID exists.
func (g *Graph) Has(id int) bool {
	return g.nodes[id]
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Dependencies returns the direct dependency IDs of a node, sorted ascending.
func (g *Graph) Dependencies(id int) []int {
	return sortedKeys(g.adjacency[id])
}

// Dependents returns the direct dependent IDs of a node, sorted ascending.
func (g *Graph) Dependents(id int) []int {
	return sortedKeys(g.reverse[id])
}

// Roots returns IDs of nodes with no dependencies, sorted ascending.
func (g *Graph) Roots() []int {
	var roots []int
	for id := range g.nodes {
		if len(g.adjacency[id]) == 0 {
			roots = append(roots, id)
		}
	}
	sort.Ints(roots)
	return roots
}

// Leaves returns IDs of nodes with no dependents, sorted ascending.
func (g *Graph) Leaves() []int {
	var leaves []int
	for id := range g.nodes {
		if len(g.reverse[id]) == 0 {
			leaves = append(leaves, id)
		}
	}
	sort.Ints(leaves)
	return leaves
}

// TopologicalSort returns node IDs in a valid topological order
// (dependencies come before dependents). Nodes freed at the same step are
// ordered by ascending ID so the result is deterministic for a given
// graph. Returns a *CycleError naming the unordered nodes if the graph
// contains a cycle.
//
// The sweep is a work queue where each node is enqueued exactly once,
// when its last dependency is ordered, so the loop is bounded by the
// node count even on malformed input.
func (g *Graph) TopologicalSort() ([]int, error) {
	inDegree := make(map[int]int, len(g.nodes))
	for id := range g.nodes {
		inDegree[id] = len(g.adjacency[id])
	}

	queue := g.zeroDegreeNodes(inDegree)
	sort.Ints(queue)

	sorted := make([]int, 0, len(g.nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		sorted = append(sorted, id)

		// Collect newly freed dependents.
		var freed []int
		for dependent := range g.reverse[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				freed = append(freed, dependent)
			}
		}
		if len(freed) > 0 {
			sort.Ints(freed)
			queue = append(queue, freed...)
		}
	}

	if len(sorted) != len(g.nodes) {
		return nil, &CycleError{Members: g.unordered(sorted)}
	}
	return sorted, nil
}

// unordered returns the IDs absent from the sorted prefix, ascending.
func (g *Graph) unordered(sorted []int) []int {
	seen := make(map[int]bool, len(sorted))
	for _, id := range sorted {
		seen[id] = true
	}
	var left []int
	for id := range g.nodes {
		if !seen[id] {
			left = append(left, id)
		}
	}
	sort.Ints(left)
	return left
}

// zeroDegreeNodes returns IDs from the in-degree map that have zero value.
func (g *Graph) zeroDegreeNodes(inDegree map[int]int) []int {
	var result []int
	for id, deg := range inDegree {
		if deg == 0 {
			result = append(result, id)
		}
	}
	return result
}

// sortedKeys returns the keys of a set, sorted ascending.
func sortedKeys(set map[int]bool) []int {
	if len(set) == 0 {
		return nil
	}
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
