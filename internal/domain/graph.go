package domain

import (
	"container/heap"
	"slices"
)

// Graph is a directed dependency graph over task ids.
// An edge from a to b means a depends on b. Edges to ids that are not
// nodes of the graph are kept but ignored by ordering.
type Graph struct {
	deps  map[string][]string
	index map[string]int
	nodes []string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		deps:  make(map[string][]string),
		index: make(map[string]int),
	}
}

// AddNode adds id with its dependencies. Adding an existing id replaces its edges.
func (g *Graph) AddNode(id string, deps []string) {
	if _, ok := g.index[id]; !ok {
		g.index[id] = len(g.nodes)
		g.nodes = append(g.nodes, id)
	}
	g.deps[id] = slices.Clone(deps)
}

// AddEdge adds a single dependency edge from id to dep.
func (g *Graph) AddEdge(id, dep string) {
	if _, ok := g.index[id]; !ok {
		g.AddNode(id, nil)
	}
	if !slices.Contains(g.deps[id], dep) {
		g.deps[id] = append(g.deps[id], dep)
	}
}

// Has reports whether id is a node.
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Nodes returns the node ids in insertion order.
func (g *Graph) Nodes() []string {
	return slices.Clone(g.nodes)
}

// Deps returns the direct dependencies of id.
func (g *Graph) Deps(id string) []string {
	return slices.Clone(g.deps[id])
}

// Reaches reports whether to is reachable from from by following dependency edges.
func (g *Graph) Reaches(from, to string) bool {
	seen := make(map[string]bool)
	stack := []string{from}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == to {
			return true
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		stack = append(stack, g.deps[n]...)
	}
	return false
}

// WouldCycle reports whether giving id the dependencies deps closes a cycle.
func (g *Graph) WouldCycle(id string, deps []string) bool {
	for _, d := range deps {
		if d == id || g.Reaches(d, id) {
			return true
		}
	}
	return false
}

// Dependents returns every node that transitively depends on id, in insertion order.
func (g *Graph) Dependents(id string) []string {
	var out []string
	for _, n := range g.nodes {
		if n != id && g.Reaches(n, id) {
			out = append(out, n)
		}
	}
	return out
}

// Layers groups nodes by topological depth: layer 0 has no predecessors among
// the nodes, layer k only has predecessors in layers < k. Within a layer nodes
// keep insertion order. Nodes left over by a cycle form a final layer.
func (g *Graph) Layers() [][]string {
	indeg, dependents := g.adjacency()
	depth := make([]int, len(g.nodes))
	done := make([]bool, len(g.nodes))

	queue := make([]int, 0, len(g.nodes))
	for i := range g.nodes {
		if indeg[i] == 0 {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		done[n] = true
		for _, m := range dependents[n] {
			depth[m] = max(depth[m], depth[n]+1)
			indeg[m]--
			if indeg[m] == 0 {
				queue = append(queue, m)
			}
		}
	}

	var layers [][]string
	var leftover []string
	for i, id := range g.nodes {
		if !done[i] {
			leftover = append(leftover, id)
			continue
		}
		for len(layers) <= depth[i] {
			layers = append(layers, nil)
		}
		layers[depth[i]] = append(layers[depth[i]], id)
	}
	if len(leftover) > 0 {
		layers = append(layers, leftover)
	}
	return layers
}

// TopoOrder returns a deterministic topological order. Among ready nodes the
// one ordered first by less is emitted first. Nodes caught in a cycle are
// appended at the end in less order.
func (g *Graph) TopoOrder(less func(a, b string) bool) []string {
	indeg, dependents := g.adjacency()

	ready := &idHeap{less: func(i, j int) bool { return less(g.nodes[i], g.nodes[j]) }}
	for i := range g.nodes {
		if indeg[i] == 0 {
			heap.Push(ready, i)
		}
	}

	out := make([]string, 0, len(g.nodes))
	emitted := make([]bool, len(g.nodes))
	for ready.Len() > 0 {
		n := heap.Pop(ready).(int)
		out = append(out, g.nodes[n])
		emitted[n] = true
		for _, m := range dependents[n] {
			indeg[m]--
			if indeg[m] == 0 {
				heap.Push(ready, m)
			}
		}
	}

	var rest []string
	for i, id := range g.nodes {
		if !emitted[i] {
			rest = append(rest, id)
		}
	}
	slices.SortStableFunc(rest, func(a, b string) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		}
		return 0
	})
	return append(out, rest...)
}

// adjacency returns in-degrees and reverse edges over known nodes.
func (g *Graph) adjacency() ([]int, [][]int) {
	indeg := make([]int, len(g.nodes))
	dependents := make([][]int, len(g.nodes))
	for i, id := range g.nodes {
		for _, d := range g.deps[id] {
			j, ok := g.index[d]
			if !ok || slices.Contains(dependents[j], i) {
				continue
			}
			dependents[j] = append(dependents[j], i)
			indeg[i]++
		}
	}
	return indeg, dependents
}

type idHeap struct {
	less  func(i, j int) bool
	items []int
}

func (h *idHeap) Len() int           { return len(h.items) }
func (h *idHeap) Less(i, j int) bool { return h.less(h.items[i], h.items[j]) }
func (h *idHeap) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *idHeap) Push(x any)         { h.items = append(h.items, x.(int)) }
func (h *idHeap) Pop() any {
	old := h.items
	n := len(old)
	x := old[n-1]
	h.items = old[:n-1]
	return x
}
