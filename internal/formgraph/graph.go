package formgraph

import (
	"container/heap"
	"sort"

	"github.com/shopspring/decimal"
)

type node struct {
	id      FieldID
	group   string
	kind    Kind
	inputs  []FieldID
	compute func(Values) (decimal.Decimal, Signal)
	allowed map[FieldID]struct{}
}

// Graph is an immutable, validated set of field declarations.
type Graph struct {
	nodes    []*node // registration order
	index    map[FieldID]int
	outgoing [][]int // input -> dependents, ascending
	indeg    []int

	order    []int // topological, ties broken by registration order
	position []int // node index -> position in order
}

// Fields returns every field id in registration order.
func (g *Graph) Fields() []FieldID {
	out := make([]FieldID, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.id
	}
	return out
}

// Order returns every field id in evaluation order.
func (g *Graph) Order() []FieldID {
	out := make([]FieldID, len(g.order))
	for i, idx := range g.order {
		out[i] = g.nodes[idx].id
	}
	return out
}

// Has reports whether the field is declared.
func (g *Graph) Has(id FieldID) bool {
	_, ok := g.index[id]
	return ok
}

// Kind returns whether the field is a leaf or derived.
func (g *Graph) Kind(id FieldID) (Kind, bool) {
	i, ok := g.index[id]
	if !ok {
		return Leaf, false
	}
	return g.nodes[i].kind, true
}

// Group returns the group the field was declared in.
func (g *Graph) Group(id FieldID) (string, bool) {
	i, ok := g.index[id]
	if !ok {
		return "", false
	}
	return g.nodes[i].group, true
}

// Inputs returns the declared inputs of a derived field.
func (g *Graph) Inputs(id FieldID) []FieldID {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return append([]FieldID(nil), g.nodes[i].inputs...)
}

// Downstream returns, in evaluation order, every derived field reachable
// from the given fields. A derived starting field is included; unknown ids
// are ignored.
func (g *Graph) Downstream(from ...FieldID) []FieldID {
	idx := g.downstream(from)
	out := make([]FieldID, len(idx))
	for i, n := range idx {
		out[i] = g.nodes[n].id
	}
	return out
}

func (g *Graph) downstream(from []FieldID) []int {
	seen := make([]bool, len(g.nodes))
	var stack []int
	for _, id := range from {
		i, ok := g.index[id]
		if !ok || seen[i] {
			continue
		}
		seen[i] = true
		stack = append(stack, i)
	}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, v := range g.outgoing[u] {
			if !seen[v] {
				seen[v] = true
				stack = append(stack, v)
			}
		}
	}

	var out []int
	for i, ok := range seen {
		if ok && g.nodes[i].kind == Derived {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return g.position[out[a]] < g.position[out[b]] })
	return out
}

func (g *Graph) derived() []int {
	var out []int
	for _, i := range g.order {
		if g.nodes[i].kind == Derived {
			out = append(out, i)
		}
	}
	return out
}

type intMinHeap []int

func (h intMinHeap) Len() int           { return len(h) }
func (h intMinHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *intMinHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *intMinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// sortTopological fixes the evaluation order with Kahn's algorithm. The
// ready queue is a min-heap by registration index, so the order depends only
// on the declarations.
func (g *Graph) sortTopological() error {
	indeg := make([]int, len(g.indeg))
	copy(indeg, g.indeg)

	ready := &intMinHeap{}
	for i, d := range indeg {
		if d == 0 {
			heap.Push(ready, i)
		}
	}

	order := make([]int, 0, len(g.nodes))
	for ready.Len() > 0 {
		u := heap.Pop(ready).(int)
		order = append(order, u)
		for _, v := range g.outgoing[u] {
			indeg[v]--
			if indeg[v] == 0 {
				heap.Push(ready, v)
			}
		}
	}
	if len(order) != len(g.nodes) {
		return cycleError(g.findCycle())
	}

	g.order = order
	g.position = make([]int, len(g.nodes))
	for pos, i := range order {
		g.position[i] = pos
	}
	return nil
}

// findCycle walks the graph depth-first in registration order and returns
// one cycle as a closed path, first field repeated at the end.
func (g *Graph) findCycle() []FieldID {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, len(g.nodes))
	parent := make([]int, len(g.nodes))
	for i := range parent {
		parent[i] = -1
	}

	var cycle []int
	var dfs func(u int) bool
	dfs = func(u int) bool {
		color[u] = gray
		for _, v := range g.outgoing[u] {
			switch color[v] {
			case white:
				parent[v] = u
				if dfs(v) {
					return true
				}
			case gray:
				// back edge u -> v closes v ... u -> v
				cycle = append(cycle, v)
				for cur := u; cur != -1 && cur != v; cur = parent[cur] {
					cycle = append(cycle, cur)
				}
				cycle = append(cycle, v)
				return true
			}
		}
		color[u] = black
		return false
	}

	for i := range g.nodes {
		if color[i] == white && dfs(i) {
			break
		}
	}

	out := make([]FieldID, len(cycle))
	for i := range cycle {
		out[i] = g.nodes[cycle[len(cycle)-1-i]].id
	}
	return out
}
