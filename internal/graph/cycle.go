package graph

import (
	"fmt"
	"strings"
)

// color is a DFS visitation state: white (unvisited), gray (on the
// current recursion stack), or black (fully explored). Folding
// "visited" and "on the stack" into one three-state enum makes the
// back-edge test a single comparison.
type color uint8

const (
	white color = iota // unvisited
	gray               // on the current DFS recursion stack
	black              // fully explored
)

// CycleError carries the full cycle path, with the span of each
// reference along it — the back edge that closed the cycle is
// Edges[len-1].
type CycleError struct {
	Names []string // a -> b -> ... -> a
	Edges []Edge
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic rule dependency: %s", strings.Join(e.Names, " -> "))
}

// DetectCycle runs a DFS with recursion-stack coloring over names/edges
// and returns the first cycle found, with its full path, or nil if the
// graph is acyclic.
func DetectCycle(n int, names []string, edgesOf func(int) []Edge) *CycleError {
	colors := make([]color, n)
	var stack []int
	var stackEdges []Edge

	var visit func(int) *CycleError
	visit = func(u int) *CycleError {
		colors[u] = gray
		stack = append(stack, u)

		for _, e := range edgesOf(u) {
			v := e.To
			switch colors[v] {
			case white:
				stackEdges = append(stackEdges, e)
				if cyc := visit(v); cyc != nil {
					return cyc
				}
				stackEdges = stackEdges[:len(stackEdges)-1]
			case gray:
				// Back edge into the recursion stack: v is already an
				// ancestor of u. Reconstruct the cycle path starting
				// from v's position in stack.
				start := 0
				for i, s := range stack {
					if s == v {
						start = i
						break
					}
				}
				pathIdx := append(append([]int{}, stack[start:]...), v)
				pathEdges := append(append([]Edge{}, stackEdges[start:]...), e)
				pathNames := make([]string, len(pathIdx))
				for i, idx := range pathIdx {
					pathNames[i] = names[idx]
				}
				return &CycleError{Names: pathNames, Edges: pathEdges}
			case black:
				// fully explored elsewhere, no cycle through v
			}
		}

		colors[u] = black
		stack = stack[:len(stack)-1]
		return nil
	}

	for u := 0; u < n; u++ {
		if colors[u] == white {
			if cyc := visit(u); cyc != nil {
				return cyc
			}
		}
	}
	return nil
}
