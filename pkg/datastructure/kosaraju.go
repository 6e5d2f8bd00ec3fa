package datastructure

// StronglyConnectedComponents runs kosaraju's algorithm over the graph and returns the component id of every
// vertex plus the number of components. ids are assigned in discovery order of the second pass.
// grid graphs have an edge (v,u) for every edge (u,v), so the components are the connected free regions.
func (g *Graph) StronglyConnectedComponents() ([]Index, int) {
	n := g.NumberOfVertices()

	inAdj := make([][]Index, n)
	for u := Index(0); u < Index(n); u++ {
		g.ForOutEdgesOf(u, func(e *OutEdge) {
			inAdj[e.head] = append(inAdj[e.head], u)
		})
	}
	outAdj := func(u Index) []Index {
		return g.GetNeighbors(u)
	}
	reversedAdj := func(u Index) []Index {
		return inAdj[u]
	}

	order := make([]Index, 0, n)
	visited := make([]bool, n)
	for v := Index(0); v < Index(n); v++ {
		if !visited[v] {
			dfs(v, outAdj, visited, &order)
		}
	}

	sccs := make([]Index, n)
	visited = make([]bool, n)
	numComponents := 0
	component := make([]Index, 0, 16)
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		if visited[v] {
			continue
		}
		component = component[:0]
		dfs(v, reversedAdj, visited, &component)
		for _, u := range component {
			sccs[u] = Index(numComponents)
		}
		numComponents++
	}

	return sccs, numComponents
}

type dfsFrame struct {
	v         Index
	neighbors []Index
	next      int
}

// dfs appends the vertices reachable from s to output in post-order. explicit stack, a large open grid
// would overflow the goroutine stack with recursion.
func dfs(s Index, adj func(Index) []Index, visited []bool, output *[]Index) {
	visited[s] = true
	stack := []dfsFrame{{v: s, neighbors: adj(s)}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.neighbors) {
			u := top.neighbors[top.next]
			top.next++
			if !visited[u] {
				visited[u] = true
				stack = append(stack, dfsFrame{v: u, neighbors: adj(u)})
			}
			continue
		}
		*output = append(*output, top.v)
		stack = stack[:len(stack)-1]
	}
}
