package netgraph

// CycleBasis returns a fundamental cycle basis of the graph: a minimal set
// of independent simple cycles whose combinations span every cycle.
//
// It builds a depth-first spanning forest over the simple-undirected view of
// the graph; each non-tree edge closes exactly one cycle, recovered by
// walking parent pointers from both endpoints back to their meeting point in
// the tree. Components are rooted at the first-inserted unvisited node and
// neighbors are visited in edge insertion order, so the result is
// deterministic for a given ingestion sequence.
//
// A self-loop contributes a single-node cycle; it can never be part of a
// cycle of length >= 3.
func (g *EntityGraph) CycleBasis() [][]string {
	cycles := make([][]string, 0)
	visited := make(map[string]struct{}, len(g.order))

	for _, root := range g.order {
		if _, ok := visited[root]; ok {
			continue
		}

		pred := map[string]string{root: root}
		// used[n] holds the neighbors via which n has already been reached,
		// so each non-tree edge closes exactly one cycle.
		used := map[string]map[string]struct{}{root: {}}
		stack := []string{root}

		for len(stack) > 0 {
			z := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			zused := used[z]

			for _, nbr := range g.adj[z] {
				if nbr == z {
					cycles = append(cycles, []string{z})
					continue
				}
				if _, seen := used[nbr]; !seen {
					pred[nbr] = z
					stack = append(stack, nbr)
					used[nbr] = map[string]struct{}{z: {}}
					continue
				}
				if _, closed := zused[nbr]; closed {
					continue
				}
				// Non-tree edge z-nbr: walk tree parents from z until we hit
				// a node already known to nbr.
				pn := used[nbr]
				cycle := []string{nbr, z}
				p := pred[z]
				for {
					if _, ok := pn[p]; ok {
						break
					}
					cycle = append(cycle, p)
					p = pred[p]
				}
				cycle = append(cycle, p)
				cycles = append(cycles, cycle)
				used[nbr][z] = struct{}{}
			}
		}

		for n := range pred {
			visited[n] = struct{}{}
		}
	}

	return cycles
}
