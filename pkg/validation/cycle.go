package validation

import "github.com/qubeflow/qubeflow/pkg/models"

// HasCycle reports whether the directed graph contains a cycle, self-loops included.
// DFS starts from every node so disconnected components are covered.
func HasCycle(nodes []models.Node, edges []models.Edge) bool {
	return hasCycle(nodes, BuildAdjacency(nodes, edges))
}

func hasCycle(nodes []models.Node, adj Adjacency) bool {
	onStack := make(map[string]bool, len(nodes))
	done := make(map[string]bool, len(nodes))

	var visit func(id string) bool
	visit = func(id string) bool {
		onStack[id] = true

		for _, e := range adj.Outgoing[id] {
			next := e.To.NodeID
			if !adj.Has(next) {
				continue
			}

			if onStack[next] {
				return true // back-edge
			}

			if !done[next] && visit(next) {
				return true
			}
		}

		onStack[id] = false
		done[id] = true

		return false
	}

	for _, n := range nodes {
		if !done[n.ID] && visit(n.ID) {
			return true
		}
	}

	return false
}
