package validation

import "github.com/qubeflow/qubeflow/pkg/models"

// Adjacency is the derived edge index shared by the graph analyses.
type Adjacency struct {
	// Outgoing lists, per node id, the edges leaving that node in edge order.
	Outgoing map[string][]models.Edge
	// Incoming counts, per node id, the edges arriving at that node.
	Incoming map[string]int
}

// BuildAdjacency indexes edges by node. Every node in nodes gets an entry in both maps.
// Edges whose endpoint node is not in nodes are left out of that endpoint's map.
func BuildAdjacency(nodes []models.Node, edges []models.Edge) Adjacency {
	adj := Adjacency{
		Outgoing: make(map[string][]models.Edge, len(nodes)),
		Incoming: make(map[string]int, len(nodes)),
	}

	for _, n := range nodes {
		if _, seen := adj.Outgoing[n.ID]; seen {
			continue
		}

		adj.Outgoing[n.ID] = []models.Edge{}
		adj.Incoming[n.ID] = 0
	}

	for _, e := range edges {
		if _, ok := adj.Outgoing[e.From.NodeID]; ok {
			adj.Outgoing[e.From.NodeID] = append(adj.Outgoing[e.From.NodeID], e)
		}

		if _, ok := adj.Incoming[e.To.NodeID]; ok {
			adj.Incoming[e.To.NodeID]++
		}
	}

	return adj
}

// Has reports whether id is a known node.
func (a Adjacency) Has(id string) bool {
	_, ok := a.Outgoing[id]

	return ok
}
