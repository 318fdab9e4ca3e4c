package validation

import (
	"fmt"

	"github.com/qubeflow/qubeflow/pkg/models"
)

// CheckConnectivity reports dangling edges, wrong port directions and under-connected
// inputs. Edge findings come first, in edge order, then input findings in node order.
func CheckConnectivity(nodes []models.Node, edges []models.Edge) []Issue {
	return checkConnectivity(nodes, edges, BuildAdjacency(nodes, edges))
}

func checkConnectivity(nodes []models.Node, edges []models.Edge, adj Adjacency) []Issue {
	index := indexNodes(nodes)
	issues := make([]Issue, 0)

	for _, e := range edges {
		if issue, bad := checkEndpoint(index, e, e.From, models.PortDirectionOut, "source"); bad {
			issues = append(issues, issue)
		}

		if issue, bad := checkEndpoint(index, e, e.To, models.PortDirectionIn, "target"); bad {
			issues = append(issues, issue)
		}
	}

	for i := range nodes {
		node := &nodes[i]
		if node.IsTrigger() {
			continue
		}

		required := len(node.InputPorts())
		if required == 0 {
			continue
		}

		if got := adj.Incoming[node.ID]; got < required {
			issues = append(issues, Issue{
				Code: CodeUnconnectedInput,
				Message: fmt.Sprintf("node %q declares %d input port(s) but has %d incoming edge(s)",
					node.ID, required, got),
				NodeID: node.ID,
			})
		}
	}

	return issues
}

func checkEndpoint(
	index map[string]*models.Node,
	edge models.Edge,
	end models.Endpoint,
	want models.PortDirection,
	role string,
) (Issue, bool) {
	node, ok := index[end.NodeID]
	if !ok {
		return Issue{
			Code:    CodeMissingNode,
			Message: fmt.Sprintf("edge %q %s references unknown node %q", edge.ID, role, end.NodeID),
			NodeID:  end.NodeID,
			EdgeID:  edge.ID,
		}, true
	}

	port, ok := node.PortByID(end.PortID)
	if !ok {
		return Issue{
			Code:    CodeMissingPort,
			Message: fmt.Sprintf("edge %q %s references unknown port %q on node %q", edge.ID, role, end.PortID, node.ID),
			NodeID:  node.ID,
			EdgeID:  edge.ID,
		}, true
	}

	if port.Direction != want {
		return Issue{
			Code: CodeInvalidPortDirection,
			Message: fmt.Sprintf("edge %q %s port %q on node %q has direction %q, expected %q",
				edge.ID, role, port.ID, node.ID, port.Direction, want),
			NodeID: node.ID,
			EdgeID: edge.ID,
		}, true
	}

	return Issue{}, false
}

// indexNodes maps ids to nodes. The first node wins when ids repeat.
func indexNodes(nodes []models.Node) map[string]*models.Node {
	index := make(map[string]*models.Node, len(nodes))

	for i := range nodes {
		if _, seen := index[nodes[i].ID]; !seen {
			index[nodes[i].ID] = &nodes[i]
		}
	}

	return index
}
