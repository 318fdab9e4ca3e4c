package validation

import (
	"fmt"

	"github.com/qubeflow/qubeflow/pkg/models"
)

// PolicyMode selects how quantum-security reachability is evaluated.
type PolicyMode string

const (
	// PolicyFirstDiscovery propagates a "quantum seen" flag breadth-first from the
	// triggers and finalizes each node with the flag it is first dequeued with. A node
	// reachable through both a secured and an unsecured path is judged by whichever
	// arrives first, so some unsecured paths go unreported.
	PolicyFirstDiscovery PolicyMode = "first-discovery"

	// PolicyAllPaths reports every action reachable from a trigger through at least one
	// path that avoids all quantum nodes. The result does not depend on edge order.
	PolicyAllPaths PolicyMode = "all-paths"
)

// ParsePolicyMode converts a flag value into a PolicyMode.
func ParsePolicyMode(s string) (PolicyMode, error) {
	switch PolicyMode(s) {
	case "", PolicyFirstDiscovery:
		return PolicyFirstDiscovery, nil
	case PolicyAllPaths:
		return PolicyAllPaths, nil
	default:
		return "", fmt.Errorf("unknown policy mode %q", s)
	}
}

// CheckSecurityPolicy reports actions that can run without upstream quantum security,
// when the workflow's evolution policy demands it.
func CheckSecurityPolicy(w *models.Workflow, mode PolicyMode) []Issue {
	return checkSecurityPolicy(w, BuildAdjacency(w.Nodes, w.Edges), mode)
}

func checkSecurityPolicy(w *models.Workflow, adj Adjacency, mode PolicyMode) []Issue {
	issues := make([]Issue, 0)

	if !w.RequiresQubeSecurity() {
		return issues
	}

	index := indexNodes(w.Nodes)

	if !hasQuantumNode(w.Nodes) {
		return append(issues, Issue{
			Code:    CodeMissingQuantum,
			Message: "evolution policy requires Qube security but the workflow has no quantum-secured node",
		})
	}

	var insecure []string
	if mode == PolicyAllPaths {
		insecure = unsecuredActionsAllPaths(w.Nodes, index, adj)
	} else {
		insecure = unsecuredActionsFirstDiscovery(w.Nodes, index, adj)
	}

	for _, id := range insecure {
		issues = append(issues, Issue{
			Code:    CodeQuantumPolicy,
			Message: fmt.Sprintf("action node %q is reachable from a trigger without passing a quantum-secured node", id),
			NodeID:  id,
		})
	}

	return issues
}

func hasQuantumNode(nodes []models.Node) bool {
	for i := range nodes {
		if nodes[i].IsQuantum() {
			return true
		}
	}

	return false
}

type taint struct {
	nodeID  string
	secured bool
}

func unsecuredActionsFirstDiscovery(nodes []models.Node, index map[string]*models.Node, adj Adjacency) []string {
	queue := make([]taint, 0, len(nodes))

	for i := range nodes {
		if nodes[i].IsTrigger() {
			queue = append(queue, taint{nodeID: nodes[i].ID, secured: nodes[i].IsQuantum()})
		}
	}

	visited := make(map[string]bool, len(nodes))
	insecure := make([]string, 0)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if visited[cur.nodeID] {
			continue
		}

		visited[cur.nodeID] = true

		node := index[cur.nodeID]
		secured := cur.secured || node.IsQuantum()

		if node.IsAction() && !secured {
			insecure = append(insecure, node.ID)
		}

		for _, e := range adj.Outgoing[node.ID] {
			if _, known := index[e.To.NodeID]; known && !visited[e.To.NodeID] {
				queue = append(queue, taint{nodeID: e.To.NodeID, secured: secured})
			}
		}
	}

	return insecure
}

// unsecuredActionsAllPaths walks from the triggers without ever entering a quantum node.
// Every action it reaches has an unsecured path.
func unsecuredActionsAllPaths(nodes []models.Node, index map[string]*models.Node, adj Adjacency) []string {
	queue := make([]string, 0, len(nodes))
	visited := make(map[string]bool, len(nodes))

	for i := range nodes {
		if nodes[i].IsTrigger() && !visited[nodes[i].ID] {
			visited[nodes[i].ID] = true
			queue = append(queue, nodes[i].ID)
		}
	}

	insecure := make([]string, 0)

	for len(queue) > 0 {
		node := index[queue[0]]
		queue = queue[1:]

		if node.IsAction() {
			insecure = append(insecure, node.ID)
		}

		for _, e := range adj.Outgoing[node.ID] {
			next, known := index[e.To.NodeID]
			if !known || visited[next.ID] || next.IsQuantum() {
				continue
			}

			visited[next.ID] = true
			queue = append(queue, next.ID)
		}
	}

	return insecure
}
