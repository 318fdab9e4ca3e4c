package validation

import (
	"testing"

	"github.com/qubeflow/qubeflow/pkg/models"
	"github.com/qubeflow/qubeflow/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConnectivity_ValidGraph(t *testing.T) {
	w := testutil.SecuredPipeline()

	assert.Empty(t, CheckConnectivity(w.Nodes, w.Edges))
}

func TestCheckConnectivity_MissingNode(t *testing.T) {
	nodes := []models.Node{testutil.Trigger("T"), testutil.Action("A")}
	edges := []models.Edge{
		testutil.Link("e1", "T", "A"),
		testutil.Link("e2", "ghost", "A"),
		testutil.Link("e3", "T", "phantom"),
	}

	issues := CheckConnectivity(nodes, edges)

	require.Len(t, issues, 2)
	assert.Equal(t, Issue{
		Code:    CodeMissingNode,
		Message: `edge "e2" source references unknown node "ghost"`,
		NodeID:  "ghost",
		EdgeID:  "e2",
	}, issues[0])
	assert.Equal(t, CodeMissingNode, issues[1].Code)
	assert.Equal(t, "phantom", issues[1].NodeID)
	assert.Equal(t, "e3", issues[1].EdgeID)
}

func TestCheckConnectivity_MissingPort(t *testing.T) {
	nodes := []models.Node{testutil.Trigger("T"), testutil.Action("A")}
	edges := []models.Edge{testutil.Connect("e1", "T", "nope", "A", "in")}

	issues := CheckConnectivity(nodes, edges)

	require.Len(t, issues, 1)
	assert.Equal(t, CodeMissingPort, issues[0].Code)
	assert.Equal(t, "T", issues[0].NodeID)
	assert.Equal(t, "e1", issues[0].EdgeID)
}

func TestCheckConnectivity_WrongSourceDirection(t *testing.T) {
	nodes := []models.Node{testutil.CreateTestNode("M"), testutil.Action("A")}
	edges := []models.Edge{
		testutil.Link("ok", "M", "A"),
		testutil.Connect("wrong", "M", "in", "A", "in"),
	}

	issues := CheckConnectivity(nodes, edges)

	var direction []Issue

	for _, i := range issues {
		if i.Code == CodeInvalidPortDirection {
			direction = append(direction, i)
		}
	}

	require.Len(t, direction, 1)
	assert.Equal(t, "wrong", direction[0].EdgeID)
	assert.Equal(t, "M", direction[0].NodeID)
}

func TestCheckConnectivity_BothEndpointsWrongDirection(t *testing.T) {
	nodes := []models.Node{testutil.CreateTestNode("a"), testutil.CreateTestNode("b")}
	edges := []models.Edge{testutil.Connect("e1", "a", "in", "b", "out")}

	issues := CheckConnectivity(nodes, edges)

	// b still has no edge into an input port, but the count is per node, not per port.
	require.Len(t, issues, 3)
	assert.Equal(t, []IssueCode{CodeInvalidPortDirection, CodeInvalidPortDirection, CodeUnconnectedInput},
		Result{Issues: issues}.Codes())
	assert.Equal(t, "a", issues[0].NodeID)
	assert.Equal(t, "b", issues[1].NodeID)
	assert.Equal(t, "a", issues[2].NodeID)
}

func TestCheckConnectivity_UnconnectedInput(t *testing.T) {
	merge := testutil.CreateTestNode("merge", testutil.WithType(models.NodeTypeLogicMerge),
		testutil.WithPorts(models.InPort("left"), models.InPort("right"), models.OutPort("out")))

	nodes := []models.Node{testutil.Trigger("T"), merge}
	edges := []models.Edge{testutil.Connect("e1", "T", "out", "merge", "left")}

	issues := CheckConnectivity(nodes, edges)

	require.Len(t, issues, 1)
	assert.Equal(t, CodeUnconnectedInput, issues[0].Code)
	assert.Equal(t, "merge", issues[0].NodeID)
	assert.Empty(t, issues[0].EdgeID)
}

func TestCheckConnectivity_InputCountIsPerEdgeNotPerPort(t *testing.T) {
	merge := testutil.CreateTestNode("merge", testutil.WithType(models.NodeTypeLogicMerge),
		testutil.WithPorts(models.InPort("left"), models.InPort("right"), models.OutPort("out")))

	nodes := []models.Node{testutil.Trigger("T"), merge}
	edges := []models.Edge{
		testutil.Connect("e1", "T", "out", "merge", "left"),
		testutil.Connect("e2", "T", "out", "merge", "left"),
	}

	assert.Empty(t, CheckConnectivity(nodes, edges))
}

func TestCheckConnectivity_TriggersAreNeverInputChecked(t *testing.T) {
	trigger := testutil.Trigger("T", testutil.WithPorts(models.InPort("a"), models.InPort("b"), models.OutPort("out")))

	assert.Empty(t, CheckConnectivity([]models.Node{trigger}, nil))
}

func TestCheckConnectivity_NodesWithoutInputsAreSkipped(t *testing.T) {
	source := testutil.CreateTestNode("src", testutil.WithPorts(models.OutPort("out")))

	assert.Empty(t, CheckConnectivity([]models.Node{source}, nil))
}

func TestCheckConnectivity_AggregatesEverything(t *testing.T) {
	nodes := []models.Node{testutil.Trigger("T"), testutil.Action("A"), testutil.Action("B")}
	edges := []models.Edge{
		testutil.Link("e1", "ghost", "A"),
		testutil.Connect("e2", "T", "missing", "A", "in"),
	}

	issues := CheckConnectivity(nodes, edges)

	assert.Equal(t, []IssueCode{CodeMissingNode, CodeMissingPort, CodeUnconnectedInput}, Result{Issues: issues}.Codes())
	assert.Equal(t, "B", issues[2].NodeID)
}
