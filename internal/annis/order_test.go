package annis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthias-stemmler/rem-treebank-annis/pkg/errors"
)

var coverageComponent = Component{Type: Coverage, Layer: DefaultNamespace, Name: ""}

// tokenGraph builds a document with three ordered tokens. The segment
// node segA spans t1 and t2, segB spans t3; a plain span without the
// segmentation annotation covers t1 as well.
func tokenGraph(t *testing.T) *Graph {
	t.Helper()
	graph := NewGraph()

	u := NewUpdate()
	u.AddNode("x/doc1", NodeTypeCorpus)
	u.AddNodeAnno("x/doc1", DocKey, "doc1")

	for _, token := range []string{"x/doc1#t1", "x/doc1#t2", "x/doc1#t3"} {
		u.AddNode(token, NodeTypeNode)
	}
	u.AddEdge("x/doc1#t1", "x/doc1#t2", OrderingComponent)
	u.AddEdge("x/doc1#t2", "x/doc1#t3", OrderingComponent)

	u.AddNode("x/doc1#segA", NodeTypeNode)
	u.AddNodeAnno("x/doc1#segA", AnnoKey{NS: DefaultNamespace, Name: "tok_anno"}, "unde")
	u.AddEdge("x/doc1#segA", "x/doc1#t1", coverageComponent)
	u.AddEdge("x/doc1#segA", "x/doc1#t2", coverageComponent)

	u.AddNode("x/doc1#segB", NodeTypeNode)
	u.AddNodeAnno("x/doc1#segB", AnnoKey{NS: DefaultNamespace, Name: "tok_anno"}, "got")
	u.AddEdge("x/doc1#segB", "x/doc1#t3", coverageComponent)

	u.AddNode("x/doc1#span", NodeTypeNode)
	u.AddEdge("x/doc1#span", "x/doc1#t1", coverageComponent)

	require.NoError(t, graph.ApplyUpdate("x", u))
	return graph
}

func segmentNames(nodes []GraphNode) []string {
	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.Name())
	}
	return names
}

func TestSegmentationNodesInOrder(t *testing.T) {
	graph := tokenGraph(t)

	nodes, err := graph.DocumentView("x/doc1").SegmentationNodesInOrder("tok_anno")
	require.NoError(t, err)
	assert.Equal(t, []string{"x/doc1#segA", "x/doc1#segB"}, segmentNames(nodes))

	value, ok := nodes[0].Anno(AnnoKey{NS: DefaultNamespace, Name: "tok_anno"})
	require.True(t, ok)
	assert.Equal(t, "unde", value)
}

func TestSegmentationNodesInOrderMissingOrdering(t *testing.T) {
	graph := NewGraph()
	u := NewUpdate()
	u.AddNode("x/doc1", NodeTypeCorpus)
	require.NoError(t, graph.ApplyUpdate("x", u))

	_, err := graph.DocumentView("x/doc1").SegmentationNodesInOrder("tok_anno")
	assert.ErrorIs(t, err, errors.ErrNoOrder)
}

// Tokens of another document share the ordering component but must not
// leak into this document's walk.
func TestSegmentationNodesInOrderOtherDocument(t *testing.T) {
	graph := tokenGraph(t)

	u := NewUpdate()
	u.AddNode("x/doc2", NodeTypeCorpus)
	u.AddNodeAnno("x/doc2", DocKey, "doc2")
	require.NoError(t, graph.ApplyUpdate("x", u))

	nodes, err := graph.DocumentView("x/doc2").SegmentationNodesInOrder("tok_anno")
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestSegmentationNodesInOrderMultipleRoots(t *testing.T) {
	graph := tokenGraph(t)

	u := NewUpdate()
	u.AddNode("x/doc1#t4", NodeTypeNode)
	u.AddNode("x/doc1#t5", NodeTypeNode)
	u.AddEdge("x/doc1#t4", "x/doc1#t5", OrderingComponent)
	require.NoError(t, graph.ApplyUpdate("x", u))

	_, err := graph.DocumentView("x/doc1").SegmentationNodesInOrder("tok_anno")
	assert.ErrorIs(t, err, errors.ErrNoOrder)
}

func TestSegmentationNodesInOrderBranchingChain(t *testing.T) {
	graph := tokenGraph(t)

	u := NewUpdate()
	u.AddNode("x/doc1#t2b", NodeTypeNode)
	u.AddEdge("x/doc1#t1", "x/doc1#t2b", OrderingComponent)
	require.NoError(t, graph.ApplyUpdate("x", u))

	_, err := graph.DocumentView("x/doc1").SegmentationNodesInOrder("tok_anno")
	assert.ErrorIs(t, err, errors.ErrNoOrder)
}

func TestLayerDatasourceMatches(t *testing.T) {
	graph := tokenGraph(t)

	u := NewUpdate()
	u.AddNode("x/doc1#text", NodeTypeDatasource)
	u.AddEdge("x/doc1#segA", "x/doc1#text", Component{Type: PartOf, Layer: Namespace})
	u.AddEdge("x/doc1#segB", "x/doc1#text", Component{Type: PartOf, Layer: Namespace})

	// p1 dominates both segments, p2 dominates p1 only
	u.AddNode("x/doc1#p1", NodeTypeNode)
	u.AddNodeAnno("x/doc1#p1", LayerKey, "treebank")
	u.AddEdge("x/doc1#p1", "x/doc1#segA", Component{Type: Dominance, Layer: "treebank"})
	u.AddEdge("x/doc1#p1", "x/doc1#segB", Component{Type: Dominance, Layer: "treebank"})

	u.AddNode("x/doc1#p2", NodeTypeNode)
	u.AddNodeAnno("x/doc1#p2", LayerKey, "treebank")
	u.AddEdge("x/doc1#p2", "x/doc1#p1", Component{Type: Dominance, Layer: "treebank"})

	// a layer node dominating nothing must not match
	u.AddNode("x/doc1#lonely", NodeTypeNode)
	u.AddNodeAnno("x/doc1#lonely", LayerKey, "treebank")

	// a node of another layer must not match
	u.AddNode("x/doc1#other", NodeTypeNode)
	u.AddNodeAnno("x/doc1#other", LayerKey, "syntax")
	u.AddEdge("x/doc1#other", "x/doc1#segA", Component{Type: Dominance, Layer: "syntax"})

	require.NoError(t, graph.ApplyUpdate("x", u))

	matches := graph.LayerDatasourceMatches("treebank")
	assert.Equal(t, []Match{
		{LayerNode: "x/doc1#p1", Datasource: "x/doc1#text"},
		{LayerNode: "x/doc1#p2", Datasource: "x/doc1#text"},
	}, matches)
}
