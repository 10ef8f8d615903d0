package merge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matthias-stemmler/rem-treebank-annis/internal/annis"
	"github.com/matthias-stemmler/rem-treebank-annis/internal/treebank"
	"github.com/matthias-stemmler/rem-treebank-annis/pkg/logging"
)

const treebankNS = "https://example.org/rem/doc1/"

// testTTL describes one sentence "unde got" with a phrase node p1 over w1
// and a synthetic root r1 without a category above it.
const testTTL = `<https://example.org/rem/doc1/s1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://persistence.uni-leipzig.org/nlp2rdf/ontologies/nif-core#Sentence> .
<https://example.org/rem/doc1/w1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://persistence.uni-leipzig.org/nlp2rdf/ontologies/nif-core#Word> .
<https://example.org/rem/doc1/w2> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://persistence.uni-leipzig.org/nlp2rdf/ontologies/nif-core#Word> .
<https://example.org/rem/doc1/w1> <http://ufal.mff.cuni.cz/conll2009-st/task-description.html#HEAD> <https://example.org/rem/doc1/s1> .
<https://example.org/rem/doc1/w2> <http://ufal.mff.cuni.cz/conll2009-st/task-description.html#HEAD> <https://example.org/rem/doc1/s1> .
<https://example.org/rem/doc1/w1> <http://persistence.uni-leipzig.org/nlp2rdf/ontologies/nif-core#nextWord> <https://example.org/rem/doc1/w2> .
<https://example.org/rem/doc1/w1> <http://ufal.mff.cuni.cz/conll2009-st/task-description.html#LEMMA> "unde" .
<https://example.org/rem/doc1/w1> <http://purl.org/powla/powla.owl#hasParent> <https://example.org/rem/doc1/p1> .
<https://example.org/rem/doc1/p1> <http://purl.org/powla/powla.owl#hasParent> <https://example.org/rem/doc1/r1> .
<https://example.org/rem/doc1/p1> <http://ufal.mff.cuni.cz/conll2009-st/task-description.html#CAT> "NP" .
`

// parseTestDocument materializes ttl as the treebank file of doc1 and
// parses it through the storage layer.
func parseTestDocument(t *testing.T, ttl string) *treebank.Document {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc1_test.ttl")
	require.NoError(t, os.WriteFile(path, []byte(ttl), 0o644))

	doc, err := treebank.NewStorage(dir, logging.NewNopLogger()).DocumentForName("doc1")
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc
}

// twoSegmentGraph builds corpus x with document doc1: two ordered tokens,
// each covered by a tok_anno segment, both segments part of a datasource.
// The first segment carries the lemma the treebank expects.
func twoSegmentGraph(t *testing.T) *annis.Graph {
	t.Helper()
	graph := annis.NewGraph()

	coverage := annis.Component{Type: annis.Coverage, Layer: annis.DefaultNamespace}
	partOf := annis.Component{Type: annis.PartOf, Layer: annis.Namespace}
	tokAnnoKey := annis.AnnoKey{NS: annis.DefaultNamespace, Name: TokAnno}

	u := annis.NewUpdate()
	u.AddNode("x", annis.NodeTypeCorpus)
	u.AddNode("x/doc1", annis.NodeTypeCorpus)
	u.AddNodeAnno("x/doc1", annis.DocKey, "doc1")
	u.AddEdge("x/doc1", "x", partOf)
	u.AddNode("x/doc1#text", annis.NodeTypeDatasource)
	u.AddEdge("x/doc1#text", "x/doc1", partOf)

	for _, token := range []string{"x/doc1#t1", "x/doc1#t2"} {
		u.AddNode(token, annis.NodeTypeNode)
	}
	u.AddEdge("x/doc1#t1", "x/doc1#t2", annis.OrderingComponent)

	u.AddNode("x/doc1#seg1", annis.NodeTypeNode)
	u.AddNodeAnno("x/doc1#seg1", tokAnnoKey, "unde")
	u.AddNodeAnno("x/doc1#seg1", annoLemma, "unde")
	u.AddEdge("x/doc1#seg1", "x/doc1#t1", coverage)
	u.AddEdge("x/doc1#seg1", "x/doc1#text", partOf)

	u.AddNode("x/doc1#seg2", annis.NodeTypeNode)
	u.AddNodeAnno("x/doc1#seg2", tokAnnoKey, "got")
	u.AddEdge("x/doc1#seg2", "x/doc1#t2", coverage)
	u.AddEdge("x/doc1#seg2", "x/doc1#text", partOf)

	require.NoError(t, graph.ApplyUpdate("x", u))
	return graph
}

func testMapper(t *testing.T) (*NodeNameMapper, *annis.Graph) {
	t.Helper()

	doc := parseTestDocument(t, testTTL)
	graph := twoSegmentGraph(t)

	mapper, err := NewNodeNameMapper(doc, graph.DocumentView("x/doc1"))
	require.NoError(t, err)
	return mapper, graph
}

func testConfig() Config {
	return Config{Layer: "treebank", TreeAnno: "tree", TreeDisplay: "tree"}
}
