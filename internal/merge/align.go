package merge

import (
	"strings"

	"github.com/matthias-stemmler/rem-treebank-annis/internal/annis"
	"github.com/matthias-stemmler/rem-treebank-annis/internal/treebank"
	"github.com/matthias-stemmler/rem-treebank-annis/pkg/errors"
)

// sanityChecks pairs the annotation slots shared by both sources. Aligned
// words must agree on all of them.
var sanityChecks = []struct {
	treebankKey treebank.AnnoKey
	graphKey    annis.AnnoKey
}{
	{treebank.AnnoInfl, annoInflection},
	{treebank.AnnoLemma, annoLemma},
	{treebank.AnnoWord, annoNorm},
	{treebank.AnnoPos, annoPos},
}

// NodeNameMapper aligns the treebank's words with the graph's segmentation
// nodes and translates treebank node names into graph node names.
type NodeNameMapper struct {
	docNodeName string
	mapping     map[treebank.NodeName]string
}

// NewNodeNameMapper pairs both ordered sequences positionally and
// cross-validates the shared annotations of every pair.
//
// A treebank word without a graph counterpart is an error; surplus graph
// segments are tolerated, since the graph may hold an incomplete trailing
// sentence the treebank never covered.
func NewNodeNameMapper(doc *treebank.Document, view *annis.View) (*NodeNameMapper, error) {
	words, err := doc.WordsInOrder()
	if err != nil {
		return nil, err
	}

	segments, err := view.SegmentationNodesInOrder(TokAnno)
	if err != nil {
		return nil, err
	}

	mapping := make(map[treebank.NodeName]string, len(words))

	for i, word := range words {
		if i >= len(segments) {
			return nil, &errors.AlignmentError{TreebankNode: string(word.Name())}
		}
		segment := segments[i]

		if err := checkPair(word, segment); err != nil {
			return nil, err
		}

		mapping[word.Name()] = segment.Name()
	}

	return &NodeNameMapper{
		docNodeName: view.DocNodeName(),
		mapping:     mapping,
	}, nil
}

// checkPair compares the shared annotations of an aligned pair. Absence on
// both sides counts as equal.
func checkPair(word treebank.Node, segment annis.GraphNode) error {
	for _, check := range sanityChecks {
		treebankVal, treebankOK := word.Anno(check.treebankKey)
		if treebankOK {
			treebankVal = unescapeTreebank(treebankVal)
		}

		graphVal, graphOK := Sanitize(segment.Anno(check.graphKey))

		if treebankOK != graphOK || treebankVal != graphVal {
			return &errors.MismatchError{
				Annotation:   check.graphKey.Name,
				TreebankNode: string(word.Name()),
				GraphNode:    segment.Name(),
				TreebankVal:  treebankVal,
				GraphVal:     graphVal,
			}
		}
	}
	return nil
}

// PairCount returns the number of aligned word pairs.
func (m *NodeNameMapper) PairCount() int {
	return len(m.mapping)
}

// GraphNodeName translates a treebank node into the graph name space.
// Words use their aligned segmentation node; any other node is named under
// the document node by the trailing path segment of its treebank name.
func (m *NodeNameMapper) GraphNodeName(node treebank.Node) (string, error) {
	if node.IsWord() {
		name, ok := m.mapping[node.Name()]
		if !ok {
			return "", errors.New("missing mapping for treebank node name " + string(node.Name()))
		}
		return name, nil
	}

	name := string(node.Name())
	idx := strings.LastIndex(name, "/")
	if idx < 0 {
		return "", errors.New("treebank node name " + name + " contains no '/'")
	}

	return m.docNodeName + "#" + name[idx+1:], nil
}
