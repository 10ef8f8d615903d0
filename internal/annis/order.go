package annis

import (
	"github.com/matthias-stemmler/rem-treebank-annis/pkg/errors"
)

// GraphNode is a read-only handle on a node yielded by an order walk.
type GraphNode struct {
	graph *Graph
	id    NodeID
}

// Name returns the node's name.
func (n GraphNode) Name() string {
	return n.graph.Name(n.id)
}

// Anno returns an annotation value on the node, if present.
func (n GraphNode) Anno(key AnnoKey) (string, bool) {
	return n.graph.Anno(n.id, key)
}

// SegmentationNodesInOrder walks the document's canonical token order and
// collects, in first-appearance order, every node covering a token that
// carries the given segmentation annotation (in the default namespace).
// A node spanning several tokens is yielded once, at its first token.
//
// The walk requires the canonical ordering component and exactly one chain
// within the document: several independent chains or a token with several
// successors are errors. A document with no ordered tokens yields nothing.
func (v *View) SegmentationNodesInOrder(segmentation string) ([]GraphNode, error) {
	g := v.graph

	ordering, ok := g.components[OrderingComponent]
	if !ok {
		return nil, errors.NewOrderError("graph", v.docNodeName, "default ordering component not found")
	}

	root, err := v.orderingRoot(ordering)
	if err != nil {
		return nil, err
	}

	coverage := v.nonEmptyCoverageComponents()
	segmentationKey := AnnoKey{NS: DefaultNamespace, Name: segmentation}

	var nodes []GraphNode
	yielded := make(map[NodeID]bool)

	token, haveToken := root, root >= 0
	for haveToken {
		for _, c := range coverage {
			for _, covering := range g.components[c].in[token] {
				if yielded[covering] {
					continue
				}
				if _, ok := g.annos[covering][segmentationKey]; !ok {
					continue
				}
				yielded[covering] = true
				nodes = append(nodes, GraphNode{graph: g, id: covering})
			}
		}

		successors := v.inView(ordering.out[token])
		switch len(successors) {
		case 0:
			haveToken = false
		case 1:
			token = successors[0]
		default:
			return nil, errors.NewOrderError("graph", g.Name(token),
				"token has more than one ordering successor")
		}
	}

	return nodes, nil
}

// orderingRoot finds the unique in-view token that participates in the
// ordering component without an in-view predecessor. Returns -1 when the
// view holds no ordered tokens.
func (v *View) orderingRoot(ordering *adjacency) (NodeID, error) {
	root := NodeID(-1)

	for id := range ordering.out {
		if !v.contains(id) {
			continue
		}
		if len(v.inView(ordering.in[id])) > 0 {
			continue
		}
		if root >= 0 {
			return -1, errors.NewOrderError("graph", v.docNodeName,
				"ordering component has more than one root")
		}
		root = id
	}

	return root, nil
}

func (v *View) inView(ids []NodeID) []NodeID {
	var result []NodeID
	for _, id := range ids {
		if v.contains(id) {
			result = append(result, id)
		}
	}
	return result
}

// nonEmptyCoverageComponents returns the coverage components that hold at
// least one edge, in creation order.
func (v *View) nonEmptyCoverageComponents() []Component {
	var result []Component
	for _, c := range v.graph.ComponentsOfType(Coverage) {
		if len(v.graph.components[c].out) > 0 {
			result = append(result, c)
		}
	}
	return result
}
