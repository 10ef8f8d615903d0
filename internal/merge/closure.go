package merge

import (
	"github.com/matthias-stemmler/rem-treebank-annis/internal/annis"
	"github.com/matthias-stemmler/rem-treebank-annis/internal/treebank"
)

// Closure grows the merged node set upward from aligned words through the
// dominance edges, emitting node and edge creation events as it goes.
//
// An edge becomes ready once its child is a word or has already been
// merged; readiness propagates strictly upward, one tree level per pass.
// A ready edge whose parent has no category annotation is a synthetic
// sentence-root wrapper and is discarded. The pass loop stops as soon as
// a full pass emits nothing; edges that never became ready are dropped,
// which also bounds cyclic edge sets.
type Closure struct {
	mapper *NodeNameMapper
	cfg    Config

	merged  map[treebank.NodeName]bool
	emitted map[[2]treebank.NodeName]bool
}

// NewClosure creates a closure builder for one document.
func NewClosure(mapper *NodeNameMapper, cfg Config) *Closure {
	return &Closure{
		mapper:  mapper,
		cfg:     cfg,
		merged:  make(map[treebank.NodeName]bool),
		emitted: make(map[[2]treebank.NodeName]bool),
	}
}

// Run processes the edge list to its fixed point, appending events to
// update. Running again over edges already reflected in the merged set
// emits nothing.
func (c *Closure) Run(edges []treebank.Edge, update *annis.Update) error {
	for {
		remaining := make([]treebank.Edge, 0, len(edges))
		progress := false

		for _, edge := range edges {
			if !edge.Child.IsWord() && !c.merged[edge.Child.Name()] {
				remaining = append(remaining, edge)
				continue
			}

			// skip sentence roots, which have no category annotation
			if _, ok := edge.Parent.Anno(treebank.AnnoCat); !ok {
				continue
			}

			key := [2]treebank.NodeName{edge.Child.Name(), edge.Parent.Name()}
			if c.emitted[key] {
				continue
			}
			c.emitted[key] = true

			if err := c.emitEdge(edge, update); err != nil {
				return err
			}
			progress = true
		}

		edges = remaining
		if !progress {
			return nil
		}
	}
}

func (c *Closure) emitEdge(edge treebank.Edge, update *annis.Update) error {
	for _, node := range []treebank.Node{edge.Child, edge.Parent} {
		if c.merged[node.Name()] {
			continue
		}
		c.merged[node.Name()] = true

		graphName, err := c.mapper.GraphNodeName(node)
		if err != nil {
			return err
		}

		if !node.IsWord() {
			update.AddNode(graphName, annis.NodeTypeNode)
			update.AddNodeAnno(graphName, annis.LayerKey, c.cfg.Layer)

			if cat, ok := node.Anno(treebank.AnnoCat); ok {
				update.AddNodeAnno(graphName,
					annis.AnnoKey{NS: c.cfg.Layer, Name: c.cfg.TreeAnno}, cat)
			}
		}

		if c.cfg.IriAnno != "" {
			update.AddNodeAnno(graphName,
				annis.AnnoKey{NS: c.cfg.Layer, Name: c.cfg.IriAnno}, string(node.Name()))
		}
	}

	parentName, err := c.mapper.GraphNodeName(edge.Parent)
	if err != nil {
		return err
	}
	childName, err := c.mapper.GraphNodeName(edge.Child)
	if err != nil {
		return err
	}

	update.AddEdge(parentName, childName,
		annis.Component{Type: annis.Dominance, Layer: c.cfg.Layer, Name: ""})

	return nil
}
