package annis

import (
	"github.com/matthias-stemmler/rem-treebank-annis/pkg/errors"
)

// ApplyUpdate validates and applies an update batch. Validation walks the
// whole batch against the current node set before anything is mutated, so
// a rejected batch leaves the graph untouched.
func (g *Graph) ApplyUpdate(corpus string, u *Update) error {
	if err := g.validateUpdate(corpus, u); err != nil {
		return err
	}

	for _, event := range u.events {
		switch event.kind {
		case eventAddNode:
			id := g.addNode(event.nodeName)
			g.annos[id][NodeTypeKey] = event.nodeType

		case eventAddNodeAnno:
			id := g.byName[event.nodeName]
			if event.key == NodeNameKey {
				g.renameNode(id, event.value)
			} else {
				g.annos[id][event.key] = event.value
			}

		case eventAddEdge:
			source := g.byName[event.source]
			target := g.byName[event.target]
			g.addEdge(event.component, source, target)
		}
	}

	return nil
}

// validateUpdate simulates the batch over the graph's name set. Events may
// reference nodes created or renamed earlier in the same batch.
func (g *Graph) validateUpdate(corpus string, u *Update) error {
	known := make(map[string]bool, len(g.byName))
	for name := range g.byName {
		known[name] = true
	}

	for i, event := range u.events {
		switch event.kind {
		case eventAddNode:
			known[event.nodeName] = true

		case eventAddNodeAnno:
			if !known[event.nodeName] {
				return &errors.UpdateError{
					Corpus: corpus, Event: i, NodeName: event.nodeName,
					Message: "annotation references unknown node",
				}
			}
			if event.key == NodeNameKey {
				delete(known, event.nodeName)
				known[event.value] = true
			}

		case eventAddEdge:
			for _, name := range []string{event.source, event.target} {
				if !known[name] {
					return &errors.UpdateError{
						Corpus: corpus, Event: i, NodeName: name,
						Message: "edge references unknown node",
					}
				}
			}
		}
	}

	return nil
}
