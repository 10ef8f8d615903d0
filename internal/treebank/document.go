// Package treebank reads the Treebank edition of the ReM from Turtle files:
// an unordered set of relational facts describing sentence/word order and
// dominance structure, one file per document.
package treebank

import (
	"io"
	"os"

	"github.com/knakk/rdf"

	"github.com/matthias-stemmler/rem-treebank-annis/pkg/errors"
)

// NodeName identifies a treebank node. It lives in the treebank identifier
// space (IRIs) and must never be compared with annotation-graph node names.
type NodeName string

// Document holds the facts of one treebank file. It is built once per
// parse and never mutated afterwards.
type Document struct {
	nodeTypes map[NodeName]NodeType
	nodeAnnos map[NodeName]map[AnnoKey]string

	nextSentence   map[NodeName]NodeName
	nextWord       map[NodeName]NodeName
	wordToSentence map[NodeName]NodeName

	childToParent [][2]NodeName
}

// parseFile parses a Turtle file into a Document. A Turtle syntax error is
// reported as a *errors.ParseError wrapping the decoder error; the caller
// decides whether that skips the document.
func parseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError("open", path, err)
	}
	defer f.Close()

	doc := &Document{
		nodeTypes:      make(map[NodeName]NodeType),
		nodeAnnos:      make(map[NodeName]map[AnnoKey]string),
		nextSentence:   make(map[NodeName]NodeName),
		nextWord:       make(map[NodeName]NodeName),
		wordToSentence: make(map[NodeName]NodeName),
	}

	dec := rdf.NewTripleDecoder(f, rdf.Turtle)
	for {
		triple, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParseError("turtle", path, err.Error(), err)
		}
		if err := doc.addFact(triple); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// addFact records one triple. Unknown predicates are ignored.
func (d *Document) addFact(t rdf.Triple) error {
	pred, ok := t.Pred.(rdf.IRI)
	if !ok {
		return nil
	}

	predIRI := pred.String()

	switch predIRI {
	case rdfType:
		obj, ok := t.Obj.(rdf.IRI)
		if !ok {
			return nil
		}
		switch obj.String() {
		case nifSentence:
			subj, err := subjectName(t, predIRI)
			if err != nil {
				return err
			}
			d.nodeTypes[subj] = NodeSentence
		case nifWord:
			subj, err := subjectName(t, predIRI)
			if err != nil {
				return err
			}
			d.nodeTypes[subj] = NodeWord
		}

	case nifNextSentence, nifNextWord, conllHead:
		subj, err := subjectName(t, predIRI)
		if err != nil {
			return err
		}
		obj, err := objectName(t, predIRI)
		if err != nil {
			return err
		}
		switch predIRI {
		case nifNextSentence:
			d.nextSentence[subj] = obj
		case nifNextWord:
			d.nextWord[subj] = obj
		default:
			d.wordToSentence[subj] = obj
		}

	case powlaHasParent:
		subj, err := subjectName(t, predIRI)
		if err != nil {
			return err
		}
		obj, err := objectName(t, predIRI)
		if err != nil {
			return err
		}
		d.childToParent = append(d.childToParent, [2]NodeName{subj, obj})

	default:
		key, ok := literalAnnoKeys[predIRI]
		if !ok {
			return nil
		}
		subj, err := subjectName(t, predIRI)
		if err != nil {
			return err
		}
		lit, ok := t.Obj.(rdf.Literal)
		if !ok {
			return errors.NewParseError("turtle", "",
				"object of "+predIRI+" is not a literal", nil)
		}
		if lit.Lang() != "" || lit.DataType.String() != xsdString {
			return errors.NewParseError("turtle", "",
				"object of "+predIRI+" is not a plain literal", nil)
		}
		annos, ok := d.nodeAnnos[subj]
		if !ok {
			annos = make(map[AnnoKey]string)
			d.nodeAnnos[subj] = annos
		}
		annos[key] = lit.String()
	}

	return nil
}

func subjectName(t rdf.Triple, pred string) (NodeName, error) {
	iri, ok := t.Subj.(rdf.IRI)
	if !ok {
		return "", errors.NewParseError("turtle", "",
			"subject of "+pred+" is not an IRI", nil)
	}
	return NodeName(iri.String()), nil
}

func objectName(t rdf.Triple, pred string) (NodeName, error) {
	iri, ok := t.Obj.(rdf.IRI)
	if !ok {
		return "", errors.NewParseError("turtle", "",
			"object of "+pred+" is not an IRI", nil)
	}
	return NodeName(iri.String()), nil
}

// Node is a read-only view of one node within its document.
type Node struct {
	doc  *Document
	name NodeName
}

// Node returns the view for a node name.
func (d *Document) Node(name NodeName) Node {
	return Node{doc: d, name: name}
}

// Edge is one dominance fact: Parent governs Child.
type Edge struct {
	Child  Node
	Parent Node
}

// ParentEdges returns all dominance facts in file order.
func (d *Document) ParentEdges() []Edge {
	edges := make([]Edge, 0, len(d.childToParent))
	for _, pair := range d.childToParent {
		edges = append(edges, Edge{Child: d.Node(pair[0]), Parent: d.Node(pair[1])})
	}
	return edges
}

// Name returns the node's identifier.
func (n Node) Name() NodeName {
	return n.name
}

// IsWord reports whether the node carries the Word type.
func (n Node) IsWord() bool {
	return n.doc.nodeTypes[n.name] == NodeWord
}

// Anno returns the value of an annotation slot, if present.
func (n Node) Anno(key AnnoKey) (string, bool) {
	value, ok := n.doc.nodeAnnos[n.name][key]
	return value, ok
}
