package treebank

import (
	"sort"

	"github.com/matthias-stemmler/rem-treebank-annis/pkg/errors"
)

// WordsInOrder reconstructs the ordered word sequence of the document.
//
// The sentence chain starts at the unique Sentence that is never the
// target of a nextSentence link; zero or several such sentences mean the
// chain is broken or cyclic. Within each sentence the word chain starts at
// the unique word of that sentence that is never the target of a nextWord
// link; a sentence without words contributes nothing. Both chains follow
// next links to exhaustion.
func (d *Document) WordsInOrder() ([]Node, error) {
	sentences, err := d.sentencesInOrder()
	if err != nil {
		return nil, err
	}

	var words []Node
	for _, sentence := range sentences {
		sentenceWords, err := d.sentenceWordsInOrder(sentence)
		if err != nil {
			return nil, err
		}
		words = append(words, sentenceWords...)
	}

	return words, nil
}

func (d *Document) sentencesInOrder() ([]NodeName, error) {
	heads := d.chainHeads(NodeSentence, d.nextSentence, nil)

	switch len(heads) {
	case 0:
		if len(d.namesForType(NodeSentence)) == 0 {
			return nil, nil
		}
		return nil, errors.NewOrderError("treebank", "", "sentence chain has no head")
	case 1:
	default:
		return nil, errors.NewOrderError("treebank", "", "sentence chain has more than one head")
	}

	return d.walkChain(heads[0], d.nextSentence, "sentence")
}

func (d *Document) sentenceWordsInOrder(sentence NodeName) ([]Node, error) {
	sameSentence := func(w NodeName) bool {
		return d.wordToSentence[w] == sentence
	}

	heads := d.chainHeads(NodeWord, d.nextWord, sameSentence)

	switch len(heads) {
	case 0:
		// sentence without words
		return nil, nil
	case 1:
	default:
		return nil, errors.NewOrderError("treebank", string(sentence),
			"word chain has more than one head")
	}

	names, err := d.walkChain(heads[0], d.nextWord, string(sentence))
	if err != nil {
		return nil, err
	}

	words := make([]Node, 0, len(names))
	for _, name := range names {
		words = append(words, d.Node(name))
	}
	return words, nil
}

// chainHeads returns the nodes of the given type that are never the target
// of a next link, restricted to nodes accepted by filter.
func (d *Document) chainHeads(nodeType NodeType, next map[NodeName]NodeName, filter func(NodeName) bool) []NodeName {
	isTarget := make(map[NodeName]bool, len(next))
	for _, target := range next {
		isTarget[target] = true
	}

	var heads []NodeName
	for _, name := range d.namesForType(nodeType) {
		if filter != nil && !filter(name) {
			continue
		}
		if !isTarget[name] {
			heads = append(heads, name)
		}
	}
	return heads
}

// walkChain follows next links from head until they run out. A revisited
// node means the chain is cyclic.
func (d *Document) walkChain(head NodeName, next map[NodeName]NodeName, scope string) ([]NodeName, error) {
	var chain []NodeName
	seen := make(map[NodeName]bool)

	for name := head; ; {
		if seen[name] {
			return nil, errors.NewOrderError("treebank", scope, "next chain is cyclic")
		}
		seen[name] = true
		chain = append(chain, name)

		successor, ok := next[name]
		if !ok {
			return chain, nil
		}
		name = successor
	}
}

// namesForType returns the node names of a type in sorted order, keeping
// head searches deterministic across runs.
func (d *Document) namesForType(nodeType NodeType) []NodeName {
	var names []NodeName
	for name, t := range d.nodeTypes {
		if t == nodeType {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
