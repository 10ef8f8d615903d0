package treebank

// Namespace prefixes of the fact vocabulary used by the ReM treebank
// edition. Facts outside these predicates are ignored.
const (
	conllNS = "http://ufal.mff.cuni.cz/conll2009-st/task-description.html#"
	nifNS   = "http://persistence.uni-leipzig.org/nlp2rdf/ontologies/nif-core#"
	powlaNS = "http://purl.org/powla/powla.owl#"
	rdfNS   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
)

const (
	conllCat   = conllNS + "CAT"
	conllHead  = conllNS + "HEAD"
	conllInfl  = conllNS + "INFL"
	conllLemma = conllNS + "LEMMA"
	conllPos   = conllNS + "POS"
	conllWord  = conllNS + "WORD"

	nifNextSentence = nifNS + "nextSentence"
	nifNextWord     = nifNS + "nextWord"
	nifSentence     = nifNS + "Sentence"
	nifWord         = nifNS + "Word"

	powlaHasParent = powlaNS + "hasParent"

	rdfType = rdfNS + "type"
)

// xsdString is the datatype of plain RDF 1.1 literals. Annotation values
// carrying any other datatype or a language tag are rejected.
const xsdString = "http://www.w3.org/2001/XMLSchema#string"

// AnnoKey names an annotation slot on a treebank node.
type AnnoKey int

// Annotation slots carried by treebank nodes.
const (
	AnnoCat AnnoKey = iota
	AnnoInfl
	AnnoLemma
	AnnoPos
	AnnoWord
)

// String returns the slot name as it appears in the fact vocabulary.
func (k AnnoKey) String() string {
	switch k {
	case AnnoCat:
		return "CAT"
	case AnnoInfl:
		return "INFL"
	case AnnoLemma:
		return "LEMMA"
	case AnnoPos:
		return "POS"
	case AnnoWord:
		return "WORD"
	default:
		return "unknown"
	}
}

// NodeType classifies a treebank node.
type NodeType int

// Node types assigned via rdf:type facts. Nodes without a type fact
// (tree-internal phrase nodes) have no NodeType.
const (
	NodeSentence NodeType = iota + 1
	NodeWord
)

// literalAnnoKeys maps literal-valued predicates to annotation slots.
var literalAnnoKeys = map[string]AnnoKey{
	conllCat:   AnnoCat,
	conllInfl:  AnnoInfl,
	conllLemma: AnnoLemma,
	conllPos:   AnnoPos,
	conllWord:  AnnoWord,
}
