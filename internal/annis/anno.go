// Package annis implements the annotation-graph store the treebank is
// merged into: named corpora of labelled graphs with typed edge
// components, transactional update batches, and GraphML interchange.
package annis

// Namespaces of annotation keys.
const (
	// Namespace holds the store's own bookkeeping annotations.
	Namespace = "annis"
	// DefaultNamespace holds corpus annotations without an explicit layer.
	DefaultNamespace = "default_ns"
)

// AnnoKey identifies an annotation by namespace and name.
type AnnoKey struct {
	NS   string
	Name string
}

// String returns the key in ns::name form, as used in GraphML data keys.
func (k AnnoKey) String() string {
	return k.NS + "::" + k.Name
}

// Well-known annotation keys.
var (
	// NodeNameKey holds a node's name. Writing it renames the node.
	NodeNameKey = AnnoKey{NS: Namespace, Name: "node_name"}

	// NodeTypeKey distinguishes regular nodes, corpus/document nodes and
	// datasources.
	NodeTypeKey = AnnoKey{NS: Namespace, Name: "node_type"}

	// DocKey marks a document node and holds the document name.
	DocKey = AnnoKey{NS: Namespace, Name: "doc"}

	// LayerKey assigns a node to a layer.
	LayerKey = AnnoKey{NS: Namespace, Name: "layer"}

	// TokKey holds the spanned text of a token.
	TokKey = AnnoKey{NS: Namespace, Name: "tok"}
)

// Node type values under NodeTypeKey.
const (
	NodeTypeNode       = "node"
	NodeTypeCorpus     = "corpus"
	NodeTypeDatasource = "datasource"
)
