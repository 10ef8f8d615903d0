package annis

// Update is an ordered batch of graph mutations. Events only add: nodes,
// node annotations and edges. A batch is applied atomically; referencing a
// node that neither exists nor was created earlier in the same batch
// rejects the whole batch.
type Update struct {
	events []updateEvent
}

type eventKind int

const (
	eventAddNode eventKind = iota
	eventAddNodeAnno
	eventAddEdge
)

type updateEvent struct {
	kind eventKind

	nodeName string
	nodeType string

	key   AnnoKey
	value string

	source    string
	target    string
	component Component
}

// NewUpdate creates an empty update batch.
func NewUpdate() *Update {
	return &Update{}
}

// AddNode records the creation of a node.
func (u *Update) AddNode(nodeName, nodeType string) {
	u.events = append(u.events, updateEvent{
		kind:     eventAddNode,
		nodeName: nodeName,
		nodeType: nodeType,
	})
}

// AddNodeAnno records an annotation on a node. Writing NodeNameKey renames
// the node.
func (u *Update) AddNodeAnno(nodeName string, key AnnoKey, value string) {
	u.events = append(u.events, updateEvent{
		kind:     eventAddNodeAnno,
		nodeName: nodeName,
		key:      key,
		value:    value,
	})
}

// AddEdge records an edge from source to target in a component.
func (u *Update) AddEdge(source, target string, component Component) {
	u.events = append(u.events, updateEvent{
		kind:      eventAddEdge,
		source:    source,
		target:    target,
		component: component,
	})
}

// Len returns the number of events in the batch.
func (u *Update) Len() int {
	return len(u.events)
}
