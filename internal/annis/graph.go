package annis

import (
	"sort"
	"strings"
)

// NodeID is a graph-internal node handle. Node identity across updates and
// interchange is the node name; IDs are transient.
type NodeID int

// Graph is one corpus's annotation graph: nodes with namespaced
// annotations and typed edge components. All mutation goes through
// ApplyUpdate.
type Graph struct {
	nextID NodeID
	byName map[string]NodeID
	names  map[NodeID]string
	annos  map[NodeID]map[AnnoKey]string

	components    map[Component]*adjacency
	componentList []Component // insertion order, for deterministic scans
}

type adjacency struct {
	out map[NodeID][]NodeID
	in  map[NodeID][]NodeID
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		byName:     make(map[string]NodeID),
		names:      make(map[NodeID]string),
		annos:      make(map[NodeID]map[AnnoKey]string),
		components: make(map[Component]*adjacency),
	}
}

func (g *Graph) addNode(name string) NodeID {
	if id, ok := g.byName[name]; ok {
		return id
	}
	id := g.nextID
	g.nextID++
	g.byName[name] = id
	g.names[id] = name
	g.annos[id] = map[AnnoKey]string{NodeNameKey: name}
	return id
}

func (g *Graph) renameNode(id NodeID, newName string) {
	delete(g.byName, g.names[id])
	g.byName[newName] = id
	g.names[id] = newName
	g.annos[id][NodeNameKey] = newName
}

func (g *Graph) component(c Component) *adjacency {
	adj, ok := g.components[c]
	if !ok {
		adj = &adjacency{out: make(map[NodeID][]NodeID), in: make(map[NodeID][]NodeID)}
		g.components[c] = adj
		g.componentList = append(g.componentList, c)
	}
	return adj
}

func (g *Graph) addEdge(c Component, source, target NodeID) {
	adj := g.component(c)
	adj.out[source] = append(adj.out[source], target)
	adj.in[target] = append(adj.in[target], source)
}

// NodeByName resolves a node name, reporting whether it exists.
func (g *Graph) NodeByName(name string) (NodeID, bool) {
	id, ok := g.byName[name]
	return id, ok
}

// Name returns a node's name.
func (g *Graph) Name(id NodeID) string {
	return g.names[id]
}

// Anno returns the value of an annotation on a node, if present.
func (g *Graph) Anno(id NodeID, key AnnoKey) (string, bool) {
	value, ok := g.annos[id][key]
	return value, ok
}

// NodeNames returns all node names in sorted order.
func (g *Graph) NodeNames() []string {
	names := make([]string, 0, len(g.byName))
	for name := range g.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DocumentNodes returns the names of all document nodes in sorted order.
func (g *Graph) DocumentNodes() []string {
	var names []string
	for id, annos := range g.annos {
		if _, ok := annos[DocKey]; ok {
			names = append(names, g.names[id])
		}
	}
	sort.Strings(names)
	return names
}

// ComponentsOfType returns the graph's components of one relation kind in
// creation order.
func (g *Graph) ComponentsOfType(t ComponentType) []Component {
	var result []Component
	for _, c := range g.componentList {
		if c.Type == t {
			result = append(result, c)
		}
	}
	return result
}

// Match is one result tuple of LayerDatasourceMatches.
type Match struct {
	LayerNode  string
	Datasource string
}

// LayerDatasourceMatches finds every node of the given layer that
// transitively dominates some node which is in turn transitively part of
// a datasource node. Results are ordered by layer node name and
// deduplicated per (layer node, datasource) pair.
func (g *Graph) LayerDatasourceMatches(layer string) []Match {
	var matches []Match

	for _, name := range g.NodeNames() {
		id := g.byName[name]
		if g.annos[id][LayerKey] != layer {
			continue
		}

		seen := make(map[string]bool)
		for _, dominated := range g.dominatedBy(id) {
			datasource, ok := g.datasourceFor(dominated)
			if !ok || seen[datasource] {
				continue
			}
			seen[datasource] = true
			matches = append(matches, Match{LayerNode: name, Datasource: datasource})
		}
	}

	return matches
}

// dominatedBy returns the nodes reachable from id through one or more
// dominance edges, ordered by node name.
func (g *Graph) dominatedBy(id NodeID) []NodeID {
	seen := map[NodeID]bool{id: true}
	frontier := []NodeID{id}
	var reached []NodeID

	for len(frontier) > 0 {
		var next []NodeID
		for _, node := range frontier {
			for _, c := range g.ComponentsOfType(Dominance) {
				for _, target := range g.components[c].out[node] {
					if seen[target] {
						continue
					}
					seen[target] = true
					reached = append(reached, target)
					next = append(next, target)
				}
			}
		}
		frontier = next
	}

	sort.Slice(reached, func(i, j int) bool {
		return g.names[reached[i]] < g.names[reached[j]]
	})
	return reached
}

// datasourceFor follows PartOf edges upward until a datasource node is
// reached.
func (g *Graph) datasourceFor(id NodeID) (string, bool) {
	seen := map[NodeID]bool{id: true}
	frontier := []NodeID{id}

	for len(frontier) > 0 {
		var next []NodeID
		for _, node := range frontier {
			for _, c := range g.ComponentsOfType(PartOf) {
				for _, target := range g.components[c].out[node] {
					if seen[target] {
						continue
					}
					seen[target] = true
					if g.annos[target][NodeTypeKey] == NodeTypeDatasource {
						return g.names[target], true
					}
					next = append(next, target)
				}
			}
		}
		frontier = next
	}

	return "", false
}

// View is a read-only slice of a graph restricted to one document: the
// document node itself plus every node named under it.
type View struct {
	graph       *Graph
	docNodeName string
}

// DocumentView scopes the graph to one document node.
func (g *Graph) DocumentView(docNodeName string) *View {
	return &View{graph: g, docNodeName: docNodeName}
}

// DocNodeName returns the name of the view's document node.
func (v *View) DocNodeName() string {
	return v.docNodeName
}

func (v *View) contains(id NodeID) bool {
	name := v.graph.names[id]
	return name == v.docNodeName || strings.HasPrefix(name, v.docNodeName+"#")
}
