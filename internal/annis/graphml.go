package annis

import (
	"encoding/xml"
	"io"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/matthias-stemmler/rem-treebank-annis/pkg/errors"
)

// GraphML interchange. Node ids are node names, annotations are data
// elements keyed ns::name, and each edge carries its component as a
// Type/layer/name label. The corpus configuration travels as TOML inside
// the graph's desc element.

const graphmlXMLNS = "http://graphml.graphdrawing.org/xmlns"

type graphmlFile struct {
	XMLName xml.Name     `xml:"graphml"`
	XMLNS   string       `xml:"xmlns,attr"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlGraph struct {
	ID          string        `xml:"id,attr"`
	EdgeDefault string        `xml:"edgedefault,attr"`
	Desc        *graphmlDesc  `xml:"desc"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlDesc struct {
	Text string `xml:",cdata"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlEdge struct {
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Label  string        `xml:"label,attr"`
	Data   []graphmlData `xml:"data"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// decodeGraphML reads one corpus graph plus its configuration document.
func decodeGraphML(r io.Reader, file string) (*Graph, map[string]any, error) {
	var parsed graphmlFile
	if err := xml.NewDecoder(r).Decode(&parsed); err != nil {
		return nil, nil, errors.NewParseError("graphml", file, err.Error(), err)
	}

	graph := NewGraph()

	for _, node := range parsed.Graph.Nodes {
		id := graph.addNode(node.ID)
		for _, data := range node.Data {
			key, err := parseAnnoKey(data.Key, file)
			if err != nil {
				return nil, nil, err
			}
			if key == NodeNameKey {
				continue // the id attribute is authoritative
			}
			graph.annos[id][key] = data.Value
		}
	}

	for _, edge := range parsed.Graph.Edges {
		component, err := ParseComponent(edge.Label)
		if err != nil {
			return nil, nil, err
		}
		source, ok := graph.NodeByName(edge.Source)
		if !ok {
			return nil, nil, errors.NewParseError("graphml", file,
				"edge references unknown node "+edge.Source, nil)
		}
		target, ok := graph.NodeByName(edge.Target)
		if !ok {
			return nil, nil, errors.NewParseError("graphml", file,
				"edge references unknown node "+edge.Target, nil)
		}
		graph.addEdge(component, source, target)
	}

	config := make(map[string]any)
	if parsed.Graph.Desc != nil && strings.TrimSpace(parsed.Graph.Desc.Text) != "" {
		if err := toml.Unmarshal([]byte(parsed.Graph.Desc.Text), &config); err != nil {
			return nil, nil, errors.NewParseError("toml", file, err.Error(), err)
		}
	}

	return graph, config, nil
}

// encodeGraphML writes a corpus graph with its configuration document.
func encodeGraphML(w io.Writer, corpusName string, graph *Graph, config map[string]any) error {
	configTOML, err := toml.Marshal(config)
	if err != nil {
		return errors.NewParseError("toml", corpusName, err.Error(), err)
	}

	out := graphmlFile{
		XMLNS: graphmlXMLNS,
		Graph: graphmlGraph{
			ID:          corpusName,
			EdgeDefault: "directed",
			Desc:        &graphmlDesc{Text: string(configTOML)},
		},
	}

	for _, name := range graph.NodeNames() {
		id := graph.byName[name]
		node := graphmlNode{ID: name}

		keys := make([]AnnoKey, 0, len(graph.annos[id]))
		for key := range graph.annos[id] {
			if key == NodeNameKey {
				continue
			}
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].NS != keys[j].NS {
				return keys[i].NS < keys[j].NS
			}
			return keys[i].Name < keys[j].Name
		})

		for _, key := range keys {
			node.Data = append(node.Data, graphmlData{Key: key.String(), Value: graph.annos[id][key]})
		}
		out.Graph.Nodes = append(out.Graph.Nodes, node)
	}

	for _, component := range graph.componentList {
		adj := graph.components[component]

		sources := make([]NodeID, 0, len(adj.out))
		for source := range adj.out {
			sources = append(sources, source)
		}
		sort.Slice(sources, func(i, j int) bool {
			return graph.names[sources[i]] < graph.names[sources[j]]
		})

		for _, source := range sources {
			for _, target := range adj.out[source] {
				out.Graph.Edges = append(out.Graph.Edges, graphmlEdge{
					Source: graph.names[source],
					Target: graph.names[target],
					Label:  component.String(),
				})
			}
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.NewIOError("write", corpusName, err)
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return errors.NewIOError("write", corpusName, err)
	}

	return nil
}

func parseAnnoKey(s, file string) (AnnoKey, error) {
	ns, name, ok := strings.Cut(s, "::")
	if !ok {
		return AnnoKey{}, errors.NewParseError("graphml", file, "malformed annotation key "+s, nil)
	}
	return AnnoKey{NS: ns, Name: name}, nil
}
