package annis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGraphML = `<?xml version="1.0" encoding="UTF-8"?>
<graphml xmlns="http://graphml.graphdrawing.org/xmlns">
  <graph id="x" edgedefault="directed">
    <desc><![CDATA[
example = "value"

[[visualizers]]
display_name = "kwic"
vis_type = "kwic"
]]></desc>
    <node id="x">
      <data key="annis::node_type">corpus</data>
      <data key="annis::node_name">stale-name</data>
    </node>
    <node id="x/doc1">
      <data key="annis::node_type">corpus</data>
      <data key="annis::doc">doc1</data>
    </node>
    <node id="x/doc1#t1">
      <data key="annis::node_type">node</data>
      <data key="annis::tok">unde</data>
    </node>
    <node id="x/doc1#t2">
      <data key="annis::node_type">node</data>
      <data key="annis::tok">got</data>
    </node>
    <edge source="x/doc1#t1" target="x/doc1#t2" label="Ordering/annis/"/>
    <edge source="x/doc1" target="x" label="PartOf/annis/"/>
  </graph>
</graphml>
`

func TestDecodeGraphML(t *testing.T) {
	graph, config, err := decodeGraphML(strings.NewReader(testGraphML), "x.graphml")
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "x/doc1", "x/doc1#t1", "x/doc1#t2"}, graph.NodeNames())
	assert.Equal(t, []string{"x/doc1"}, graph.DocumentNodes())

	// the id attribute wins over a node_name data entry
	id, ok := graph.NodeByName("x")
	require.True(t, ok)
	name, ok := graph.Anno(id, NodeNameKey)
	require.True(t, ok)
	assert.Equal(t, "x", name)

	tok, ok := graph.NodeByName("x/doc1#t1")
	require.True(t, ok)
	value, ok := graph.Anno(tok, TokKey)
	require.True(t, ok)
	assert.Equal(t, "unde", value)

	require.Len(t, graph.ComponentsOfType(Ordering), 1)
	require.Len(t, graph.ComponentsOfType(PartOf), 1)
	assert.Empty(t, graph.ComponentsOfType(Dominance))

	assert.Equal(t, "value", config["example"])
}

func TestDecodeGraphMLErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "not xml",
			content: "not xml at all",
		},
		{
			name: "unknown edge endpoint",
			content: `<graphml xmlns="http://graphml.graphdrawing.org/xmlns"><graph id="x" edgedefault="directed">
				<node id="a"/><edge source="a" target="missing" label="Ordering/annis/"/>
			</graph></graphml>`,
		},
		{
			name: "malformed component label",
			content: `<graphml xmlns="http://graphml.graphdrawing.org/xmlns"><graph id="x" edgedefault="directed">
				<node id="a"/><node id="b"/><edge source="a" target="b" label="Ordering"/>
			</graph></graphml>`,
		},
		{
			name: "unknown component type",
			content: `<graphml xmlns="http://graphml.graphdrawing.org/xmlns"><graph id="x" edgedefault="directed">
				<node id="a"/><node id="b"/><edge source="a" target="b" label="Pointing/dep/"/>
			</graph></graphml>`,
		},
		{
			name: "malformed annotation key",
			content: `<graphml xmlns="http://graphml.graphdrawing.org/xmlns"><graph id="x" edgedefault="directed">
				<node id="a"><data key="layer">treebank</data></node>
			</graph></graphml>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := decodeGraphML(strings.NewReader(tt.content), "x.graphml")
			assert.Error(t, err)
		})
	}
}

func TestGraphMLRoundTrip(t *testing.T) {
	original, config, err := decodeGraphML(strings.NewReader(testGraphML), "x.graphml")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, encodeGraphML(&buf, "x", original, config))

	decoded, decodedConfig, err := decodeGraphML(&buf, "x.graphml")
	require.NoError(t, err)

	assert.Equal(t, original.NodeNames(), decoded.NodeNames())
	assert.Equal(t, config, decodedConfig)

	for _, name := range original.NodeNames() {
		originalID, _ := original.NodeByName(name)
		decodedID, ok := decoded.NodeByName(name)
		require.True(t, ok)
		assert.Equal(t, original.annos[originalID], decoded.annos[decodedID], name)
	}

	require.Len(t, decoded.ComponentsOfType(Ordering), 1)
	ordering := decoded.components[OrderingComponent]
	t1, _ := decoded.NodeByName("x/doc1#t1")
	t2, _ := decoded.NodeByName("x/doc1#t2")
	assert.Equal(t, []NodeID{t2}, ordering.out[t1])
}
