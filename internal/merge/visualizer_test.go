package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTreeVisualizer(t *testing.T) {
	cfg := testConfig()
	cfg.TreeDisplay = "syntax tree"

	config := map[string]any{
		"example": "value",
		"visualizers": []any{
			map[string]any{"display_name": "kwic", "vis_type": "kwic"},
		},
	}

	require.NoError(t, addTreeVisualizer(config, cfg))

	visualizers, ok := config["visualizers"].([]any)
	require.True(t, ok)
	require.Len(t, visualizers, 2)
	assert.Equal(t, "value", config["example"])

	added, ok := visualizers[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"display_name": "syntax tree",
		"element":      "node",
		"layer":        "treebank",
		"vis_type":     "tree",
		"visibility":   "hidden",
		"mappings": map[string]any{
			"edge_type":     "null",
			"node_anno_ns":  "treebank",
			"node_key":      "tree",
			"terminal_ns":   "default_ns",
			"terminal_name": "tok_anno",
		},
	}, added)
}

func TestAddTreeVisualizerEmptyConfig(t *testing.T) {
	config := map[string]any{}

	require.NoError(t, addTreeVisualizer(config, testConfig()))

	visualizers, ok := config["visualizers"].([]any)
	require.True(t, ok)
	assert.Len(t, visualizers, 1)
}

func TestAddTreeVisualizerTableArray(t *testing.T) {
	// the TOML decoder may surface arrays of tables in this shape
	config := map[string]any{
		"visualizers": []map[string]any{
			{"display_name": "kwic"},
		},
	}

	require.NoError(t, addTreeVisualizer(config, testConfig()))

	visualizers, ok := config["visualizers"].([]any)
	require.True(t, ok)
	assert.Len(t, visualizers, 2)
}

func TestAddTreeVisualizerInvalidConfig(t *testing.T) {
	config := map[string]any{"visualizers": "not an array"}

	assert.Error(t, addTreeVisualizer(config, testConfig()))
}
