package merge

import (
	"github.com/matthias-stemmler/rem-treebank-annis/internal/annis"
	"github.com/matthias-stemmler/rem-treebank-annis/pkg/errors"
)

// addTreeVisualizer appends a tree visualizer descriptor for the merged
// layer to the corpus configuration, creating the visualizers array if the
// corpus has none yet.
func addTreeVisualizer(config map[string]any, cfg Config) error {
	raw, ok := config["visualizers"]
	if !ok {
		raw = []any{}
	}

	visualizers, ok := asSlice(raw)
	if !ok {
		return errors.New("invalid corpus config: `visualizers` is not an array")
	}

	visualizers = append(visualizers, map[string]any{
		"display_name": cfg.TreeDisplay,
		"element":      "node",
		"layer":        cfg.Layer,
		"vis_type":     "tree",
		"visibility":   "hidden",
		"mappings": map[string]any{
			"edge_type":     "null",
			"node_anno_ns":  cfg.Layer,
			"node_key":      cfg.TreeAnno,
			"terminal_ns":   annis.DefaultNamespace,
			"terminal_name": TokAnno,
		},
	})

	config["visualizers"] = visualizers
	return nil
}

// asSlice accepts the array shapes the TOML decoder may produce.
func asSlice(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case []any:
		return v, true
	case []map[string]any:
		result := make([]any, 0, len(v))
		for _, entry := range v {
			result = append(result, entry)
		}
		return result, true
	default:
		return nil, false
	}
}
