package merge

import (
	"net/url"
	"strings"

	"github.com/matthias-stemmler/rem-treebank-annis/internal/annis"
	"github.com/matthias-stemmler/rem-treebank-annis/pkg/errors"
)

// RenamePattern rewrites corpus names. The pattern must contain the
// placeholder %c, which stands for the original name.
type RenamePattern struct {
	pattern string
}

// ParseRenamePattern validates and builds a rename pattern.
func ParseRenamePattern(pattern string) (*RenamePattern, error) {
	if !strings.Contains(pattern, "%c") {
		return nil, errors.New("pattern must contain placeholder `%c`")
	}
	return &RenamePattern{pattern: pattern}, nil
}

// Apply substitutes the corpus name into the pattern.
func (p *RenamePattern) Apply(name string) string {
	return strings.ReplaceAll(p.pattern, "%c", name)
}

// renameUpdate builds the batch that rewrites every node name of a corpus.
//
// The corpus-root node is named by the corpus name verbatim and is replaced
// outright. Every other node name starts with the URL-encoded corpus name
// followed by '/'; the prefix is swapped for the encoded new name and the
// remainder kept. Any other shape is an error.
func renameUpdate(graph *annis.Graph, oldName, newName string) (*annis.Update, error) {
	oldEncoded := encodeCorpusName(oldName)
	newEncoded := encodeCorpusName(newName)

	update := annis.NewUpdate()

	for _, nodeName := range graph.NodeNames() {
		var newNodeName string

		switch prefix, rest, found := strings.Cut(nodeName, "/"); {
		case nodeName == oldName:
			// node name of the corpus node is *not* URL-encoded
			newNodeName = newName
		case found:
			if prefix != oldEncoded {
				return nil, &errors.RenameError{
					NodeName: nodeName,
					Message:  "unexpected corpus name '" + prefix + "', want '" + oldEncoded + "'",
				}
			}
			newNodeName = newEncoded + "/" + rest
		default:
			return nil, &errors.RenameError{NodeName: nodeName, Message: "no corpus prefix"}
		}

		update.AddNodeAnno(nodeName, annis.NodeNameKey, newNodeName)
	}

	return update, nil
}

// encodeCorpusName percent-encodes a corpus name the way it appears as the
// leading segment of node names.
func encodeCorpusName(name string) string {
	return url.PathEscape(name)
}
