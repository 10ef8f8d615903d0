// Package merge correlates a treebank document with its counterpart in the
// annotation graph and merges the treebank's dominance structure into it.
package merge

import (
	"strings"

	"github.com/matthias-stemmler/rem-treebank-annis/internal/annis"
)

// TokAnno is the segmentation annotation of the ReM corpora that carries
// the diplomatic token layer the treebank was built on.
const TokAnno = "tok_anno"

// annotationNS is the namespace of the ReM word annotations in the
// annotation graph.
const annotationNS = "annotation"

var (
	annoInflection = annis.AnnoKey{NS: annotationNS, Name: "inflection"}
	annoLemma      = annis.AnnoKey{NS: annotationNS, Name: "lemma"}
	annoNorm       = annis.AnnoKey{NS: annotationNS, Name: "norm"}
	annoPos        = annis.AnnoKey{NS: annotationNS, Name: "pos"}
)

// Sanitize normalizes a graph-side annotation value: the placeholder "--"
// means absent, surrounding whitespace is dropped, and '#' becomes '-'
// because '#' separates document and fragment in merged node names.
func Sanitize(value string, present bool) (string, bool) {
	if !present || value == "--" {
		return "", false
	}
	value = strings.TrimSpace(value)
	return strings.ReplaceAll(value, "#", "-"), true
}

// unescapeTreebank reverses the quote escaping of the treebank export.
func unescapeTreebank(value string) string {
	return strings.ReplaceAll(value, "&quot;", `"`)
}
