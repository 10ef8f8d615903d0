package merge

import (
	"context"
	"io"
	"strings"

	"github.com/matthias-stemmler/rem-treebank-annis/internal/annis"
	"github.com/matthias-stemmler/rem-treebank-annis/internal/archive"
	"github.com/matthias-stemmler/rem-treebank-annis/internal/treebank"
	"github.com/matthias-stemmler/rem-treebank-annis/pkg/errors"
	"github.com/matthias-stemmler/rem-treebank-annis/pkg/logging"
)

// Config holds the merge parameters.
type Config struct {
	// Layer is the namespace the merged nodes and edges live under.
	Layer string

	// TreeAnno is the annotation name carrying the node category.
	TreeAnno string

	// TreeDisplay is the display name of the generated tree visualizer.
	TreeDisplay string

	// IriAnno, when set, names an annotation recording each merged node's
	// treebank identifier.
	IriAnno string

	// Rename, when set, rewrites every corpus name on output.
	Rename *RenamePattern
}

// Merger runs the whole merge: every document of every resident corpus,
// strictly sequentially, one update batch per document.
type Merger struct {
	storage  *annis.Storage
	treebank *treebank.Storage
	writer   *archive.Writer
	cfg      Config
}

// NewMerger wires a merger over its collaborators.
func NewMerger(storage *annis.Storage, tb *treebank.Storage, writer *archive.Writer, cfg Config) *Merger {
	return &Merger{storage: storage, treebank: tb, writer: writer, cfg: cfg}
}

// Run merges all corpora and finalizes the output archive. Any error
// aborts the run; corpora merged before the failure stay staged but the
// archive is only persisted by a clean finish.
func (m *Merger) Run(ctx context.Context) error {
	for _, corpusName := range m.storage.Corpora() {
		corpusCtx := logging.WithCorpus(ctx, corpusName)
		logging.Ctx(corpusCtx).Info().Msg("processing corpus")

		if err := m.mergeCorpus(corpusCtx, corpusName); err != nil {
			return err
		}
	}

	return m.writer.Finish()
}

func (m *Merger) mergeCorpus(ctx context.Context, corpusName string) error {
	corpus, err := m.storage.Corpus(corpusName)
	if err != nil {
		return err
	}

	documents := corpus.Graph.DocumentNodes()
	merged := 0

	for _, docNodeName := range documents {
		ok, err := m.mergeDocument(ctx, corpusName, corpus.Graph, docNodeName)
		if err != nil {
			return err
		}
		if ok {
			merged++
		}
	}

	logging.Ctx(ctx).Info().
		Int("documents", len(documents)).
		Int("merged", merged).
		Msg("merged documents")

	if err := m.containmentPass(ctx, corpusName, corpus.Graph); err != nil {
		return err
	}

	outName := corpusName
	if m.cfg.Rename != nil {
		outName = m.cfg.Rename.Apply(corpusName)
		if err := m.renameCorpus(ctx, corpusName, outName, corpus.Graph); err != nil {
			return err
		}
	}

	config := corpus.Config
	if config == nil {
		config = make(map[string]any)
	}
	if err := addTreeVisualizer(config, m.cfg); err != nil {
		return err
	}

	linkedFiles := make(map[string][]byte, len(corpus.LinkedFiles))
	for path, data := range corpus.LinkedFiles {
		linkedFiles[annis.LinkedFileName(path, outName)] = data
	}

	err = m.writer.WriteCorpus(outName, func(w io.Writer) error {
		return m.storage.ExportGraphML(corpusName, outName, w, config)
	}, linkedFiles)
	if err != nil {
		return err
	}

	// free the corpus graph before the next corpus is processed
	m.storage.Unload(corpusName)

	return nil
}

// mergeDocument merges one document and reports whether it was merged
// rather than skipped.
func (m *Merger) mergeDocument(ctx context.Context, corpusName string, graph *annis.Graph, docNodeName string) (bool, error) {
	_, docName, found := strings.Cut(docNodeName, "/")
	if !found {
		return false, errors.New("could not get document name from node name " + docNodeName)
	}

	docCtx := logging.WithDocument(ctx, docName)
	logger := logging.Ctx(docCtx)

	doc, err := m.treebank.DocumentForName(docName)
	if err != nil {
		if errors.IsNotFound(err) {
			logger.Info().Msg("skipping document: no treebank file")
			return false, nil
		}
		return false, err
	}
	if doc == nil {
		logger.Info().Msg("skipping document: treebank file not parseable")
		return false, nil
	}

	logger.Info().Msg("processing document")

	view := graph.DocumentView(docNodeName)

	mapper, err := NewNodeNameMapper(doc, view)
	if err != nil {
		return false, err
	}

	logger.Debug().Int("aligned", mapper.PairCount()).Msg("aligned word sequences")

	update := annis.NewUpdate()
	closure := NewClosure(mapper, m.cfg)
	if err := closure.Run(doc.ParentEdges(), update); err != nil {
		return false, err
	}

	if err := m.storage.ApplyUpdate(corpusName, update); err != nil {
		return false, err
	}

	return true, nil
}

// containmentPass links every merged layer node to the datasource that
// contains it. Deferred until after all documents because the containing
// datasource is only fixed once the whole corpus is merged.
func (m *Merger) containmentPass(ctx context.Context, corpusName string, graph *annis.Graph) error {
	update := annis.NewUpdate()

	for _, match := range graph.LayerDatasourceMatches(m.cfg.Layer) {
		update.AddEdge(match.LayerNode, match.Datasource,
			annis.Component{Type: annis.PartOf, Layer: annis.Namespace, Name: ""})
	}

	logging.Ctx(ctx).Debug().Int("edges", update.Len()).Msg("adding containment edges")

	return m.storage.ApplyUpdate(corpusName, update)
}

func (m *Merger) renameCorpus(ctx context.Context, oldName, newName string, graph *annis.Graph) error {
	logging.Ctx(ctx).Info().Str("new_name", newName).Msg("renaming corpus")

	update, err := renameUpdate(graph, oldName, newName)
	if err != nil {
		return err
	}

	return m.storage.ApplyUpdate(oldName, update)
}
