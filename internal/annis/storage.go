package annis

import (
	"archive/zip"
	"io"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/matthias-stemmler/rem-treebank-annis/pkg/errors"
)

// Storage holds the resident corpora of one run. Corpora are imported
// from a zip of GraphML files, mutated through update batches and unloaded
// once they have been packaged, so peak memory stays around one corpus.
type Storage struct {
	logger  *zerolog.Logger
	order   []string
	corpora map[string]*Corpus
}

// Corpus is one resident corpus: its graph, its configuration document and
// any auxiliary files that were packaged next to it.
type Corpus struct {
	Name   string
	Graph  *Graph
	Config map[string]any

	// LinkedFiles holds auxiliary archive entries under "<name>/", keyed
	// by their archive path.
	LinkedFiles map[string][]byte
}

// ImportZip loads every corpus from a zip archive. Each "<name>.graphml"
// entry becomes a corpus; entries under "<name>/" are retained as linked
// files. Corpora are kept in archive order.
func ImportZip(zipPath string, logger *zerolog.Logger) (*Storage, error) {
	logger.Info().Str("path", zipPath).Msg("importing corpora")

	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, errors.NewIOError("open", zipPath, err)
	}
	defer reader.Close()

	storage := &Storage{
		logger:  logger,
		corpora: make(map[string]*Corpus),
	}

	var linked []*zip.File

	for _, entry := range reader.File {
		name := entry.Name
		switch {
		case strings.HasSuffix(name, ".graphml") && !strings.Contains(name, "/"):
			corpusName := strings.TrimSuffix(name, ".graphml")
			if err := storage.importCorpus(corpusName, entry); err != nil {
				return nil, err
			}
		case strings.Contains(name, "/") && !strings.HasSuffix(name, "/"):
			linked = append(linked, entry)
		}
	}

	for _, entry := range linked {
		corpusName := entry.Name[:strings.Index(entry.Name, "/")]
		corpus, ok := storage.corpora[corpusName]
		if !ok {
			return nil, errors.NewParseError("zip", zipPath,
				"linked file "+entry.Name+" belongs to no corpus", nil)
		}
		data, err := readZipEntry(entry)
		if err != nil {
			return nil, err
		}
		corpus.LinkedFiles[entry.Name] = data
	}

	logger.Info().Int("count", len(storage.order)).Msg("imported corpora")

	return storage, nil
}

func (s *Storage) importCorpus(corpusName string, entry *zip.File) error {
	if _, exists := s.corpora[corpusName]; exists {
		return errors.NewParseError("zip", entry.Name, "corpus "+corpusName+" appears twice", nil)
	}

	r, err := entry.Open()
	if err != nil {
		return errors.NewIOError("open", entry.Name, err)
	}
	defer r.Close()

	graph, config, err := decodeGraphML(r, entry.Name)
	if err != nil {
		return err
	}

	s.order = append(s.order, corpusName)
	s.corpora[corpusName] = &Corpus{
		Name:        corpusName,
		Graph:       graph,
		Config:      config,
		LinkedFiles: make(map[string][]byte),
	}
	return nil
}

func readZipEntry(entry *zip.File) ([]byte, error) {
	r, err := entry.Open()
	if err != nil {
		return nil, errors.NewIOError("open", entry.Name, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewIOError("read", entry.Name, err)
	}
	return data, nil
}

// Corpora returns the resident corpus names in import order. Unloaded
// corpora are excluded.
func (s *Storage) Corpora() []string {
	var names []string
	for _, name := range s.order {
		if _, ok := s.corpora[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// Corpus returns a resident corpus by name.
func (s *Storage) Corpus(name string) (*Corpus, error) {
	corpus, ok := s.corpora[name]
	if !ok {
		return nil, errors.New("corpus " + name + " is not resident")
	}
	return corpus, nil
}

// ApplyUpdate applies an update batch to a corpus.
func (s *Storage) ApplyUpdate(corpusName string, u *Update) error {
	corpus, err := s.Corpus(corpusName)
	if err != nil {
		return err
	}

	s.logger.Info().Str("corpus", corpusName).Int("count", u.Len()).
		Msg("applying updates to corpus")

	return corpus.Graph.ApplyUpdate(corpusName, u)
}

// ExportGraphML writes a corpus with the given configuration document.
// The graph id is taken from exportName, which differs from corpusName
// after a rename.
func (s *Storage) ExportGraphML(corpusName, exportName string, w io.Writer, config map[string]any) error {
	corpus, err := s.Corpus(corpusName)
	if err != nil {
		return err
	}
	return encodeGraphML(w, exportName, corpus.Graph, config)
}

// Unload drops a corpus from the resident set, freeing its graph.
func (s *Storage) Unload(corpusName string) {
	delete(s.corpora, corpusName)
}

// LinkedFileName returns the archive path of a linked file rebased onto a
// possibly renamed corpus.
func LinkedFileName(archivePath, newCorpusName string) string {
	_, rest, ok := strings.Cut(archivePath, "/")
	if !ok {
		return archivePath
	}
	return path.Join(newCorpusName, rest)
}
