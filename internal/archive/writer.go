// Package archive packages merged corpora into the output zip. Content is
// staged into a temporary file next to the target path and only renamed
// into place on Finish, so an aborted run never leaves a partial archive.
package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/matthias-stemmler/rem-treebank-annis/pkg/errors"
)

// Writer writes one output archive.
type Writer struct {
	path        string
	tempFile    *os.File
	zipWriter   *zip.Writer
	corpusCount int
	finished    bool
	logger      *zerolog.Logger
}

// NewWriter creates a writer staging into the output path's directory.
func NewWriter(path string, logger *zerolog.Logger) (*Writer, error) {
	tempFile, err := os.CreateTemp(filepath.Dir(path), ".remannis-*.zip")
	if err != nil {
		return nil, errors.NewIOError("create", path, err)
	}

	return &Writer{
		path:      path,
		tempFile:  tempFile,
		zipWriter: zip.NewWriter(tempFile),
		logger:    logger,
	}, nil
}

// WriteCorpus stages one corpus: its GraphML rendered by render under
// "<name>.graphml", plus any linked files at their archive paths.
func (w *Writer) WriteCorpus(name string, render func(io.Writer) error, linkedFiles map[string][]byte) error {
	w.logger.Info().Str("corpus", name).Msg("writing corpus")

	entry, err := w.zipWriter.Create(name + ".graphml")
	if err != nil {
		return errors.NewIOError("write", w.path, err)
	}
	if err := render(entry); err != nil {
		return err
	}

	for _, path := range sortedKeys(linkedFiles) {
		entry, err := w.zipWriter.Create(path)
		if err != nil {
			return errors.NewIOError("write", w.path, err)
		}
		if _, err := entry.Write(linkedFiles[path]); err != nil {
			return errors.NewIOError("write", w.path, err)
		}
	}

	w.corpusCount++
	return nil
}

// Finish closes the archive and moves it into place.
func (w *Writer) Finish() error {
	if err := w.zipWriter.Close(); err != nil {
		return errors.NewIOError("close", w.path, err)
	}
	if err := w.tempFile.Close(); err != nil {
		return errors.NewIOError("close", w.tempFile.Name(), err)
	}
	if err := os.Rename(w.tempFile.Name(), w.path); err != nil {
		return errors.NewIOError("write", w.path, err)
	}
	w.finished = true

	w.logger.Info().Str("path", w.path).Int("count", w.corpusCount).Msg("written corpora")
	return nil
}

// Close discards the staging file unless Finish already ran. Safe to defer
// unconditionally.
func (w *Writer) Close() error {
	if w.finished {
		return nil
	}
	w.zipWriter.Close()
	w.tempFile.Close()
	if err := os.Remove(w.tempFile.Name()); err != nil && !os.IsNotExist(err) {
		return errors.NewIOError("delete", w.tempFile.Name(), err)
	}
	return nil
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys) // deterministic archive layout
	return keys
}
