package treebank

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/matthias-stemmler/rem-treebank-annis/pkg/errors"
)

// Storage locates treebank files in a directory. Files are bound to
// documents by name: a file belongs to document d if its stem begins
// with "d_".
type Storage struct {
	dir    string
	logger *zerolog.Logger
}

// NewStorage creates a Storage over the given directory.
func NewStorage(dir string, logger *zerolog.Logger) *Storage {
	return &Storage{dir: dir, logger: logger}
}

// DocumentForName finds and parses the treebank file for a document.
//
// Zero matching files returns an error matching errors.ErrNotFound and two
// or more matches one matching errors.ErrAmbiguous; the caller decides
// which of those abort the run. A file that matches but fails to parse as
// Turtle is logged and reported as (nil, nil): the document is skipped.
func (s *Storage) DocumentForName(docName string) (*Document, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.NewIOError("read", s.dir, err)
	}

	var docPath string
	prefix := docName + "_"

	for _, entry := range entries {
		name := entry.Name()
		if filepath.Ext(name) != ".ttl" {
			continue
		}
		stem := strings.TrimSuffix(name, ".ttl")
		if !strings.HasPrefix(stem, prefix) {
			continue
		}

		path := filepath.Join(s.dir, name)
		s.logger.Info().Str("document", docName).Str("path", path).Msg("found document")

		if docPath != "" {
			return nil, errors.NewBindingError(docName, docPath, path)
		}
		docPath = path
	}

	if docPath == "" {
		return nil, errors.NewBindingError(docName)
	}

	doc, err := parseFile(docPath)
	if err != nil {
		var parseErr *errors.ParseError
		if errors.As(err, &parseErr) && parseErr.Format == "turtle" && parseErr.Err != nil {
			s.logger.Warn().Str("path", docPath).Err(parseErr.Err).
				Msg("treebank file could not be parsed")
			return nil, nil
		}
		return nil, err
	}

	return doc, nil
}
