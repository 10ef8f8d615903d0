package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthias-stemmler/rem-treebank-annis/pkg/logging"
)

func TestWriterFinish(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.zip")

	writer, err := NewWriter(path, logging.NewNopLogger())
	require.NoError(t, err)
	defer writer.Close()

	err = writer.WriteCorpus("x", func(w io.Writer) error {
		_, err := io.WriteString(w, "<graphml/>")
		return err
	}, map[string][]byte{
		"x/ExtData/b.txt": []byte("second"),
		"x/ExtData/a.txt": []byte("first"),
	})
	require.NoError(t, err)

	// nothing is visible at the target path before Finish
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	require.NoError(t, writer.Finish())

	reader, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer reader.Close()

	var names []string
	for _, entry := range reader.File {
		names = append(names, entry.Name)
	}
	assert.Equal(t, []string{"x.graphml", "x/ExtData/a.txt", "x/ExtData/b.txt"}, names)

	r, err := reader.File[0].Open()
	require.NoError(t, err)
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "<graphml/>", string(content))

	// Close after Finish keeps the archive
	require.NoError(t, writer.Close())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestWriterCloseDiscardsStaging(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.zip")

	writer, err := NewWriter(path, logging.NewNopLogger())
	require.NoError(t, err)

	err = writer.WriteCorpus("x", func(w io.Writer) error {
		_, err := io.WriteString(w, "<graphml/>")
		return err
	}, nil)
	require.NoError(t, err)

	require.NoError(t, writer.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "staging file must be removed")
}

func TestWriterRenderError(t *testing.T) {
	dir := t.TempDir()

	writer, err := NewWriter(filepath.Join(dir, "out.zip"), logging.NewNopLogger())
	require.NoError(t, err)
	defer writer.Close()

	renderErr := io.ErrUnexpectedEOF
	err = writer.WriteCorpus("x", func(io.Writer) error { return renderErr }, nil)
	assert.ErrorIs(t, err, renderErr)
}
