package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func TestLoadSkipsUnsupportedAndUnreadable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "jane.docx", buildDOCX(t, `<w:document `+wordNS+`><w:body><w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p></w:body></w:document>`))
	writeFile(t, dir, "blank.docx", buildDOCX(t, `<w:document `+wordNS+`><w:body><w:p/></w:body></w:document>`))
	writeFile(t, dir, "broken.pdf", []byte("not a pdf at all"))
	writeFile(t, dir, "notes.txt", []byte("Jane Doe"))
	writeFile(t, dir, "UPPER.DOCX", []byte("ignored"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755))

	core, observed := observer.New(zapcore.InfoLevel)
	l := New(afs.New(), zap.New(core))

	docs, stats, err := l.Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, docs, 1)
	require.Equal(t, "jane.docx", docs[0].Filename)
	require.Equal(t, "Jane Doe", docs[0].Text)

	require.Equal(t, Stats{Listed: 5, Unsupported: 2, Unreadable: 2, Loaded: 1}, stats)

	require.Len(t, observed.FilterMessage("skipping unsupported file").All(), 2)
	require.Len(t, observed.FilterMessage("skipping unreadable file").All(), 1)
	require.Len(t, observed.FilterMessage("skipping file without text").All(), 1)
}

func TestLoadEmptyDirectory(t *testing.T) {
	t.Parallel()

	docs, stats, err := New(afs.New(), nil).Load(context.Background(), t.TempDir())
	require.NoError(t, err)
	require.Empty(t, docs)
	require.Equal(t, Stats{}, stats)
}

func TestLoadRequiresLocation(t *testing.T) {
	t.Parallel()

	_, _, err := New(afs.New(), nil).Load(context.Background(), "  ")
	require.Error(t, err)
}

func TestLoadStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "jane.docx", buildDOCX(t, `<w:document `+wordNS+`><w:body><w:p><w:r><w:t>Jane</w:t></w:r></w:p></w:body></w:document>`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := New(afs.New(), nil).Load(ctx, dir)
	require.ErrorIs(t, err, context.Canceled)
}
