package feed_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplyhub/supplyhub/internal/feed"
	"github.com/supplyhub/supplyhub/pkg/storage"
)

func newTestDisk(t *testing.T) storage.Disk {
	t.Helper()
	return storage.NewLocal(t.TempDir(), "")
}

func TestOpenFileMissing(t *testing.T) {
	disk := newTestDisk(t)

	_, err := feed.OpenFile(disk, "staging/apex/nope.txt", '^')
	assert.ErrorIs(t, err, feed.ErrFileNotStaged)
}

func TestReaderCaretDelimited(t *testing.T) {
	disk := newTestDisk(t)
	content := "Style^Color Name^Gtin\nAB100^Navy^00123\nAB101^Red, Bright^00456\n"
	require.NoError(t, disk.Put("staging/apex/catalog.txt", []byte(content)))

	r, err := feed.OpenFile(disk, "staging/apex/catalog.txt", '^')
	require.NoError(t, err)
	defer r.Close()

	row, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, row.Line)

	v, err := row.Get("Style")
	require.NoError(t, err)
	assert.Equal(t, "AB100", v)

	// A comma inside a caret-delimited field is plain data.
	row, err = r.Next()
	require.NoError(t, err)
	v, err = row.Get("Color Name")
	require.NoError(t, err)
	assert.Equal(t, "Red, Bright", v)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderMissingColumn(t *testing.T) {
	disk := newTestDisk(t)
	require.NoError(t, disk.Put("f.csv", []byte("A,B\n1,2\n")))

	r, err := feed.OpenFile(disk, "f.csv", ',')
	require.NoError(t, err)
	defer r.Close()

	row, err := r.Next()
	require.NoError(t, err)

	_, err = row.Get("C")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing column "C"`)
}

func TestReaderDecodesLatin1(t *testing.T) {
	disk := newTestDisk(t)
	// "Café" with an ISO-8859-1 encoded é (0xE9).
	raw := append([]byte("Name\nCaf"), 0xE9, '\n')
	require.NoError(t, disk.Put("latin.csv", raw))

	r, err := feed.OpenFile(disk, "latin.csv", ',')
	require.NoError(t, err)
	defer r.Close()

	row, err := r.Next()
	require.NoError(t, err)
	v, err := row.Get("Name")
	require.NoError(t, err)
	assert.Equal(t, "Café", v)
}

func TestReaderRaggedRows(t *testing.T) {
	disk := newTestDisk(t)
	require.NoError(t, disk.Put("r.csv", []byte("A,B,C\n1,2\n")))

	r, err := feed.OpenFile(disk, "r.csv", ',')
	require.NoError(t, err)
	defer r.Close()

	// A short row reads as empty for the trailing column, not as an error.
	row, err := r.Next()
	require.NoError(t, err)
	v, err := row.Get("C")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	var eofErr error
	for eofErr == nil {
		_, eofErr = r.Next()
	}
	assert.True(t, errors.Is(eofErr, io.EOF))
}
