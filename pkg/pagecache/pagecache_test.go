package pagecache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestOpenRejectsNonPowerOfTwoPageSize(t *testing.T) {
	path := writeFile(t, []byte("hello"))
	_, err := Open(path, 100)
	require.Error(t, err)
}

func TestReadAtWithinOnePage(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 32)
	path := writeFile(t, data)

	c, err := Open(path, 16)
	require.NoError(t, err)

	dst := make([]byte, 8)
	n, err := c.ReadAt(dst, 4)
	require.NoError(t, err)
	require.Equal(t, 8, n)
	require.Equal(t, bytes.Repeat([]byte{0xAB}, 8), dst)
}

func TestReadAtSpansMultiplePages(t *testing.T) {
	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i)
	}
	path := writeFile(t, data)

	c, err := Open(path, 16)
	require.NoError(t, err)

	dst := make([]byte, 32)
	n, err := c.ReadAt(dst, 8)
	require.NoError(t, err)
	require.Equal(t, 32, n)
	require.Equal(t, data[8:40], dst)
}

func TestReadAtPastEOFReturnsShortReadAndEOF(t *testing.T) {
	data := bytes.Repeat([]byte{1}, 10)
	path := writeFile(t, data)

	c, err := Open(path, 16)
	require.NoError(t, err)

	dst := make([]byte, 20)
	n, err := c.ReadAt(dst, 0)
	require.Error(t, err)
	require.Equal(t, 10, n)
}

func TestMissingBackingFileServesZeroFilledPages(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.bin")
	c, err := Open(missing, 16)
	require.NoError(t, err)
	require.EqualValues(t, 0, c.Size())

	dst := make([]byte, 16)
	n, err := c.ReadAt(dst, 0)
	require.NoError(t, err)
	require.Equal(t, 16, n)
	require.Equal(t, make([]byte, 16), dst)
}

func TestPageIsMaterializedOnce(t *testing.T) {
	data := bytes.Repeat([]byte{0x42}, 16)
	path := writeFile(t, data)

	c, err := Open(path, 16)
	require.NoError(t, err)

	dst := make([]byte, 16)
	_, err = c.ReadAt(dst, 0)
	require.NoError(t, err)
	_, err = c.ReadAt(dst, 0)
	require.NoError(t, err)

	stats := c.StatsSnapshot()
	require.EqualValues(t, 2, stats.Lookups)
	require.EqualValues(t, 1, stats.Inserts)
	require.EqualValues(t, 1, stats.Hits)
}
