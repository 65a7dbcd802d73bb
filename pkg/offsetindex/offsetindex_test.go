package offsetindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vholub/diac/pkg/dictionary"
)

func writeIndex(t *testing.T, pairs string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "offsets.idx")
	require.NoError(t, os.WriteFile(path, []byte(pairs), 0o644))
	return path
}

func TestLoadAppliesOffByOne(t *testing.T) {
	// key=1 count=10, key=2 count=20, key=3 count=30
	path := writeIndex(t, "1\n10\n2\n20\n3\n30\n")
	ix, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, ix.Len())

	// offset stored for key_i is count_{i-1}, not its own count.
	off1, ok := ix.Offset(dictionary.WordID(1))
	require.True(t, ok)
	require.EqualValues(t, 0, off1)

	off2, ok := ix.Offset(dictionary.WordID(2))
	require.True(t, ok)
	require.EqualValues(t, 10, off2)

	off3, ok := ix.Offset(dictionary.WordID(3))
	require.True(t, ok)
	require.EqualValues(t, 20, off3)
}

func TestOffsetUnknownID(t *testing.T) {
	path := writeIndex(t, "1\n10\n")
	ix, err := Load(path)
	require.NoError(t, err)

	_, ok := ix.Offset(dictionary.WordID(99))
	require.False(t, ok)
}

func TestLoadDanglingKeyErrors(t *testing.T) {
	path := writeIndex(t, "1\n10\n2\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.idx"))
	require.Error(t, err)
}
