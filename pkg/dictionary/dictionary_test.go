package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeDict(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	data := ""
	for _, l := range lines {
		data += l + "\r\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadAssignsSequentialIDs(t *testing.T) {
	path := writeDict(t, "auto", "byt", "cesta")
	d, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, d.Len())

	require.Equal(t, WordID(1), d.ID("auto"))
	require.Equal(t, WordID(2), d.ID("byt"))
	require.Equal(t, WordID(3), d.ID("cesta"))
}

func TestLoadStripsTrailingCR(t *testing.T) {
	path := writeDict(t, "auto")
	d, err := Load(path)
	require.NoError(t, err)

	word, ok := d.Word(WordID(1))
	require.True(t, ok)
	require.Equal(t, "auto", word)
}

func TestIDUnknownWord(t *testing.T) {
	path := writeDict(t, "auto")
	d, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, UnknownWord, d.ID("neexistuje"))
}

func TestWordOutOfRange(t *testing.T) {
	path := writeDict(t, "auto")
	d, err := Load(path)
	require.NoError(t, err)

	_, ok := d.Word(UnknownWord)
	require.False(t, ok)

	_, ok = d.Word(WordID(99))
	require.False(t, ok)
}

func TestHasPrefix(t *testing.T) {
	path := writeDict(t, "auto", "automat", "byt")
	d, err := Load(path)
	require.NoError(t, err)

	require.True(t, d.HasPrefix("aut"))
	require.True(t, d.HasPrefix("auto"))
	require.False(t, d.HasPrefix("xyz"))
}

func TestValidateRoundTrips(t *testing.T) {
	path := writeDict(t, "auto", "byt", "cesta")
	d, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, d.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}
