package snapshot

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vholub/diac/pkg/restore"
)

func TestWriteFileThenReadFileRoundTrips(t *testing.T) {
	stats := restore.Stats{WordsProcessed: 42, ForeignWords: []string{"foo", "bar"}}
	started := time.Unix(1700000000, 0).UTC()
	snap := FromProcessorStats(stats, started, 5*time.Second)

	path := filepath.Join(t.TempDir(), "run.msgpack")
	require.NoError(t, WriteFile(path, snap))

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 42, got.WordsProcessed)
	require.Equal(t, []string{"foo", "bar"}, got.ForeignWords)
	require.Equal(t, started, got.StartedAt)
	require.Equal(t, 5*time.Second, got.Elapsed)
}

func TestReadFileMissingPath(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.msgpack"))
	require.Error(t, err)
}

func TestWriteFileReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.msgpack")
	require.NoError(t, WriteFile(path, RunStats{WordsProcessed: 1}))
	require.NoError(t, WriteFile(path, RunStats{WordsProcessed: 2}))

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, got.WordsProcessed)
}
