// Package snapshot writes an optional run-summary sidecar to a
// caller-chosen path (cmd/diac's -dump-stats), msgpack-encoded the same way
// pkg/server/server.go's sendResponse builds its wire frames: encode to an
// in-memory buffer first, then write the buffer out in one shot, so a
// reader never observes a partially-written file.
package snapshot

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vholub/diac/pkg/restore"
)

// RunStats is the sidecar payload: enough to sanity-check a batch run
// without re-reading the restored text.
type RunStats struct {
	WordsProcessed int           `msgpack:"words_processed"`
	ForeignWords   []string      `msgpack:"foreign_words"`
	StartedAt      time.Time     `msgpack:"started_at"`
	Elapsed        time.Duration `msgpack:"elapsed_ns"`
}

// FromProcessorStats builds a RunStats from a restore.Stats plus timing
// collected by the caller.
func FromProcessorStats(s restore.Stats, startedAt time.Time, elapsed time.Duration) RunStats {
	return RunStats{
		WordsProcessed: s.WordsProcessed,
		ForeignWords:   s.ForeignWords,
		StartedAt:      startedAt,
		Elapsed:        elapsed,
	}
}

// WriteFile msgpack-encodes stats and writes it to path, replacing any
// existing file atomically via a temp-file rename.
func WriteFile(path string, stats RunStats) error {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.Encode(stats); err != nil {
		return fmt.Errorf("snapshot: encoding stats: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("snapshot: writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("snapshot: renaming %s to %s: %w", tmp, path, err)
	}
	return nil
}

// ReadFile decodes a RunStats sidecar previously written by WriteFile.
func ReadFile(path string) (RunStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunStats{}, fmt.Errorf("snapshot: reading %s: %w", path, err)
	}
	var stats RunStats
	if err := msgpack.Unmarshal(data, &stats); err != nil {
		return RunStats{}, fmt.Errorf("snapshot: decoding %s: %w", path, err)
	}
	return stats, nil
}
