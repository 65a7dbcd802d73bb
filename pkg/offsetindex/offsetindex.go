// Package offsetindex loads the word-id → model-record-offset index.
//
// The on-disk format is a sequence of "key\ncount\n" pairs, one per known
// mid word, in ascending word-id order. It carries a deliberate off-by-one:
// the value stored for the i-th key is the count belonging to the (i-1)-th
// pair, not its own. This mirrors DataPreparation's original loader
//
//	while (iff >> key >> count) {
//	    mutable_m.insert(key, prev_count);
//	    prev_count = count;
//	}
//
// and is preserved byte-for-byte here: the model files already on disk
// depend on it, so "fixing" it would silently break every existing data
// file (spec.md §9's open question resolves in favor of preserving it).
package offsetindex

import (
	"bufio"
	"fmt"
	"os"

	"github.com/vholub/diac/internal/apperr"
	"github.com/vholub/diac/internal/logger"
	"github.com/vholub/diac/pkg/dictionary"
)

var log = logger.New(logger.Model)

// Index maps a word id to the record offset (in 16-byte records, not
// bytes) at which its trigram records begin in the model file.
type Index struct {
	offsets map[dictionary.WordID]int64
}

// Load reads an offset index file, applying the documented off-by-one.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperr.ErrOffsetIndexUnreadable, path, err)
	}
	defer f.Close()

	ix := &Index{offsets: make(map[dictionary.WordID]int64)}

	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)

	var prevCount int64
	count := 0
	for {
		key, okKey := nextInt(scanner)
		if !okKey {
			break
		}
		value, okValue := nextInt(scanner)
		if !okValue {
			return nil, fmt.Errorf("%w: %s: dangling key with no count", apperr.ErrOffsetIndexUnreadable, path)
		}
		ix.offsets[dictionary.WordID(key)] = prevCount
		prevCount = value
		count++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperr.ErrOffsetIndexUnreadable, path, err)
	}
	log.Debugf("loaded %d offset entries from %s", count, path)
	return ix, nil
}

func nextInt(scanner *bufio.Scanner) (int64, bool) {
	if !scanner.Scan() {
		return 0, false
	}
	var v int64
	_, err := fmt.Sscanf(scanner.Text(), "%d", &v)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Offset returns the record offset for id, if known.
func (ix *Index) Offset(id dictionary.WordID) (int64, bool) {
	off, ok := ix.offsets[id]
	return off, ok
}

// Len returns the number of indexed word ids.
func (ix *Index) Len() int {
	return len(ix.offsets)
}
