// Package model reads the trigram frequency model: a flat file of 16-byte
// records (mid, prev, next, count — all little-endian int32), offset by
// pkg/offsetindex to the first record for a given mid word. Lookup walks
// forward from that offset, in one of three modes depending on how much
// context is available, and accumulates results the way the original
// engine's std::map<int, std::vector<T>> did: grouped by count, ties within
// a group broken by insertion order.
package model

import (
	"errors"
	"fmt"
	"io"

	"github.com/vholub/diac/internal/apperr"
	"github.com/vholub/diac/internal/logger"
	"github.com/vholub/diac/pkg/binreader"
	"github.com/vholub/diac/pkg/dictionary"
	"github.com/vholub/diac/pkg/offsetindex"
)

// RecordSize is the fixed on-disk size of one trigram record.
const RecordSize = 16

var log = logger.New(logger.Model)

// Mode selects how much context a Lookup call was given.
type Mode int

const (
	// ModeSingle looks up mid alone; all of mid's records are summed into
	// one candidate.
	ModeSingle Mode = iota
	// ModePairPrev looks up (prev, mid), ignoring next; records are kept
	// individually.
	ModePairPrev
	// ModePairNext looks up (mid, next), ignoring prev; records are kept
	// individually.
	ModePairNext
	// ModeTriple looks up (prev, mid, next); records are kept individually.
	ModeTriple
)

// Candidate is one restoration candidate: the accented mid word id, plus
// whatever context word ids it was matched against.
type Candidate struct {
	Prev dictionary.WordID
	Mid  dictionary.WordID
	Next dictionary.WordID
}

// Bucket groups candidates that share the same observed count.
type Bucket struct {
	Count      int32
	Candidates []Candidate
}

// Accumulator collects lookup results grouped by count, preserving
// insertion order within a group, and tracks the highest count seen so
// Best can answer in O(1).
type Accumulator struct {
	order   []int32
	buckets map[int32][]Candidate
	max     int32
	maxSet  bool
}

// NewAccumulator constructs an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{buckets: make(map[int32][]Candidate)}
}

// Add records one (count, candidate) observation.
func (a *Accumulator) Add(count int32, c Candidate) {
	if _, ok := a.buckets[count]; !ok {
		a.order = append(a.order, count)
	}
	a.buckets[count] = append(a.buckets[count], c)
	if !a.maxSet || count > a.max {
		a.max = count
		a.maxSet = true
	}
}

// Merge folds other's entries into a, preserving a's existing insertion
// order and appending other's newly-seen counts after it. Used to combine
// the per-combination lookups of a Cartesian product of context variants
// into one ranking.
func (a *Accumulator) Merge(other *Accumulator) {
	for _, count := range other.order {
		for _, c := range other.buckets[count] {
			a.Add(count, c)
		}
	}
}

// Empty reports whether no candidate was ever added.
func (a *Accumulator) Empty() bool {
	return len(a.order) == 0
}

// Best returns the first-inserted candidate in the highest-count bucket,
// i.e. the same choice print_result/fill_result_word made by reading
// variant_map.crbegin()->second.front() in the original engine.
func (a *Accumulator) Best() (int32, Candidate, bool) {
	if a.Empty() {
		return 0, Candidate{}, false
	}
	bucket := a.buckets[a.max]
	return a.max, bucket[0], true
}

// Buckets returns every group, sorted by count descending, each preserving
// insertion order internally. Used by pkg/conflict to render and prune
// the candidate list.
func (a *Accumulator) Buckets() []Bucket {
	counts := make([]int32, len(a.order))
	copy(counts, a.order)
	// insertion-stable descending sort; there are rarely more than a
	// handful of distinct counts per lookup so this need not be clever.
	for i := 1; i < len(counts); i++ {
		for j := i; j > 0 && counts[j] > counts[j-1]; j-- {
			counts[j], counts[j-1] = counts[j-1], counts[j]
		}
	}
	out := make([]Bucket, 0, len(counts))
	seen := make(map[int32]bool, len(counts))
	for _, c := range counts {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, Bucket{Count: c, Candidates: a.buckets[c]})
	}
	return out
}

// Model ties the offset index to a reader factory. Each Lookup call opens
// its own Reader via newReader, so concurrent callers never share one
// (spec.md §4.2).
type Model struct {
	index     *offsetindex.Index
	newReader func() (binreader.Reader, error)
}

// New constructs a Model. newReader must return a fresh Reader positioned
// at the start of the model file on every call.
func New(index *offsetindex.Index, newReader func() (binreader.Reader, error)) *Model {
	return &Model{index: index, newReader: newReader}
}

// Lookup scans every trigram record for mid, filtering by prev/next
// according to mode, and returns the resulting Accumulator. A mid with no
// offset-index entry yields an empty (not nil) Accumulator.
func (m *Model) Lookup(mid, prev, next dictionary.WordID, mode Mode) (*Accumulator, error) {
	acc := NewAccumulator()

	offset, ok := m.index.Offset(mid)
	if !ok {
		return acc, nil
	}

	r, err := m.newReader()
	if err != nil {
		return nil, fmt.Errorf("model: opening reader: %w", err)
	}
	defer r.Close()

	if _, err := r.Seek(offset*RecordSize, io.SeekStart); err != nil {
		return nil, fmt.Errorf("model: seeking to offset %d: %w", offset, err)
	}

	var singleSum int32
	for {
		recMid, err := r.ReadInt32()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return nil, fmt.Errorf("model: reading record: %w", err)
		}
		if dictionary.WordID(recMid) != mid {
			break
		}
		recPrev, err1 := r.ReadInt32()
		recNext, err2 := r.ReadInt32()
		count, err3 := r.ReadInt32()
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("model: %w at mid %d", apperr.ErrCorruptRecord, mid)
		}

		switch mode {
		case ModeSingle:
			singleSum += count
		case ModePairPrev:
			if dictionary.WordID(recPrev) == prev {
				acc.Add(count, Candidate{Prev: prev, Mid: mid})
			}
		case ModePairNext:
			if dictionary.WordID(recNext) == next {
				acc.Add(count, Candidate{Mid: mid, Next: next})
			}
		case ModeTriple:
			if dictionary.WordID(recPrev) == prev && dictionary.WordID(recNext) == next {
				acc.Add(count, Candidate{Prev: prev, Mid: mid, Next: next})
			}
		}
	}

	if mode == ModeSingle && singleSum > 0 {
		acc.Add(singleSum, Candidate{Mid: mid})
	}
	return acc, nil
}
