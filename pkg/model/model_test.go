package model

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vholub/diac/pkg/binreader"
	"github.com/vholub/diac/pkg/dictionary"
	"github.com/vholub/diac/pkg/offsetindex"
)

func putRecord(buf []byte, mid, prev, next, count int32) []byte {
	rec := make([]byte, RecordSize)
	binary.LittleEndian.PutUint32(rec[0:4], uint32(mid))
	binary.LittleEndian.PutUint32(rec[4:8], uint32(prev))
	binary.LittleEndian.PutUint32(rec[8:12], uint32(next))
	binary.LittleEndian.PutUint32(rec[12:16], uint32(count))
	return append(buf, rec...)
}

func buildModel(t *testing.T) *Model {
	t.Helper()

	var records []byte
	records = putRecord(records, 1, 2, 3, 5) // (prev=2, mid=1, next=3) count 5
	records = putRecord(records, 1, 2, 4, 3) // (prev=2, mid=1, next=4) count 3
	records = putRecord(records, 1, 0, 0, 2) // no context, count 2
	records = putRecord(records, 2, 2, 3, 9) // different mid, must stop scan

	modelPath := filepath.Join(t.TempDir(), "model.bin")
	require.NoError(t, os.WriteFile(modelPath, records, 0o644))

	indexPath := filepath.Join(t.TempDir(), "offsets.idx")
	require.NoError(t, os.WriteFile(indexPath, []byte("1\n0\n"), 0o644))
	index, err := offsetindex.Load(indexPath)
	require.NoError(t, err)

	newReader := func() (binreader.Reader, error) {
		f, err := os.Open(modelPath)
		if err != nil {
			return nil, err
		}
		return binreader.NewFileReader(f), nil
	}
	return New(index, newReader)
}

func TestLookupModeTriple(t *testing.T) {
	m := buildModel(t)
	acc, err := m.Lookup(1, 2, 3, ModeTriple)
	require.NoError(t, err)
	require.False(t, acc.Empty())

	count, cand, ok := acc.Best()
	require.True(t, ok)
	require.EqualValues(t, 5, count)
	require.Equal(t, dictionary.WordID(1), cand.Mid)
}

func TestLookupModePairPrevGroupsBothMatches(t *testing.T) {
	m := buildModel(t)
	acc, err := m.Lookup(1, 2, 0, ModePairPrev)
	require.NoError(t, err)

	buckets := acc.Buckets()
	require.Len(t, buckets, 2)
	require.EqualValues(t, 5, buckets[0].Count)
	require.EqualValues(t, 3, buckets[1].Count)
}

func TestLookupModePairNextMatchesOnlyOne(t *testing.T) {
	m := buildModel(t)
	acc, err := m.Lookup(1, 0, 3, ModePairNext)
	require.NoError(t, err)

	buckets := acc.Buckets()
	require.Len(t, buckets, 1)
	require.EqualValues(t, 5, buckets[0].Count)
}

func TestLookupModeSingleSumsAllRecords(t *testing.T) {
	m := buildModel(t)
	acc, err := m.Lookup(1, 0, 0, ModeSingle)
	require.NoError(t, err)

	count, _, ok := acc.Best()
	require.True(t, ok)
	require.EqualValues(t, 10, count) // 5 + 3 + 2
}

func TestLookupUnknownMidIsEmpty(t *testing.T) {
	m := buildModel(t)
	acc, err := m.Lookup(99, 0, 0, ModeSingle)
	require.NoError(t, err)
	require.True(t, acc.Empty())
}

func TestAccumulatorMergePreservesOrderAndMax(t *testing.T) {
	a := NewAccumulator()
	a.Add(5, Candidate{Mid: 1})
	b := NewAccumulator()
	b.Add(9, Candidate{Mid: 2})
	b.Add(5, Candidate{Mid: 3})

	a.Merge(b)

	count, cand, ok := a.Best()
	require.True(t, ok)
	require.EqualValues(t, 9, count)
	require.Equal(t, dictionary.WordID(2), cand.Mid)

	buckets := a.Buckets()
	require.Len(t, buckets, 2)
	require.EqualValues(t, 9, buckets[0].Count)
	require.EqualValues(t, 5, buckets[1].Count)
	require.Len(t, buckets[1].Candidates, 2)
}
