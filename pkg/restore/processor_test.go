package restore

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vholub/diac/pkg/binreader"
	"github.com/vholub/diac/pkg/dictionary"
	"github.com/vholub/diac/pkg/model"
	"github.com/vholub/diac/pkg/offsetindex"
)

func putRecord(buf []byte, mid, prev, next, count int32) []byte {
	rec := make([]byte, model.RecordSize)
	binary.LittleEndian.PutUint32(rec[0:4], uint32(mid))
	binary.LittleEndian.PutUint32(rec[4:8], uint32(prev))
	binary.LittleEndian.PutUint32(rec[8:12], uint32(next))
	binary.LittleEndian.PutUint32(rec[12:16], uint32(count))
	return append(buf, rec...)
}

// buildEngine wires a tiny dictionary+model pair for "cesta"/"řeka" style
// restoration: "reka" (bare) expands to "řeka" (accented, id 2) and the
// model favors it whenever "cesta" (id 3) precedes it.
func buildEngine(t *testing.T) (*dictionary.Dictionary, *model.Model) {
	t.Helper()
	dir := t.TempDir()

	dictPath := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(dictPath, []byte("reka\nřeka\ncesta\n"), 0o644))
	dict, err := dictionary.Load(dictPath)
	require.NoError(t, err)

	// id 1 = reka, id 2 = řeka, id 3 = cesta
	var records []byte
	records = putRecord(records, 1, 0, 0, 1) // "reka" alone: low support
	records = putRecord(records, 2, 3, 0, 9) // "řeka" after "cesta": strong support

	modelPath := filepath.Join(dir, "model.bin")
	require.NoError(t, os.WriteFile(modelPath, records, 0o644))

	indexPath := filepath.Join(dir, "offsets.idx")
	// offsetindex applies the documented off-by-one: the value written
	// after a key becomes the *next* key's offset. To give id1 offset 0
	// and id2 offset 1, the value paired with id1 must be 1.
	require.NoError(t, os.WriteFile(indexPath, []byte("1\n1\n2\n999\n"), 0o644))
	index, err := offsetindex.Load(indexPath)
	require.NoError(t, err)

	newReader := func() (binreader.Reader, error) {
		f, err := os.Open(modelPath)
		if err != nil {
			return nil, err
		}
		return binreader.NewFileReader(f), nil
	}
	return dict, model.New(index, newReader)
}

func TestProcessTextRestoresAccentWithContext(t *testing.T) {
	dict, mdl := buildEngine(t)
	proc := NewProcessor(dict, mdl, nil, Options{Workers: 2, MaxCandidateBuckets: 4})

	var out strings.Builder
	stats, err := proc.ProcessText(context.Background(), strings.NewReader("cesta reka"), &out)
	require.NoError(t, err)
	require.Equal(t, 2, stats.WordsProcessed)
	require.Equal(t, "cesta řeka", out.String())
}

func TestProcessTextPassesThroughPureFormatting(t *testing.T) {
	dict, mdl := buildEngine(t)
	proc := NewProcessor(dict, mdl, nil, Options{Workers: 2})

	var out strings.Builder
	_, err := proc.ProcessText(context.Background(), strings.NewReader("..."), &out)
	require.NoError(t, err)
	require.Equal(t, "...", out.String())
}

func TestProcessTextPassesThroughDigitBearingTokens(t *testing.T) {
	dict, mdl := buildEngine(t)
	proc := NewProcessor(dict, mdl, nil, Options{Workers: 2})

	var out strings.Builder
	_, err := proc.ProcessText(context.Background(), strings.NewReader("r2d2"), &out)
	require.NoError(t, err)
	require.Equal(t, "r2d2", out.String())
}

func TestProcessTextMarksForeignWhenNoDictionaryMatch(t *testing.T) {
	dict, mdl := buildEngine(t)
	proc := NewProcessor(dict, mdl, nil, Options{Workers: 2})

	var out strings.Builder
	stats, err := proc.ProcessText(context.Background(), strings.NewReader("zzzznotaword"), &out)
	require.NoError(t, err)
	require.Contains(t, stats.ForeignWords, "zzzznotaword")
}

// buildPairEngine wires a single mid word (id 2) with two competing
// context records: one matched only by the preceding word (weak count)
// and one matched only by the following word (much stronger count). It
// exists to exercise lookupWithFallback's pair-vs-pair comparison
// directly, independent of any particular dictionary spelling.
func buildPairEngine(t *testing.T) *model.Model {
	t.Helper()
	dir := t.TempDir()

	var records []byte
	records = putRecord(records, 2, 3, 0, 1)  // (prev=3, mid=2): weak
	records = putRecord(records, 2, 0, 4, 50) // (mid=2, next=4): strong

	modelPath := filepath.Join(dir, "model.bin")
	require.NoError(t, os.WriteFile(modelPath, records, 0o644))

	indexPath := filepath.Join(dir, "offsets.idx")
	require.NoError(t, os.WriteFile(indexPath, []byte("2\n0\n"), 0o644))
	index, err := offsetindex.Load(indexPath)
	require.NoError(t, err)

	newReader := func() (binreader.Reader, error) {
		f, err := os.Open(modelPath)
		if err != nil {
			return nil, err
		}
		return binreader.NewFileReader(f), nil
	}
	return model.New(index, newReader)
}

func TestLookupWithFallbackPrefersHigherCountPair(t *testing.T) {
	mdl := buildPairEngine(t)
	p := &Processor{model: mdl}

	acc, err := p.lookupWithFallback(
		[]dictionary.WordID{2},
		[]dictionary.WordID{3},
		[]dictionary.WordID{4},
	)
	require.NoError(t, err)
	require.False(t, acc.Empty())

	top, candidate, ok := acc.Best()
	require.True(t, ok)
	require.EqualValues(t, 50, top, "the stronger next-pair match must win over the weaker prev-pair match")
	require.EqualValues(t, 4, candidate.Next)
	require.Zero(t, candidate.Prev)
}

func TestProcessTextEmptyInput(t *testing.T) {
	dict, mdl := buildEngine(t)
	proc := NewProcessor(dict, mdl, nil, Options{Workers: 2})

	var out strings.Builder
	stats, err := proc.ProcessText(context.Background(), strings.NewReader(""), &out)
	require.NoError(t, err)
	require.Equal(t, 0, stats.WordsProcessed)
	require.Empty(t, out.String())
}
