package evalset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompareIdenticalFiles(t *testing.T) {
	report, err := Compare(strings.NewReader("ahoj svete"), strings.NewReader("ahoj svete"))
	require.NoError(t, err)
	require.Equal(t, 2, report.TotalWords)
	require.Equal(t, 0, report.MismatchWords)
	require.InDelta(t, 1.0, report.Accuracy(), 0.0001)
}

func TestCompareReportsMismatches(t *testing.T) {
	report, err := Compare(strings.NewReader("řeka je hezká"), strings.NewReader("reka je hezka"))
	require.NoError(t, err)
	require.Equal(t, 3, report.TotalWords)
	require.Equal(t, 2, report.MismatchWords)
	require.Len(t, report.Mismatches, 2)
	require.Equal(t, 0, report.Mismatches[0].Index)
	require.Equal(t, "řeka", report.Mismatches[0].Reference)
	require.Equal(t, "reka", report.Mismatches[0].Candidate)
}

func TestCompareLengthMismatchCountsExtraAsMisses(t *testing.T) {
	report, err := Compare(strings.NewReader("a b c"), strings.NewReader("a b"))
	require.NoError(t, err)
	require.Equal(t, 3, report.TotalWords)
	require.Equal(t, 1, report.MismatchWords)
}

func TestAccuracyEmptyReferenceIsPerfect(t *testing.T) {
	report, err := Compare(strings.NewReader(""), strings.NewReader(""))
	require.NoError(t, err)
	require.InDelta(t, 1.0, report.Accuracy(), 0.0001)
}
