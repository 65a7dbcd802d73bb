// Package evalset ports the original engine's diff/char_diff accuracy
// report: comparing a restored file against a known-correct reference and
// reporting word-level accuracy. It adds no dependency to the restoration
// path itself — it exists purely to validate the engine against held-out
// corpora, from cmd/diac-eval or from tests.
package evalset

import (
	"bufio"
	"fmt"
	"io"
)

// Report summarizes a reference/candidate comparison.
type Report struct {
	TotalWords    int
	MismatchWords int
	Mismatches    []Mismatch
}

// Mismatch records one word position where candidate diverged from
// reference.
type Mismatch struct {
	Index     int
	Reference string
	Candidate string
}

// Accuracy returns the fraction of words that matched exactly.
func (r Report) Accuracy() float64 {
	if r.TotalWords == 0 {
		return 1
	}
	return float64(r.TotalWords-r.MismatchWords) / float64(r.TotalWords)
}

// Compare reads reference and candidate word-by-word (whitespace
// delimited) and reports every position where they differ. A mismatched
// word count ports the original engine's char_diff idea, one level up:
// where the original counted per-character edits, this counts per-word
// restoration errors, since that is the unit the restoration pipeline
// actually produces.
func Compare(reference, candidate io.Reader) (Report, error) {
	refWords, err := readWords(reference)
	if err != nil {
		return Report{}, fmt.Errorf("evalset: reading reference: %w", err)
	}
	candWords, err := readWords(candidate)
	if err != nil {
		return Report{}, fmt.Errorf("evalset: reading candidate: %w", err)
	}

	n := len(refWords)
	if len(candWords) < n {
		n = len(candWords)
	}

	report := Report{TotalWords: len(refWords)}
	for i := 0; i < n; i++ {
		if refWords[i] != candWords[i] {
			report.MismatchWords++
			report.Mismatches = append(report.Mismatches, Mismatch{
				Index:     i,
				Reference: refWords[i],
				Candidate: candWords[i],
			})
		}
	}
	if len(candWords) != len(refWords) {
		// a length mismatch means every word past the shorter file's end
		// counts as a miss too, since there is nothing to compare it to.
		report.MismatchWords += abs(len(refWords) - len(candWords))
	}
	return report, nil
}

func readWords(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var words []string
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	return words, scanner.Err()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
