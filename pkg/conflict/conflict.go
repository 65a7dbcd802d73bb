// Package conflict implements the interactive disambiguation heuristic
// described in spec.md §4.7: when a model lookup leaves more than one
// plausible candidate, prune to the ones that matter and, if more than one
// survives, ask the user.
package conflict

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/vholub/diac/internal/apperr"
	"github.com/vholub/diac/internal/cli"
	"github.com/vholub/diac/internal/utils"
	"github.com/vholub/diac/pkg/model"
)

// ranked pairs a candidate with the count its bucket was keyed on and its
// resolved surface word, flattened out of model.Bucket for display/selection.
type ranked struct {
	count     int32
	candidate model.Candidate
	word      string
}

// Prune applies the count-weighted-mean heuristic: compute
// μ = Σ(count·|bucket|) / Σ|bucket| over every bucket, then keep buckets
// from highest count down while count > μ, capped at maxBuckets buckets
// (not candidates) displayed. This mirrors the original engine's
// lower_bound walk over its std::map<int, vector<T>> in reverse.
func Prune(buckets []model.Bucket, maxBuckets int) []model.Bucket {
	if len(buckets) == 0 {
		return nil
	}

	var weightedSum, totalCount int64
	for _, b := range buckets {
		n := int64(len(b.Candidates))
		weightedSum += int64(b.Count) * n
		totalCount += n
	}
	if totalCount == 0 {
		return nil
	}
	mean := float64(weightedSum) / float64(totalCount)

	pruned := make([]model.Bucket, 0, maxBuckets)
	for _, b := range buckets {
		if len(pruned) >= maxBuckets || float64(b.Count) <= mean {
			break
		}
		pruned = append(pruned, b)
	}
	if len(pruned) == 0 {
		// the highest bucket itself doesn't clear the mean (can happen
		// when every candidate ties); fall back to just that bucket so
		// there is always something to show or pick directly.
		pruned = append(pruned, buckets[0])
	}
	return pruned
}

// Resolver prompts the user to pick among pruned candidates. Prompts are
// serialized with a single mutex, since multiple restoration tasks may hit
// a conflict concurrently but stdin/stdout are shared (spec.md §4.7, §5).
type Resolver struct {
	mu     sync.Mutex
	in     *bufio.Reader
	out    io.Writer
	wordOf func(model.Candidate) string
}

// NewResolver builds a Resolver reading prompts from in and writing them to
// out (typically os.Stdin/os.Stdout). wordOf resolves a candidate's mid
// word id back to its surface text for display.
func NewResolver(in io.Reader, out io.Writer, wordOf func(model.Candidate) string) *Resolver {
	return &Resolver{in: bufio.NewReader(in), out: out, wordOf: wordOf}
}

// Resolve prunes acc's buckets, and if more than one candidate remains,
// prints a numbered prompt with context and reads the user's choice from
// stdin. If pruning leaves exactly one candidate, it is returned directly
// without prompting.
func (r *Resolver) Resolve(buckets []model.Bucket, maxBuckets int, context [3]string) (model.Candidate, int32, error) {
	pruned := Prune(buckets, maxBuckets)
	if len(pruned) == 0 {
		return model.Candidate{}, 0, apperr.ErrNoCandidates
	}

	// De-duplicate by resolved surface word before flattening: two accent
	// variants can land on the same dictionary word, and the displayed list
	// must stay index-for-index in lockstep with flat (the numeric choice
	// below indexes directly into it).
	var flat []ranked
	seen := utils.NewCandidateFilter()
	for _, b := range pruned {
		for _, c := range b.Candidates {
			word := r.wordOf(c)
			if !seen.ShouldInclude(word) {
				continue
			}
			flat = append(flat, ranked{count: b.Count, candidate: c, word: word})
		}
	}
	if len(flat) == 0 {
		return model.Candidate{}, 0, apperr.ErrNoCandidates
	}
	if len(flat) == 1 {
		return flat[0].candidate, flat[0].count, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cli.PromptLine(r.out, context[0], context[1], context[2])
	words := make([]string, len(flat))
	counts := make([]int32, len(flat))
	for i, rk := range flat {
		words[i] = rk.word
		counts[i] = rk.count
	}
	cli.RenderCandidates(r.out, words, counts)

	line, err := r.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return model.Candidate{}, 0, fmt.Errorf("conflict: reading selection: %w", err)
	}
	var choice int
	if _, err := fmt.Sscanf(line, "%d", &choice); err != nil {
		return model.Candidate{}, 0, fmt.Errorf("%w: could not parse %q", apperr.ErrInvalidChoice, line)
	}
	if choice < 1 || choice > len(flat) {
		return model.Candidate{}, 0, apperr.ErrInvalidChoice
	}
	return flat[choice-1].candidate, flat[choice-1].count, nil
}
