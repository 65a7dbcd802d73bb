// Package restore ties the dictionary, trigram model, variant expansion,
// conflict resolution, and concurrent pipeline together into the engine's
// single entry point: ProcessText (spec.md §4.5, §4.8).
package restore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/vholub/diac/internal/logger"
	"github.com/vholub/diac/internal/utils"
	"github.com/vholub/diac/pkg/conflict"
	"github.com/vholub/diac/pkg/dictionary"
	"github.com/vholub/diac/pkg/format"
	"github.com/vholub/diac/pkg/model"
	"github.com/vholub/diac/pkg/pipeline"
	"github.com/vholub/diac/pkg/variants"
)

var log = logger.New(logger.Restore)

// Options configures a Processor.
type Options struct {
	// Workers bounds how many tokens are restored concurrently. <= 0 means
	// unbounded.
	Workers int
	// MaxCandidateBuckets caps how many distinct-count groups survive
	// pruning before a conflict prompt is shown (spec.md §4.7).
	MaxCandidateBuckets int
}

// Processor restores diacritics over a text stream.
type Processor struct {
	dict      *dictionary.Dictionary
	model     *model.Model
	resolver  *conflict.Resolver // nil disables interactive prompting
	scheduler *pipeline.Scheduler
	opts      Options

	mu           sync.Mutex
	foreignWords map[string]struct{}
}

// NewProcessor builds a Processor. resolver may be nil, in which case
// conflicts are resolved automatically by taking the highest-ranked
// surviving candidate, with no prompt.
func NewProcessor(dict *dictionary.Dictionary, mdl *model.Model, resolver *conflict.Resolver, opts Options) *Processor {
	if opts.MaxCandidateBuckets <= 0 {
		opts.MaxCandidateBuckets = 4
	}
	return &Processor{
		dict:         dict,
		model:        mdl,
		resolver:     resolver,
		scheduler:    pipeline.NewScheduler(opts.Workers),
		opts:         opts,
		foreignWords: make(map[string]struct{}),
	}
}

// Stats summarizes one ProcessText run.
type Stats struct {
	WordsProcessed int
	ForeignWords   []string
}

// ProcessText reads the entirety of r, restores diacritics token by token,
// and writes the reassembled text to w. Concurrency is per-token (spec.md
// §5): one restoration task per position, each reading its (prev, mid,
// next) context from the token slice, which is not modified after
// tokenizing.
func (p *Processor) ProcessText(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return Stats{}, fmt.Errorf("restore: reading input: %w", err)
	}

	tokens, whitespace := format.Tokenize(string(buf))
	if len(tokens) == 0 {
		return Stats{}, nil
	}

	task := func(taskCtx context.Context, index int) (string, bool, error) {
		return p.restoreOne(tokens, index)
	}

	restored, foreignFlags, err := p.scheduler.Run(ctx, len(tokens), task)
	if err != nil {
		return Stats{}, fmt.Errorf("restore: %w", err)
	}
	log.Debugf("restored %d tokens", len(tokens))

	stats := Stats{WordsProcessed: len(tokens)}
	for i, isForeign := range foreignFlags {
		if isForeign {
			p.markForeign(tokens[i].Surface)
		}
	}
	stats.ForeignWords = p.ForeignWords()

	out := format.Reassemble(restored, whitespace)
	if _, err := io.Copy(w, bytes.NewReader([]byte(out))); err != nil {
		return stats, fmt.Errorf("restore: writing output: %w", err)
	}
	return stats, nil
}

// markForeign records word as having no statistical support for any accent
// variant found; guarded since many tasks may report concurrently.
func (p *Processor) markForeign(word string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.foreignWords[word] = struct{}{}
}

// ForeignWords returns every surface form flagged as potentially foreign so
// far, in no particular order.
func (p *Processor) ForeignWords() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.foreignWords))
	for w := range p.foreignWords {
		out = append(out, w)
	}
	return out
}

// restoreOne restores the token at index using tokens[index-1] and
// tokens[index+1] as context, where present. It is the per-task body
// handed to pkg/pipeline.
func (p *Processor) restoreOne(tokens []format.Token, index int) (string, bool, error) {
	surface := tokens[index].Surface

	if format.IsPureFormatting(surface) {
		return surface, false, nil
	}

	bare := variants.ToLower(format.StripFormattingChars(surface))
	if !variants.HasEligibleLetter(bare) || !utils.IsValidInput(bare) {
		return surface, false, nil
	}

	var prevSurface, nextSurface string
	if index > 0 {
		prevSurface = tokens[index-1].Surface
	}
	if index < len(tokens)-1 {
		nextSurface = tokens[index+1].Surface
	}

	midIDs := p.candidateIDs(bare)
	if len(midIDs) == 0 {
		return surface, true, nil
	}
	prevIDs := p.contextIDs(prevSurface)
	nextIDs := p.contextIDs(nextSurface)

	acc, err := p.lookupWithFallback(midIDs, prevIDs, nextIDs)
	if err != nil {
		return "", false, err
	}
	if acc.Empty() {
		return surface, true, nil
	}

	buckets := acc.Buckets()
	var chosen model.Candidate
	if p.resolver != nil {
		ctx := [3]string{placeholder(prevSurface), surface, placeholder(nextSurface)}
		chosen, _, err = p.resolver.Resolve(buckets, p.opts.MaxCandidateBuckets, ctx)
		if err != nil {
			return "", false, err
		}
	} else {
		pruned := conflict.Prune(buckets, p.opts.MaxCandidateBuckets)
		chosen = pruned[0].Candidates[0]
	}

	restoredWord, ok := p.dict.Word(chosen.Mid)
	if !ok {
		return surface, true, nil
	}
	return format.ApplyFormatting(surface, restoredWord), false, nil
}

func placeholder(s string) string {
	if s == "" {
		return "∅"
	}
	return s
}

// candidateIDs expands bare into every known accent variant's word id.
func (p *Processor) candidateIDs(bare string) []dictionary.WordID {
	var ids []dictionary.WordID
	for v := range variants.Expand(p.dict, bare) {
		if id := p.dict.ID(v); id != dictionary.UnknownWord {
			ids = append(ids, id)
		}
	}
	return ids
}

// contextIDs is like candidateIDs but treats an empty surface (no
// neighboring token) as the single no-context sentinel id.
func (p *Processor) contextIDs(surface string) []dictionary.WordID {
	if surface == "" || format.IsPureFormatting(surface) {
		return []dictionary.WordID{dictionary.UnknownWord}
	}
	bare := variants.ToLower(format.StripFormattingChars(surface))
	ids := p.candidateIDs(bare)
	if len(ids) == 0 {
		return []dictionary.WordID{dictionary.UnknownWord}
	}
	return ids
}

// lookupWithFallback tries triple mode first, then falls back to the two
// pair lookups (prev, mid) and (mid, next) — matching
// most_common_triplet's comparison of first_two_words against
// second_two_words by top count rather than preferring one side
// unconditionally — and finally to single-word mode (spec.md §4.5 step 5).
func (p *Processor) lookupWithFallback(midIDs, prevIDs, nextIDs []dictionary.WordID) (*model.Accumulator, error) {
	if hasReal(prevIDs) && hasReal(nextIDs) {
		acc, err := p.accumulate(midIDs, prevIDs, nextIDs, model.ModeTriple)
		if err != nil {
			return nil, err
		}
		if !acc.Empty() {
			return acc, nil
		}
	}

	var prevAcc, nextAcc *model.Accumulator
	if hasReal(prevIDs) {
		acc, err := p.accumulate(midIDs, prevIDs, []dictionary.WordID{dictionary.UnknownWord}, model.ModePairPrev)
		if err != nil {
			return nil, err
		}
		prevAcc = acc
	}
	if hasReal(nextIDs) {
		acc, err := p.accumulate(midIDs, []dictionary.WordID{dictionary.UnknownWord}, nextIDs, model.ModePairNext)
		if err != nil {
			return nil, err
		}
		nextAcc = acc
	}

	switch {
	case prevAcc != nil && !prevAcc.Empty() && nextAcc != nil && !nextAcc.Empty():
		prevTop, _, _ := prevAcc.Best()
		nextTop, _, _ := nextAcc.Best()
		if nextTop > prevTop {
			return nextAcc, nil
		}
		return prevAcc, nil
	case prevAcc != nil && !prevAcc.Empty():
		return prevAcc, nil
	case nextAcc != nil && !nextAcc.Empty():
		return nextAcc, nil
	}

	return p.accumulate(midIDs, []dictionary.WordID{dictionary.UnknownWord}, []dictionary.WordID{dictionary.UnknownWord}, model.ModeSingle)
}

// accumulate runs model.Lookup over the Cartesian product of midIDs,
// prevIDs and nextIDs relevant to mode, merging every result into one
// Accumulator so the ranking spans every accent-variant combination.
func (p *Processor) accumulate(midIDs, prevIDs, nextIDs []dictionary.WordID, mode model.Mode) (*model.Accumulator, error) {
	total := model.NewAccumulator()

	if mode == model.ModeSingle {
		for _, mid := range midIDs {
			sub, err := p.model.Lookup(mid, dictionary.UnknownWord, dictionary.UnknownWord, model.ModeSingle)
			if err != nil {
				return nil, err
			}
			total.Merge(sub)
		}
		return total, nil
	}

	for _, mid := range midIDs {
		for _, prev := range prevIDs {
			if (mode == model.ModeTriple || mode == model.ModePairPrev) && prev == dictionary.UnknownWord {
				continue
			}
			for _, next := range nextIDs {
				if (mode == model.ModeTriple || mode == model.ModePairNext) && next == dictionary.UnknownWord {
					continue
				}
				sub, err := p.model.Lookup(mid, prev, next, mode)
				if err != nil {
					return nil, err
				}
				total.Merge(sub)
			}
		}
	}
	return total, nil
}

func hasReal(ids []dictionary.WordID) bool {
	for _, id := range ids {
		if id != dictionary.UnknownWord {
			return true
		}
	}
	return false
}
