// Package cli provides the terminal glue around pkg/conflict's interactive
// disambiguation prompt: rendering a column-aligned candidate list and
// reading the user's numeric choice from stdin.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vholub/diac/internal/utils"
)

// RenderCandidates writes a numbered, column-aligned list of buckets to w,
// one line per candidate word, padded to the widest word's display width.
// go-runewidth is used instead of len() because Czech words carry
// combining/wide diacritics whose byte or rune count does not match their
// terminal column width. Rank numbers come from utils.CreateRankList rather
// than a hand-rolled loop counter.
func RenderCandidates(w io.Writer, words []string, counts []int32) {
	widest := 0
	for _, word := range words {
		if n := runewidth.StringWidth(word); n > widest {
			widest = n
		}
	}
	ranks := utils.CreateRankList(len(words))
	for i, word := range words {
		padded := runewidth.FillRight(word, widest)
		fmt.Fprintf(w, "%2d)\t%s\t(seen %d times)\n", ranks[i], padded, counts[i])
	}
}

// PromptLine writes a short three-word context banner above a candidate
// list, matching the original engine's conflict banner.
func PromptLine(w io.Writer, prev, mid, next string) {
	fmt.Fprintln(w, "A conflict has been found:")
	fmt.Fprintln(w, strings.TrimSpace(strings.Join([]string{prev, mid, next}, " ")))
	fmt.Fprintln(w, "Select the correct option below:")
}
