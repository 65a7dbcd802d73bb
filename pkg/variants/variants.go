// Package variants generates accent-restoration candidates for a bare word:
// every way of substituting accented letters into the eligible positions
// of a plain-text word, kept only when the result is a real dictionary
// word (spec.md §4.4). It also carries the plain↔accented letter tables and
// case helpers the rest of the engine needs to be accent-aware.
package variants

import (
	"unicode"

	"github.com/vholub/diac/pkg/dictionary"
)

// Mapping is one plain letter and the accented letters it can expand into.
// A single source letter may have zero, one, or several accented
// counterparts (e.g. "e" → "é", "ě").
type Mapping struct {
	Plain    rune
	Accented []rune
}

// CzechTable is the plain→accented letter table for Czech. Mappings are
// data, not code, so another language's table can be substituted without
// touching the expansion algorithm below.
var CzechTable = []Mapping{
	{'a', []rune{'á'}},
	{'c', []rune{'č'}},
	{'d', []rune{'ď'}},
	{'e', []rune{'é', 'ě'}},
	{'i', []rune{'í'}},
	{'n', []rune{'ň'}},
	{'o', []rune{'ó'}},
	{'r', []rune{'ř'}},
	{'s', []rune{'š'}},
	{'t', []rune{'ť'}},
	{'u', []rune{'ú', 'ů'}},
	{'y', []rune{'ý'}},
	{'z', []rune{'ž'}},
}

var (
	plainToAccented = map[rune][]rune{}
	accentedToPlain = map[rune]rune{}
	upperToLower    = map[rune]rune{}
	lowerToUpper    = map[rune]rune{}
)

func init() {
	for _, m := range CzechTable {
		plainToAccented[m.Plain] = append([]rune(nil), m.Accented...)
		upper := upperRune(m.Plain)
		for _, a := range m.Accented {
			accentedToPlain[a] = m.Plain
			au := upperRune(a)
			upperToLower[au] = a
			lowerToUpper[a] = au
		}
		upperToLower[upper] = m.Plain
		lowerToUpper[m.Plain] = upper
	}
}

func upperRune(r rune) rune {
	// Unicode-aware: called for both the ASCII plain letters and their
	// accented counterparts (ř → Ř, ů → Ů).
	return unicode.ToUpper(r)
}

// IsEligible reports whether r is a plain letter that can carry an accent.
func IsEligible(r rune) bool {
	_, ok := plainToAccented[r]
	return ok
}

// HasEligibleLetter reports whether any rune in s is accent-eligible.
// Tokens with no eligible letter never need a model lookup — they restore
// to themselves (spec.md §4.5 step 1).
func HasEligibleLetter(s string) bool {
	for _, r := range s {
		if IsEligible(r) {
			return true
		}
	}
	return false
}

// AccentedFor returns the accented letters r can expand into, or nil if r
// is not a plain eligible letter.
func AccentedFor(r rune) []rune {
	return plainToAccented[r]
}

// ToLower lowercases s, folding the accented uppercase letters this table
// knows about in addition to the ASCII range.
func ToLower(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if lo, ok := upperToLower[r]; ok {
			runes[i] = lo
		} else if r >= 'A' && r <= 'Z' {
			runes[i] = r - 'A' + 'a'
		}
	}
	return string(runes)
}

// IsUpper reports whether r is an uppercase letter, accented or not.
func IsUpper(r rune) bool {
	_, ok := upperToLower[r]
	return ok || (r >= 'A' && r <= 'Z')
}

// ToUpperRune uppercases a single rune, accent-aware.
func ToUpperRune(r rune) rune {
	if up, ok := lowerToUpper[r]; ok {
		return up
	}
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

// Expand enumerates every accent-variant of word that is itself a known
// dictionary word, always including word unmodified. word must already be
// lowercased and stripped of formatting characters.
//
// This is a direct port of the original engine's get_word_variants
// recursion: for every accent-eligible position from left to right, try
// every accented substitute, keep it if the resulting string is a
// dictionary word, and recurse rightward with that substitution held fixed
// — the same position is also, independently, left untouched by the
// surrounding loop moving on to the next one, so every subset of positions
// and every combination of substitutions is visited exactly once.
//
// dict's patricia trie prunes branches early: once a prefix can no longer
// extend into any dictionary word, deeper recursion on that branch is
// skipped.
func Expand(dict *dictionary.Dictionary, word string) map[string]struct{} {
	result := map[string]struct{}{word: {}}
	letters := []rune(word)

	var eligible []int
	for i, r := range letters {
		if IsEligible(r) {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return result
	}

	var recurse func(startIdx int, current []rune)
	recurse = func(startIdx int, current []rune) {
		for i := startIdx; i < len(eligible); i++ {
			pos := eligible[i]
			for _, opt := range AccentedFor(current[pos]) {
				backup := current[pos]
				current[pos] = opt

				candidate := string(current)
				if dict.HasPrefix(candidate[:byteLenUpTo(candidate, pos+1)]) {
					if dict.ID(candidate) != dictionary.UnknownWord {
						result[candidate] = struct{}{}
					}
					recurse(i+1, current)
				}

				current[pos] = backup
			}
		}
	}
	recurse(0, letters)
	return result
}

// byteLenUpTo returns the byte length of the first n runes of s.
func byteLenUpTo(s string, n int) int {
	count := 0
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}
