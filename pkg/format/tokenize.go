package format

import "unicode"

// Token is one unit of restoration output: Surface is the original text
// (with formatting/case/digits intact). The bare form that actually gets
// looked up is not stored here; the caller derives it from Surface by
// lowercasing and stripping formatting.
type Token struct {
	Surface string
}

// Tokenize splits input on whitespace and detaches trailing sentence
// punctuation into its own token, so that a token like "ano." becomes two
// positions: "ano" and ".". It mirrors the original engine's two-pass
// design (word pass, then a rewind for whitespace) as a single in-memory
// scan, since the whole input is already buffered; the reassembly
// invariant output[i]+whitespace[i] holds identically either way.
//
// The returned whitespace map holds, for each token index, the run of
// whitespace that followed it in the original input (empty for a token
// immediately followed by its own detached punctuation, since no
// whitespace separates them). Leading whitespace before the first token is
// not preserved, matching the original's use of stream extraction
// (operator>>), which itself skips it.
func Tokenize(input string) (tokens []Token, whitespace map[int]string) {
	raw, rawWS := scan(input)
	whitespace = make(map[int]string, len(raw))

	for i, surface := range raw {
		bare, punct := SeparatePunctuation(surface)
		pos := len(tokens)
		tokens = append(tokens, Token{Surface: bare})
		if punct == "" {
			whitespace[pos] = rawWS[i]
			continue
		}
		whitespace[pos] = ""
		pos = len(tokens)
		tokens = append(tokens, Token{Surface: punct})
		whitespace[pos] = rawWS[i]
	}
	return tokens, whitespace
}

// scan performs a single pass collecting each maximal run of non-whitespace
// characters (a raw token, punctuation still attached) and the whitespace
// run that immediately follows it.
func scan(input string) (tokens []string, whitespace []string) {
	runes := []rune(input)
	i, n := 0, len(runes)
	for i < n {
		for i < n && unicode.IsSpace(runes[i]) {
			i++
		}
		if i >= n {
			break
		}
		start := i
		for i < n && !unicode.IsSpace(runes[i]) {
			i++
		}
		tokens = append(tokens, string(runes[start:i]))

		wsStart := i
		for i < n && unicode.IsSpace(runes[i]) {
			i++
		}
		whitespace = append(whitespace, string(runes[wsStart:i]))
	}
	return tokens, whitespace
}

// Reassemble concatenates restored words with their recorded whitespace,
// in position order.
func Reassemble(restored []string, whitespace map[int]string) string {
	out := make([]byte, 0, len(restored)*8)
	for i, w := range restored {
		out = append(out, w...)
		out = append(out, whitespace[i]...)
	}
	return string(out)
}
