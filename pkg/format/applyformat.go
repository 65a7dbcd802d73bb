package format

import "github.com/vholub/diac/pkg/variants"

// ApplyFormatting re-applies original's surface formatting over a restored
// (lowercase, unformatted) word, per spec.md §4.6:
//
//   - if original contains a digit anywhere, it is returned verbatim — the
//     restored form is never trusted for numeric tokens;
//   - each formatting character is copied straight through;
//   - each uppercase letter in original produces the uppercased form of the
//     corresponding restored letter;
//   - everything else copies the restored letter as-is.
//
// restored and original are walked in lockstep by formatting-stripped
// position: formatting characters in original don't consume a restored
// letter, since StripFormattingChars removed the same characters before
// restoration ran.
func ApplyFormatting(original, restored string) string {
	if ContainsDigit(original) {
		return original
	}

	origRunes := []rune(original)
	restRunes := []rune(restored)

	out := make([]rune, 0, len(origRunes))
	ri := 0
	for _, oc := range origRunes {
		if IsFormattingChar(oc) {
			out = append(out, oc)
			continue
		}
		if ri >= len(restRunes) {
			out = append(out, oc)
			continue
		}
		rc := restRunes[ri]
		ri++
		if variants.IsUpper(oc) {
			out = append(out, variants.ToUpperRune(rc))
		} else {
			out = append(out, rc)
		}
	}
	return string(out)
}
