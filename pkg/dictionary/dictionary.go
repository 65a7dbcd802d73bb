// Package dictionary loads the word ↔ id mapping the model and variant
// generator key their lookups on.
package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/vholub/diac/internal/apperr"
	"github.com/vholub/diac/internal/logger"
)

// WordID identifies a word. Zero means "not present in the dictionary" and
// is never assigned to a real word.
type WordID int32

// UnknownWord is the zero value of WordID, returned by ID for words the
// dictionary has never seen.
const UnknownWord WordID = 0

var log = logger.New(logger.Dictionary)

// Dictionary is a bidirectional word/id map, plus a patricia trie of every
// known word used to prune accent-variant expansion (pkg/variants) before
// it descends into combinations that can never resolve to a real word.
type Dictionary struct {
	wordToID map[string]WordID
	idToWord []string // idToWord[id-1] == word for id >= 1
	trie     *patricia.Trie
}

// Load reads a dictionary file: one word per line, trailing '\r' stripped,
// line number (starting at 1) is the word's id. This is the same format
// DataPreparation's word-list loader in the original engine produces.
func Load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperr.ErrDictionaryUnreadable, path, err)
	}
	defer f.Close()

	d := &Dictionary{
		wordToID: make(map[string]WordID),
		idToWord: make([]string, 0, 1<<16),
		trie:     patricia.NewTrie(),
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var id WordID
	for scanner.Scan() {
		word := strings.TrimRight(scanner.Text(), "\r")
		id++
		d.wordToID[word] = id
		d.idToWord = append(d.idToWord, word)
		d.trie.Insert(patricia.Prefix(word), id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperr.ErrDictionaryUnreadable, path, err)
	}
	log.Debugf("loaded %d words from %s", len(d.idToWord), path)
	return d, nil
}

// ID returns the id assigned to word, or UnknownWord if it is not present.
func (d *Dictionary) ID(word string) WordID {
	if id, ok := d.wordToID[word]; ok {
		return id
	}
	return UnknownWord
}

// Word returns the word assigned to id, if any.
func (d *Dictionary) Word(id WordID) (string, bool) {
	if id <= 0 || int(id) > len(d.idToWord) {
		return "", false
	}
	return d.idToWord[id-1], true
}

// Len returns the number of known words.
func (d *Dictionary) Len() int {
	return len(d.idToWord)
}

// HasPrefix reports whether any known word starts with prefix. It is used
// by pkg/variants to prune accent-substitution branches early.
func (d *Dictionary) HasPrefix(prefix string) bool {
	return d.trie.MatchSubtree(patricia.Prefix(prefix))
}

// Validate checks that every id inserted during Load maps back to the same
// word both ways. The data files are trusted input per the engine's
// operating assumptions, so this is not run by default; cmd/diac only runs
// it behind -validate.
func (d *Dictionary) Validate() error {
	for word, id := range d.wordToID {
		got, ok := d.Word(id)
		if !ok || got != word {
			return fmt.Errorf("%w: word %q has id %d, which maps back to %q", apperr.ErrDictionaryUnreadable, word, id, got)
		}
	}
	return nil
}
