// Package lexicon implements an immutable scored word corpus plus, on
// demand, a family of per-length prefix indexes used by the fill solver to
// prune candidate letters and detect duplicate answers.
package lexicon

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MinWordLength is the shortest word the lexicon will accept.
	MinWordLength = 3
	// MaxWordLength is the longest word the lexicon will accept.
	MaxWordLength = 22
)

var (
	// ErrInvalidWord is returned when build input contains a word outside
	// A-Z or outside [MinWordLength, MaxWordLength].
	ErrInvalidWord = errors.New("lexicon: invalid word")
	// ErrInvalidPattern is returned when a query pattern contains a
	// character that is neither A-Z nor one of the wildcard characters.
	ErrInvalidPattern = errors.New("lexicon: invalid pattern")
	// ErrUnknownLength is returned when an operation names a length for
	// which the lexicon holds no trie.
	ErrUnknownLength = errors.New("lexicon: no trie for this length")
)

// wildcards are the three characters the query language treats as
// equivalent single-letter wildcards.
const wildcards = "?- "

// Word is a single immutable lexicon entry.
type Word struct {
	Text   string
	Score  int
	Source string
}

// WordInput is the (string, score) pair external ingestion collaborators
// (pkg/wordlist) feed into Build.
type WordInput struct {
	Text   string
	Score  int
	Source string
}

// Lexicon is an ordered, immutable corpus of Words plus a family of
// per-length prefix tries built once at construction time.
type Lexicon struct {
	words []Word
	tries map[int]*trie
}

// Build consumes a slice of WordInput, uppercasing text and rejecting any
// entry whose letters aren't all A-Z or whose length falls outside
// [MinWordLength, MaxWordLength]. Duplicate text keeps only the last score
// seen (stable last-write-wins), but its original input position is used
// for tie-breaking so re-scoring a word doesn't reorder it among peers that
// were never touched.
func Build(inputs []WordInput) *Lexicon {
	order := make(map[string]int)
	byText := make(map[string]int) // text -> index into words
	var words []Word

	for _, in := range inputs {
		text := strings.ToUpper(strings.TrimSpace(in.Text))
		if !isValidWord(text) {
			continue
		}
		if idx, ok := byText[text]; ok {
			words[idx].Score = in.Score
			words[idx].Source = in.Source
			continue
		}
		order[text] = len(words)
		byText[text] = len(words)
		words = append(words, Word{Text: text, Score: in.Score, Source: in.Source})
	}

	return fromWords(words)
}

func fromWords(words []Word) *Lexicon {
	lex := &Lexicon{words: words, tries: make(map[int]*trie)}
	for i, w := range words {
		k := len(w.Text)
		t, ok := lex.tries[k]
		if !ok {
			t = newTrie(k)
			lex.tries[k] = t
		}
		t.insert(w.Text, w.Score, i)
	}
	return lex
}

func isValidWord(s string) bool {
	if len(s) < MinWordLength || len(s) > MaxWordLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// Words returns a copy of the corpus in build order; changing the returned
// slice does not affect the lexicon.
func (l *Lexicon) Words() []Word {
	out := make([]Word, len(l.words))
	copy(out, l.words)
	return out
}

// Len returns the number of words in the corpus.
func (l *Lexicon) Len() int {
	return len(l.words)
}

// Subset returns a new, independent Lexicon containing only words whose
// length falls in [n, m]. The receiver is untouched.
func (l *Lexicon) Subset(n, m int) *Lexicon {
	var words []Word
	for _, w := range l.words {
		if len(w.Text) >= n && len(w.Text) <= m {
			words = append(words, w)
		}
	}
	return fromWords(words)
}

// Clone returns a deep, independent copy of the lexicon's trie family. A
// solver mutates the clone's tries via Remove/Insert during a fill and
// discards it afterward, so the lexicon the clone was taken from is never
// observably changed by a solve.
func (l *Lexicon) Clone() *Lexicon {
	out := &Lexicon{words: l.words, tries: make(map[int]*trie, len(l.tries))}
	for k, t := range l.tries {
		out.tries[k] = t.clone()
	}
	return out
}

// Tries returns the trie family indexed by word length, covering lengths
// [MinWordLength, kmax]. When padded is true the returned slice is indexed
// directly by length (positions 0..MinWordLength-1 are nil placeholders);
// otherwise position 0 holds T[MinWordLength].
func (l *Lexicon) Tries(kmax int, padded bool) []*trie {
	if padded {
		out := make([]*trie, kmax+1)
		for k := MinWordLength; k <= kmax; k++ {
			out[k] = l.tries[k]
		}
		return out
	}
	out := make([]*trie, 0, kmax-MinWordLength+1)
	for k := MinWordLength; k <= kmax; k++ {
		out = append(out, l.tries[k])
	}
	return out
}

// HasPrefix reports whether any live length-k word starts with s.
func (l *Lexicon) HasPrefix(k int, s string) bool {
	t, ok := l.tries[k]
	if !ok {
		return false
	}
	return t.hasPrefix(s)
}

// HasExact reports whether s is itself a live length-k word.
func (l *Lexicon) HasExact(k int, s string) bool {
	t, ok := l.tries[k]
	if !ok {
		return false
	}
	return t.hasExact(s)
}

// Remove deactivates word in T[len(word)] so it can no longer satisfy
// HasPrefix/HasExact/Query until a matching Insert restores it. It is a
// no-op if the word is already absent.
func (l *Lexicon) Remove(k int, word string) error {
	t, ok := l.tries[k]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownLength, k)
	}
	t.remove(word)
	return nil
}

// Insert reactivates word in T[len(word)]. It is the exact inverse of a
// prior Remove of the same word.
func (l *Lexicon) Insert(k int, word string) error {
	t, ok := l.tries[k]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownLength, k)
	}
	t.insertWord(word)
	return nil
}

// Query returns every live word whose length equals len(pattern) and which
// matches pattern, where '?', '-', and ' ' are equivalent single-letter
// wildcards. Matching is case-insensitive on input; returned words are
// always uppercase. Results are sorted by score descending, ties broken by
// original corpus order (stable).
func (l *Lexicon) Query(pattern string) ([]Word, error) {
	norm, err := normalizePattern(pattern)
	if err != nil {
		return nil, err
	}
	t, ok := l.tries[len(norm)]
	if !ok {
		return nil, nil
	}
	results := t.match(norm, '?')
	out := make([]Word, len(results))
	for i, r := range results {
		out[i] = Word{Text: r.word, Score: r.score}
	}
	return out, nil
}

// normalizePattern uppercases letters and folds all three wildcard
// characters to '?'. It rejects any character that is neither A-Z nor a
// recognized wildcard.
func normalizePattern(pattern string) (string, error) {
	buf := make([]byte, len(pattern))
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case strings.IndexByte(wildcards, c) >= 0:
			buf[i] = '?'
		case c >= 'a' && c <= 'z':
			buf[i] = c - ('a' - 'A')
		case c >= 'A' && c <= 'Z':
			buf[i] = c
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidPattern, string(c))
		}
	}
	return string(buf), nil
}
