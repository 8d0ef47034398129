// Package wordlist loads external word corpora into a pkg/lexicon.Lexicon.
// It is a collaborator only: the solver never sees a raw wordlist file,
// only the Lexicon built from it.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nicklafarge/crosscosmo/pkg/lexicon"
)

// LoadBrodaWordlist loads a wordlist in Peter Broda's format: one
// `WORD;SCORE` record per line, blank lines skipped. Returns an error if
// the file is missing or a non-blank line isn't a valid two-column record.
func LoadBrodaWordlist(path string) (*lexicon.Lexicon, error) {
	return LoadDelimited(path, ';')
}

// LoadCSV loads a wordlist of `word,score` records, one per line, blank
// lines skipped.
func LoadCSV(path string) (*lexicon.Lexicon, error) {
	return LoadDelimited(path, ',')
}

// LoadDelimited loads a wordlist of two-column `word<delim>score` records.
// Whitespace around each field is trimmed; a word that isn't a valid
// lexicon entry (wrong length, non-letters) is dropped by lexicon.Build
// rather than failing the whole load, matching the lexicon ingestion rule
// that a malformed word drops its row, not the file.
func LoadDelimited(path string, delim byte) (*lexicon.Lexicon, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wordlist: open %s: %w", path, err)
	}
	defer file.Close()

	var inputs []lexicon.WordInput

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, string(delim), 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("wordlist: malformed line %d in %s: %q", lineNum, path, line)
		}

		text := strings.TrimSpace(parts[0])
		scoreStr := strings.TrimSpace(parts[1])
		score, err := strconv.Atoi(scoreStr)
		if err != nil {
			return nil, fmt.Errorf("wordlist: invalid score on line %d in %s: %w", lineNum, path, err)
		}

		inputs = append(inputs, lexicon.WordInput{Text: text, Score: score, Source: path})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("wordlist: read %s: %w", path, err)
	}

	return lexicon.Build(inputs), nil
}
