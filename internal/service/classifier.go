package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/finsync-dev/finsync/internal/taxonomy"
)

// Uncategorized is the sentinel category name returned when no keyword
// matches. The resolver still persists it as a real category row.
const Uncategorized = "Uncategorized"

// Classifier derives a category name from a transaction's free-text fields
// using the keyword taxonomy. Matching is first-match-wins in taxonomy
// order, so results are deterministic for a given config.
type Classifier struct {
	// MatchWholeWord requires keywords to match on word boundaries instead
	// of as raw substrings.
	MatchWholeWord bool
}

// Classify returns the first category whose keywords match the lowercased
// concatenation of payee and description. It returns "" when both inputs are
// empty; callers leave the transaction uncategorized rather than treating
// that as an error.
//
// Two quirks are contract, not accident: a group with an unrecognized type
// stops iteration of everything after it, and a category literally named
// "Uncategorized" short-circuits to the sentinel without a keyword lookup.
func (c Classifier) Classify(payee, description string, tax taxonomy.Taxonomy) string {
	if payee == "" && description == "" {
		return ""
	}
	text := strings.ToLower(payee + " " + description)
	for _, group := range tax {
		if !taxonomy.ValidType(group.Type) {
			return Uncategorized
		}
		for _, cat := range group.Categories {
			if cat.Name == Uncategorized {
				return Uncategorized
			}
			for _, kw := range cat.Keywords {
				if c.match(text, strings.ToLower(kw)) {
					return cat.Name
				}
			}
		}
	}
	return Uncategorized
}

func (c Classifier) match(text, keyword string) bool {
	if keyword == "" {
		return false
	}
	if !c.MatchWholeWord {
		return strings.Contains(text, keyword)
	}
	return containsWord(text, keyword)
}

// containsWord reports whether keyword occurs in text delimited by word
// boundaries on both sides.
func containsWord(text, keyword string) bool {
	for i := 0; i+len(keyword) <= len(text); {
		j := strings.Index(text[i:], keyword)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(keyword)
		if boundary(text, start, false) && boundary(text, end, true) {
			return true
		}
		i = start + 1
	}
	return false
}

// boundary reports whether position pos in text is a word boundary. When
// after is true, pos is the index just past the match.
func boundary(text string, pos int, after bool) bool {
	var r rune
	if after {
		if pos >= len(text) {
			return true
		}
		r, _ = utf8.DecodeRuneInString(text[pos:])
	} else {
		if pos == 0 {
			return true
		}
		r, _ = utf8.DecodeLastRuneInString(text[:pos])
	}
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
