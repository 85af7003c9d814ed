package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// genitive is the Japanese "no" particle. Segments containing it are split
// with the head noun (the rightmost part) emitted first, so that for
// "おすすめの漫画" the head "漫画" precedes its modifier "おすすめ".
const genitive = "の"

// KeywordRules holds the separator and exclusion lists used for keyword
// extraction. The lists are configuration values rather than package
// constants so that language/domain tuning does not require code changes.
type KeywordRules struct {
	// Particles are function-word separators split out of the query.
	Particles []string

	// StopWords are tokens removed after splitting: generic request verbs
	// and politeness markers that carry no retrieval signal.
	StopWords []string
}

// DefaultKeywordRules returns rules tuned for Japanese queries with a small
// English exclusion set mixed in.
func DefaultKeywordRules() KeywordRules {
	return KeywordRules{
		Particles: []string{
			genitive,
			"を", "に", "は", "が", "と", "で", "へ", "も", "や",
			"から", "まで", "より",
		},
		StopWords: []string{
			"教えて", "おしえて", "教えてください", "知りたい", "しりたい",
			"ください", "下さい", "お願い", "おねがい", "です", "ます",
			"なに", "何",
			"please", "tell", "show", "me", "about", "what", "which",
		},
	}
}

// minKeywordRunes is the minimum token length; shorter tokens are dropped.
const minKeywordRunes = 2

// Extract produces the ordered keyword list for a query. It never fails;
// a query with no qualifying tokens yields an empty slice.
//
// Tokens appear in first-occurrence order with one exception: within a
// segment joined by the genitive particle the head noun comes first (see
// genitive). Duplicate tokens are kept; downstream hit-counting treats
// repeats independently.
func (r KeywordRules) Extract(query string) []string {
	segments := splitOnSeparators(query)

	for _, p := range r.Particles {
		if p == genitive {
			continue
		}
		segments = splitAll(segments, p)
	}

	var tokens []string
	for _, seg := range segments {
		if !strings.Contains(seg, genitive) {
			tokens = append(tokens, seg)
			continue
		}
		parts := strings.Split(seg, genitive)
		for i := len(parts) - 1; i >= 0; i-- {
			tokens = append(tokens, parts[i])
		}
	}

	keywords := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if utf8.RuneCountInString(tok) < minKeywordRunes {
			continue
		}
		if r.isStopWord(tok) {
			continue
		}
		keywords = append(keywords, tok)
	}
	return keywords
}

func (r KeywordRules) isStopWord(tok string) bool {
	for _, sw := range r.StopWords {
		if strings.EqualFold(tok, sw) {
			return true
		}
	}
	return false
}

// splitOnSeparators breaks the query on whitespace, punctuation, and symbol
// runes. These separate tokens in every script, independent of the
// configured particle list.
func splitOnSeparators(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

// splitAll splits every segment on sep, keeping left-to-right order and
// discarding empty pieces.
func splitAll(segments []string, sep string) []string {
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		for _, part := range strings.Split(seg, sep) {
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ContainsNonASCII reports whether the query holds at least one code point
// outside the 7-bit ASCII range. It is the heuristic proxy for "query is in
// a script where substring title matching is unreliable".
func ContainsNonASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return true
		}
	}
	return false
}
