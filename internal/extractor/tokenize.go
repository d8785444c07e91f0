package extractor

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var descriptionStop = map[string]bool{
	"by":       true,
	"due":      true,
	"on":       true,
	"proj":     true,
	"project":  true,
	"priority": true,
}

// untilFieldKeyword returns the words of s up to, not including, the first field keyword.
func untilFieldKeyword(s string) string {
	return untilKeyword(s, fieldKeywords)
}

func untilKeyword(s string, stop map[string]bool) string {
	words := strings.Fields(s)
	for i, w := range words {
		if stop[keywordForm(w)] {
			return strings.Join(words[:i], " ")
		}
	}
	return strings.Join(words, " ")
}

// connectors are left dangling when a capture is cut before "project X".
var connectors = map[string]bool{
	"in":     true,
	"for":    true,
	"to":     true,
	"under":  true,
	"within": true,
	"the":    true,
}

func trimConnectors(s string) string {
	words := strings.Fields(s)
	for len(words) > 0 && connectors[strings.ToLower(words[len(words)-1])] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// keywordForm lowercases a word and drops punctuation around it, so "Due:" reads as "due".
func keywordForm(w string) string {
	return strings.ToLower(strings.TrimFunc(w, func(r rune) bool {
		return unicode.IsPunct(r) && r != '-'
	}))
}

var closingQuote = map[rune]rune{'"': '"', '\'': '\'', '`': '`', '“': '”', '‘': '’'}

// cleanPhrase trims whitespace, quotes and dangling punctuation from a capture.
// A capture that opens with a quote keeps only the quoted text.
func cleanPhrase(s string) string {
	s = strings.TrimSpace(s)
	if r, size := utf8.DecodeRuneInString(s); size > 0 {
		if closing, ok := closingQuote[r]; ok {
			if end := strings.IndexRune(s[size:], closing); end > 0 {
				return strings.TrimSpace(s[size : size+end])
			}
		}
	}
	s = strings.Trim(s, " \t\"'`“”‘’.,;:!?-")
	return strings.TrimSpace(s)
}

func startsWithDigit(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsDigit(r)
}
