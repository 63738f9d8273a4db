package vfs

import (
	"regexp"
	"strings"
)

var (
	quotedPhraseRe = regexp.MustCompile(`"([^"]*)"`)
	hashtagRe      = regexp.MustCompile(`#[A-Za-z0-9_][A-Za-z0-9_-]*`)
)

// TokenizeQuery splits a search query into tokens.
//
// When the query contains double quotes, the contents of each quoted phrase
// become single tokens and the remaining non-whitespace fragments become one
// token each. Otherwise the query splits on whitespace. Empty tokens are
// dropped.
func TokenizeQuery(q string) []string {
	if !strings.Contains(q, `"`) {
		return strings.Fields(q)
	}

	var tokens []string
	rest := q
	for _, m := range quotedPhraseRe.FindAllStringSubmatchIndex(q, -1) {
		phrase := q[m[2]:m[3]]
		if strings.TrimSpace(phrase) != "" {
			tokens = append(tokens, phrase)
		}
	}
	rest = quotedPhraseRe.ReplaceAllString(rest, " ")
	tokens = append(tokens, strings.Fields(rest)...)
	return tokens
}

// ExtractHashtags returns the hashtag tokens ("#name") found in text, in
// order of first appearance, without duplicates.
func ExtractHashtags(text string) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, t := range hashtagRe.FindAllString(text, -1) {
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}
	return tags
}
