package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeQuery_Whitespace(t *testing.T) {
	t.Parallel()

	assert.Empty(t, TokenizeQuery(""))
	assert.Empty(t, TokenizeQuery("   "))
	assert.Equal(t, []string{"hello"}, TokenizeQuery("hello"))
	assert.Equal(t, []string{"hello", "world"}, TokenizeQuery("  hello   world "))
}

func TestTokenizeQuery_QuotedPhrases(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"exact phrase"}, TokenizeQuery(`"exact phrase"`))
	assert.Equal(t, []string{"exact phrase", "extra"}, TokenizeQuery(`"exact phrase" extra`))
	assert.Equal(t, []string{"one", "two", "rest"}, TokenizeQuery(`"one" rest "two"`))

	// An empty quoted phrase contributes nothing.
	assert.Equal(t, []string{"word"}, TokenizeQuery(`"" word`))
}

func TestExtractHashtags(t *testing.T) {
	t.Parallel()

	tags := ExtractHashtags("notes about #golang and #testing, then #golang again")
	assert.Equal(t, []string{"#golang", "#testing"}, tags)

	assert.Empty(t, ExtractHashtags("no tags here"))
	assert.Empty(t, ExtractHashtags("# not a tag"))
	assert.Equal(t, []string{"#tag-with-dash", "#under_score"}, ExtractHashtags("#tag-with-dash #under_score"))
}
