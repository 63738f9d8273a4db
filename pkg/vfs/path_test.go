package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"root slash", "/", ""},
		{"dot", ".", ""},
		{"leading slash", "/a/b", "a/b"},
		{"trailing slash", "a/b/", "a/b"},
		{"double slashes", "a//b///c", "a/b/c"},
		{"dot slash prefix", "./a/b", "a/b"},
		{"nested dot slash", "././a", "a"},
		{"already clean", "a/b/c", "a/b/c"},
		{"single segment", "notes", "notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.in))
		})
	}
}

func TestSplitPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in         string
		wantParent string
		wantName   string
	}{
		{"", "", ""},
		{"file.md", "", "file.md"},
		{"a/file.md", "a", "file.md"},
		{"a/b/c", "a/b", "c"},
		{"/a/b/", "a", "b"},
	}

	for _, tt := range tests {
		parent, name := SplitPath(tt.in)
		assert.Equal(t, tt.wantParent, parent, "parent of %q", tt.in)
		assert.Equal(t, tt.wantName, name, "name of %q", tt.in)
	}
}

func TestJoinPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a/b", JoinPath("a", "b"))
	assert.Equal(t, "b", JoinPath("", "b"))
	assert.Equal(t, "a/b/c", JoinPath("a/b", "c"))
	assert.Equal(t, "", JoinPath("", ""))
	assert.Equal(t, "a/b", JoinPath("a/", "/b"))
}

func TestValidName(t *testing.T) {
	t.Parallel()

	valid := []string{"file.md", "My Notes", "a-b_c.2", ".TAGS.md", "0001_intro"}
	for _, s := range valid {
		assert.True(t, ValidName(s), "expected %q to be valid", s)
	}

	invalid := []string{"", ".", "..", "a/b", "a\\b", "tab\tname", "emoji❤", "colon:name"}
	for _, s := range invalid {
		assert.False(t, ValidName(s), "expected %q to be invalid", s)
	}
}

func TestValidPath(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidPath(""))
	assert.True(t, ValidPath("a/b/c.md"))
	assert.True(t, ValidPath("/a/b/"))
	assert.False(t, ValidPath("a/../b"))
	assert.False(t, ValidPath("a/b:c"))
}

func TestPathSegments(t *testing.T) {
	t.Parallel()

	assert.Nil(t, PathSegments(""))
	assert.Nil(t, PathSegments("/"))
	assert.Equal(t, []string{"a"}, PathSegments("a"))
	assert.Equal(t, []string{"a", "b", "c"}, PathSegments("/a/b/c/"))
}
