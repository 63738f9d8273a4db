package vfs

import (
	"strings"
)

// NormalizePath canonicalizes a slash-separated path.
//
// Repeated slashes collapse to one, leading "/" and "." segments are
// stripped, and any trailing slash is dropped. The result never has a leading
// or trailing slash; the empty string denotes the root. ".." is NOT resolved;
// callers reject it through ValidPath.
func NormalizePath(p string) string {
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	for {
		switch {
		case strings.HasPrefix(p, "/"):
			p = p[1:]
		case p == ".":
			p = ""
		case strings.HasPrefix(p, "./"):
			p = p[2:]
		default:
			p = strings.TrimSuffix(p, "/")
			return p
		}
	}
}

// SplitPath splits a full path into (parentPath, filename).
//
// The input is normalized first. A path with no separator has an empty
// parent; otherwise the split happens at the last slash.
func SplitPath(p string) (parent, name string) {
	p = NormalizePath(p)
	idx := strings.LastIndexByte(p, '/')
	if idx < 0 {
		return "", p
	}
	return p[:idx], p[idx+1:]
}

// JoinPath joins path parts with slashes and normalizes the result.
func JoinPath(parts ...string) string {
	return NormalizePath(strings.Join(parts, "/"))
}

// ValidName reports whether s is an admissible node name: non-empty,
// made of alphanumerics, underscore, hyphen, dot, or space. Path separators
// and control characters are rejected, as are the reserved names "." and
// "..".
func ValidName(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.' || r == ' ':
		default:
			return false
		}
	}
	return true
}

// ValidPath reports whether every segment of the normalized path passes
// ValidName. The empty path (the root) is valid.
func ValidPath(p string) bool {
	p = NormalizePath(p)
	if p == "" {
		return true
	}
	for _, seg := range strings.Split(p, "/") {
		if !ValidName(seg) {
			return false
		}
	}
	return true
}

// PathSegments returns the segments of the normalized path, or nil for the
// root.
func PathSegments(p string) []string {
	p = NormalizePath(p)
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
