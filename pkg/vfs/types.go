// Package vfs defines the node model, path rules, and engine contracts for
// the database-backed virtual file system. Every file and folder is one row
// in a single `nodes` table; sibling order is carried by an explicit ordinal
// column, and multiple independent trees share the table through the
// doc_root_key namespace selector.
package vfs

import (
	"time"
)

// AdminOwnerID is the principal id that bypasses all visibility and
// ownership checks.
const AdminOwnerID int64 = 0

// ContentTypeDirectory is the content type stored on directory rows.
const ContentTypeDirectory = "directory"

// TempOrdinalBase is the first value of the reserved negative range used for
// short-lived temporary ordinal assignments during two-phase reorders. No
// legal ordinal is negative, so temporaries never collide with untouched
// siblings.
const TempOrdinalBase int32 = -2147483648

// Node is one row of the nodes table: a file or a directory.
//
// Uniqueness: (doc_root_key, parent_path, filename) and
// (doc_root_key, parent_path, ordinal). The surrogate UUID is generated on
// insert and never reused.
type Node struct {
	ID      uint   `gorm:"primaryKey" json:"-"`
	UUID    string `gorm:"column:uuid;uniqueIndex:idx_nodes_uuid;size:36;not null" json:"uuid"`
	OwnerID int64  `gorm:"index:idx_nodes_owner;not null" json:"-"`

	RootKey    string `gorm:"column:doc_root_key;size:64;not null;uniqueIndex:idx_nodes_name,priority:1;uniqueIndex:idx_nodes_ordinal,priority:1;index:idx_nodes_parent,priority:1" json:"-"`
	ParentPath string `gorm:"size:1024;not null;uniqueIndex:idx_nodes_name,priority:2;uniqueIndex:idx_nodes_ordinal,priority:2;index:idx_nodes_parent,priority:2" json:"parent_path"`
	Filename   string `gorm:"size:255;not null;uniqueIndex:idx_nodes_name,priority:3" json:"filename"`
	Ordinal    int32  `gorm:"not null;uniqueIndex:idx_nodes_ordinal,priority:3" json:"ordinal"`

	IsDirectory bool `gorm:"not null" json:"is_directory"`
	IsPublic    bool `gorm:"not null" json:"is_public"`
	IsBinary    bool `gorm:"not null" json:"is_binary"`

	ContentText   *string `json:"-"`
	ContentBinary []byte  `json:"-"`
	ContentType   string  `gorm:"size:128;not null" json:"content_type"`
	SizeBytes     int64   `gorm:"not null" json:"size_bytes"`

	CreatedTime  time.Time `json:"created_time"`
	ModifiedTime time.Time `json:"modified_time"`
}

// TableName returns the table name for Node.
func (Node) TableName() string {
	return "nodes"
}

// FullPath returns the slash-joined path of the node relative to the root.
func (n *Node) FullPath() string {
	if n.ParentPath == "" {
		return n.Filename
	}
	return n.ParentPath + "/" + n.Filename
}

// Text returns the text content, or "" when the node is binary or a
// directory.
func (n *Node) Text() string {
	if n.ContentText == nil {
		return ""
	}
	return *n.ContentText
}

// Stats is the POSIX-shaped subset of node attributes reported by Stat.
type Stats struct {
	IsDirectory bool      `json:"is_directory"`
	IsPublic    bool      `json:"is_public"`
	Birthtime   time.Time `json:"birthtime"`
	Mtime       time.Time `json:"mtime"`
	Size        int64     `json:"size"`
}

// SearchMode selects how the query string matches text content.
type SearchMode string

const (
	// MatchAny matches rows containing any query token (case-insensitive).
	MatchAny SearchMode = "MATCH_ANY"
	// MatchAll matches rows containing every query token (case-insensitive).
	MatchAll SearchMode = "MATCH_ALL"
	// MatchRegex treats the whole query as one regular expression.
	MatchRegex SearchMode = "REGEX"
)

// ParseSearchMode validates a wire-level search mode string.
func ParseSearchMode(s string) (SearchMode, bool) {
	switch SearchMode(s) {
	case MatchAny, MatchAll, MatchRegex:
		return SearchMode(s), true
	}
	return "", false
}

// SearchOrder selects result ordering.
type SearchOrder string

const (
	// OrderModTime orders results by modified_time descending.
	OrderModTime SearchOrder = "MOD_TIME"
	// OrderFilename orders results by filename ascending.
	OrderFilename SearchOrder = "FILENAME"
)

// ParseSearchOrder validates a wire-level search order string.
func ParseSearchOrder(s string) (SearchOrder, bool) {
	switch SearchOrder(s) {
	case OrderModTime, OrderFilename:
		return SearchOrder(s), true
	}
	return "", false
}

// SearchResult is one file-level hit. No line numbers are reported.
type SearchResult struct {
	File         string    `json:"file"`
	SizeBytes    int64     `json:"size_bytes"`
	ModifiedTime time.Time `json:"modified_time"`
	ContentType  string    `json:"content_type"`
}
