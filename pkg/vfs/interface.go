package vfs

import (
	"context"
)

// Tx is the capability set of the storage engine. Every method is one
// operation against a consistent view of the store; methods invoked through
// Engine.WithTransaction share a single transaction so that composed
// operations never expose an intermediate state.
//
// The caller argument carries the acting principal's owner id; AdminOwnerID
// bypasses visibility and ownership checks. "Access denied" and "not found"
// are deliberately indistinguishable on read paths.
type Tx interface {
	// Exists reports whether a node occupies (root, parent, name). The root
	// itself ("", "") always exists. No visibility filtering is applied;
	// this is a cheap idempotency gate, not an authorization check.
	Exists(ctx context.Context, parent, name, root string) (bool, error)

	// GetNodeByName returns the full row at (root, parent, name), or
	// ErrNotFound.
	GetNodeByName(ctx context.Context, parent, name, root string) (*Node, error)

	// GetNodeByUUID returns the row with the given surrogate id within root,
	// or ErrNotFound. Stable across renames; used by move/paste.
	GetNodeByUUID(ctx context.Context, id, root string) (*Node, error)

	// Stat returns the POSIX-shaped attributes of the node at path. The root
	// is synthesized as a private directory owned by admin.
	Stat(ctx context.Context, path, root string) (*Stats, error)

	// CheckAuth reports whether caller may act on the node. Admin and the
	// owner always may; a public node grants read-only intent. When isDir is
	// non-nil and does not match the row, the call fails with ErrBadArgument.
	CheckAuth(ctx context.Context, caller int64, parent, name, root string, isDir *bool, write bool) (bool, error)

	// ChildrenExist reports whether the directory has any child visible to
	// caller.
	ChildrenExist(ctx context.Context, caller int64, parent, root string) (bool, error)

	// ReadDir lists the children of parent visible to caller, ordered by
	// (ordinal ASC, filename ASC).
	ReadDir(ctx context.Context, caller int64, parent, root string) ([]Node, error)

	// ReadDirByOwner lists the children of parent owned by owner, same
	// ordering as ReadDir.
	ReadDirByOwner(ctx context.Context, owner int64, parent, root string) ([]Node, error)

	// Mkdir inserts a directory row and returns its uuid. Fails with
	// ErrAlreadyExists when the name slot is taken.
	Mkdir(ctx context.Context, owner int64, parent, name, root string, ordinal int32, isPublic bool) (string, error)

	// EnsurePath inserts any missing directory ancestors of path, each owned
	// by owner, private, appended at max ordinal + 1. Idempotent; reports
	// whether anything was created.
	EnsurePath(ctx context.Context, owner int64, path, root string) (bool, error)

	// WriteText upserts a text file. On insert the supplied ordinal is
	// assigned; on update content, size, content type, public flag, and
	// modified time change while ownership and ordinal are preserved.
	WriteText(ctx context.Context, owner int64, parent, name, root, content string, ordinal int32, isPublic bool) (string, error)

	// WriteBinary upserts a binary file with the same contract as WriteText.
	WriteBinary(ctx context.Context, owner int64, parent, name, root string, content []byte, ordinal int32, isPublic bool) (string, error)

	// ReadFile returns the file node including its active content column.
	// Invisible and missing nodes both fail with ErrNotFound.
	ReadFile(ctx context.Context, caller int64, parent, name, root string) (*Node, error)

	// Unlink deletes exactly one non-directory row. A missing row, a
	// directory, or a row the caller may not write all fail with ErrNotFound.
	Unlink(ctx context.Context, caller int64, parent, name, root string) error

	// Rmdir deletes the directory row and every descendant, returning the
	// total number of rows removed.
	Rmdir(ctx context.Context, caller int64, parent, name, root string) (int64, error)

	// Rm removes path, dispatching to Unlink or Rmdir. Removing a directory
	// requires recursive. With force a missing target is a no-op. Removing
	// the root is always an error.
	Rm(ctx context.Context, caller int64, path, root string, recursive, force bool) error

	// Rename moves the node to (newParent, newName), preserving its ordinal
	// within the same parent or appending in a new parent, and rewrites
	// every descendant's parent_path in one bulk update.
	Rename(ctx context.Context, caller int64, oldParent, oldName, newParent, newName, root string) error

	// SetPublic sets the node's public flag, optionally for every descendant
	// of a directory, and returns the number of rows updated.
	SetPublic(ctx context.Context, caller int64, parent, name, root string, isPublic, recursive bool) (int64, error)

	// MaxOrdinal returns the maximum ordinal among the children of parent,
	// or 0 when the directory is empty.
	MaxOrdinal(ctx context.Context, parent, root string) (int32, error)

	// SetOrdinal unconditionally updates one node's ordinal. It can violate
	// sibling uniqueness on its own and must be used inside the two-phase
	// reorder protocol.
	SetOrdinal(ctx context.Context, id, root string, ordinal int32) error

	// SwapOrdinals atomically exchanges the ordinals of two nodes without
	// passing through a visible duplicate state.
	SwapOrdinals(ctx context.Context, idA, idB, root string) error

	// ShiftOrdinalsDown adds slots to the ordinal of every child of parent
	// whose ordinal is >= insertOrdinal, freeing a contiguous band. The
	// returned mapping from old to new relative paths is always empty for
	// the database engine; callers tracking path-indexed references must
	// tolerate that shape. A missing directory is a success.
	ShiftOrdinalsDown(ctx context.Context, owner int64, parent, root string, insertOrdinal, slots int32) (map[string]string, error)

	// SearchText returns file-level hits over non-binary content within the
	// subtree rooted at scopePath, filtered by caller visibility.
	SearchText(ctx context.Context, caller int64, query, scopePath, root string, mode SearchMode, order SearchOrder) ([]SearchResult, error)
}

// Engine is the storage engine boundary. Single-call convenience methods run
// each operation in its own transaction; WithTransaction composes several
// operations into one atomic unit.
type Engine interface {
	Tx

	// WithTransaction runs fn inside one storage transaction. If fn returns
	// an error the transaction rolls back and no mutation is observable.
	WithTransaction(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying connections.
	Close() error
}
