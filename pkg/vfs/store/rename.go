package store

import (
	"context"
	"strings"

	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs"
	vfserrors "github.com/Clay-Ferguson/quanta-docs/pkg/vfs/errors"
)

// Rename moves the node at (oldParent, oldName) to (newParent, newName).
// Within the same parent the ordinal is preserved; moving to a new parent
// appends at the end. Directory renames rewrite every descendant's
// parent_path in one bulk statement.
func (tx *Tx) Rename(ctx context.Context, caller int64, oldParent, oldName, newParent, newName, root string) error {
	if err := ctx.Err(); err != nil {
		return mapStoreError(err, "")
	}
	oldParent = vfs.NormalizePath(oldParent)
	newParent = vfs.NormalizePath(newParent)
	if !vfs.ValidName(newName) {
		return vfserrors.NewInvalidName(newName)
	}
	if !vfs.ValidPath(newParent) {
		return vfserrors.NewInvalidPath(newParent)
	}
	if oldParent == newParent && oldName == newName {
		return nil
	}

	node, err := tx.getRow(oldParent, oldName, root)
	if err != nil {
		return err
	}
	if caller != vfs.AdminOwnerID && caller != node.OwnerID {
		return vfserrors.NewNotFound(vfs.JoinPath(oldParent, oldName))
	}

	// A directory must not move into itself or its own subtree; the prefix
	// rewrite below would orphan the whole subtree.
	oldFull := vfs.JoinPath(oldParent, oldName)
	if node.IsDirectory && (newParent == oldFull || strings.HasPrefix(newParent, oldFull+"/")) {
		return vfserrors.NewBadArgument("cannot move a directory into its own subtree: " + oldFull)
	}

	// The target slot must be free before anything moves.
	taken, err := tx.Exists(ctx, newParent, newName, root)
	if err != nil {
		return err
	}
	if taken {
		return vfserrors.NewAlreadyExists(vfs.JoinPath(newParent, newName))
	}

	ordinal := node.Ordinal
	if newParent != oldParent {
		max, err := tx.MaxOrdinal(ctx, newParent, root)
		if err != nil {
			return err
		}
		ordinal = max + 1
	}

	updates := map[string]any{
		"parent_path":   newParent,
		"filename":      newName,
		"ordinal":       ordinal,
		"modified_time": tx.now(),
	}
	if err := tx.db.Model(&vfs.Node{}).Where("id = ?", node.ID).Updates(updates).Error; err != nil {
		return mapStoreError(err, vfs.JoinPath(newParent, newName))
	}

	if !node.IsDirectory {
		return nil
	}

	// Rewrite descendant prefixes: old full path becomes the new one, the
	// remainder of each parent_path is carried over verbatim.
	newFull := vfs.JoinPath(newParent, newName)
	prefix := escapeLike(oldFull) + "/%"
	err = tx.db.Exec(
		"UPDATE nodes SET parent_path = ? || SUBSTR(parent_path, ?) "+
			"WHERE doc_root_key = ? AND (parent_path = ? OR parent_path LIKE ? ESCAPE '\\')",
		newFull, len(oldFull)+1, root, oldFull, prefix,
	).Error
	if err != nil {
		return mapStoreError(err, newFull)
	}
	return nil
}

// SetPublic flips the public flag on the node and, when recursive, on every
// descendant. Returns the number of rows updated.
func (tx *Tx) SetPublic(ctx context.Context, caller int64, parent, name, root string, isPublic, recursive bool) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, mapStoreError(err, "")
	}
	parent = vfs.NormalizePath(parent)
	node, err := tx.getRow(parent, name, root)
	if err != nil {
		return 0, err
	}
	if caller != vfs.AdminOwnerID && caller != node.OwnerID {
		return 0, vfserrors.NewNotFound(vfs.JoinPath(parent, name))
	}

	res := tx.db.Model(&vfs.Node{}).Where("id = ?", node.ID).Update("is_public", isPublic)
	if res.Error != nil {
		return 0, mapStoreError(res.Error, node.FullPath())
	}
	updated := res.RowsAffected

	if recursive && node.IsDirectory {
		full := node.FullPath()
		prefix := escapeLike(full) + "/%"
		res := tx.db.Model(&vfs.Node{}).
			Where("doc_root_key = ? AND (parent_path = ? OR parent_path LIKE ? ESCAPE '\\')", root, full, prefix).
			Update("is_public", isPublic)
		if res.Error != nil {
			return updated, mapStoreError(res.Error, full)
		}
		updated += res.RowsAffected
	}
	return updated, nil
}
