package store

import (
	"context"

	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs"
	vfserrors "github.com/Clay-Ferguson/quanta-docs/pkg/vfs/errors"
)

func (tx *Tx) Rmdir(ctx context.Context, caller int64, parent, name, root string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, mapStoreError(err, "")
	}
	parent = vfs.NormalizePath(parent)
	node, err := tx.getRow(parent, name, root)
	if err != nil {
		return 0, err
	}
	if !node.IsDirectory {
		return 0, vfserrors.NewNotFound(vfs.JoinPath(parent, name))
	}
	if caller != vfs.AdminOwnerID && caller != node.OwnerID {
		return 0, vfserrors.NewNotFound(vfs.JoinPath(parent, name))
	}

	full := node.FullPath()
	prefix := escapeLike(full) + "/%"

	// Descendants first, then the directory row itself.
	res := tx.db.
		Where("doc_root_key = ? AND (parent_path = ? OR parent_path LIKE ? ESCAPE '\\')", root, full, prefix).
		Delete(&vfs.Node{})
	if res.Error != nil {
		return 0, mapStoreError(res.Error, full)
	}
	removed := res.RowsAffected

	if err := tx.db.Delete(&vfs.Node{}, node.ID).Error; err != nil {
		return 0, mapStoreError(err, full)
	}
	return removed + 1, nil
}

// Rm removes path, dispatching on node type. Directories require recursive;
// with force a missing target succeeds silently.
func (tx *Tx) Rm(ctx context.Context, caller int64, path, root string, recursive, force bool) error {
	if err := ctx.Err(); err != nil {
		return mapStoreError(err, "")
	}
	path = vfs.NormalizePath(path)
	if path == "" {
		return vfserrors.NewBadArgument("cannot remove the document root")
	}
	parent, name := vfs.SplitPath(path)

	node, err := tx.getRow(parent, name, root)
	if err != nil {
		if force && vfserrors.IsCode(err, vfserrors.ErrNotFound) {
			return nil
		}
		return err
	}

	if node.IsDirectory {
		if !recursive {
			return vfserrors.NewBadArgument("cannot remove directory without recursive flag: " + path)
		}
		_, err := tx.Rmdir(ctx, caller, parent, name, root)
		return err
	}
	return tx.Unlink(ctx, caller, parent, name, root)
}
