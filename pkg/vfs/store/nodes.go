package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs"
	vfserrors "github.com/Clay-Ferguson/quanta-docs/pkg/vfs/errors"
)

// visible restricts a query to rows the caller may see: own rows, public
// rows, or everything for admin.
func visible(q *gorm.DB, caller int64) *gorm.DB {
	if caller == vfs.AdminOwnerID {
		return q
	}
	return q.Where("(owner_id = ? OR is_public = ?)", caller, true)
}

// getRow fetches the row at (root, parent, name) without visibility
// filtering. Paths are normalized by the callers.
func (tx *Tx) getRow(parent, name, root string) (*vfs.Node, error) {
	var node vfs.Node
	err := tx.db.
		Where("doc_root_key = ? AND parent_path = ? AND filename = ?", root, parent, name).
		First(&node).Error
	if err != nil {
		return nil, mapStoreError(err, vfs.JoinPath(parent, name))
	}
	return &node, nil
}

func (tx *Tx) Exists(ctx context.Context, parent, name, root string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, mapStoreError(err, "")
	}
	parent = vfs.NormalizePath(parent)
	if parent == "" && name == "" {
		return true, nil // the implicit root
	}
	var count int64
	err := tx.db.Model(&vfs.Node{}).
		Where("doc_root_key = ? AND parent_path = ? AND filename = ?", root, parent, name).
		Count(&count).Error
	if err != nil {
		return false, mapStoreError(err, vfs.JoinPath(parent, name))
	}
	return count > 0, nil
}

func (tx *Tx) GetNodeByName(ctx context.Context, parent, name, root string) (*vfs.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, mapStoreError(err, "")
	}
	return tx.getRow(vfs.NormalizePath(parent), name, root)
}

func (tx *Tx) GetNodeByUUID(ctx context.Context, id, root string) (*vfs.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, mapStoreError(err, "")
	}
	var node vfs.Node
	err := tx.db.
		Where("doc_root_key = ? AND uuid = ?", root, id).
		First(&node).Error
	if err != nil {
		return nil, mapStoreError(err, "")
	}
	return &node, nil
}

func (tx *Tx) Stat(ctx context.Context, path, root string) (*vfs.Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, mapStoreError(err, "")
	}
	path = vfs.NormalizePath(path)
	if path == "" {
		// The root has no row; it is reported as a private directory.
		return &vfs.Stats{IsDirectory: true}, nil
	}
	parent, name := vfs.SplitPath(path)
	node, err := tx.getRow(parent, name, root)
	if err != nil {
		return nil, err
	}
	return &vfs.Stats{
		IsDirectory: node.IsDirectory,
		IsPublic:    node.IsPublic,
		Birthtime:   node.CreatedTime,
		Mtime:       node.ModifiedTime,
		Size:        node.SizeBytes,
	}, nil
}

func (tx *Tx) CheckAuth(ctx context.Context, caller int64, parent, name, root string, isDir *bool, write bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, mapStoreError(err, "")
	}
	node, err := tx.getRow(vfs.NormalizePath(parent), name, root)
	if err != nil {
		if vfserrors.IsCode(err, vfserrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if isDir != nil && *isDir != node.IsDirectory {
		return false, vfserrors.NewBadArgument("directory assertion does not match node type")
	}
	switch {
	case caller == vfs.AdminOwnerID:
		return true, nil
	case caller == node.OwnerID:
		return true, nil
	case node.IsPublic && !write:
		return true, nil
	default:
		return false, nil
	}
}

func (tx *Tx) ChildrenExist(ctx context.Context, caller int64, parent, root string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, mapStoreError(err, "")
	}
	parent = vfs.NormalizePath(parent)
	var count int64
	q := tx.db.Model(&vfs.Node{}).
		Where("doc_root_key = ? AND parent_path = ?", root, parent)
	err := visible(q, caller).Count(&count).Error
	if err != nil {
		return false, mapStoreError(err, parent)
	}
	return count > 0, nil
}

func (tx *Tx) ReadDir(ctx context.Context, caller int64, parent, root string) ([]vfs.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, mapStoreError(err, "")
	}
	parent = vfs.NormalizePath(parent)
	var nodes []vfs.Node
	q := tx.db.
		Where("doc_root_key = ? AND parent_path = ?", root, parent).
		Order("ordinal ASC, filename ASC")
	if err := visible(q, caller).Find(&nodes).Error; err != nil {
		return nil, mapStoreError(err, parent)
	}
	return nodes, nil
}

func (tx *Tx) ReadDirByOwner(ctx context.Context, owner int64, parent, root string) ([]vfs.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, mapStoreError(err, "")
	}
	parent = vfs.NormalizePath(parent)
	var nodes []vfs.Node
	err := tx.db.
		Where("doc_root_key = ? AND parent_path = ? AND owner_id = ?", root, parent, owner).
		Order("ordinal ASC, filename ASC").
		Find(&nodes).Error
	if err != nil {
		return nil, mapStoreError(err, parent)
	}
	return nodes, nil
}

func (tx *Tx) Mkdir(ctx context.Context, owner int64, parent, name, root string, ordinal int32, isPublic bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", mapStoreError(err, "")
	}
	parent = vfs.NormalizePath(parent)
	if !vfs.ValidName(name) {
		return "", vfserrors.NewInvalidName(name)
	}
	if !vfs.ValidPath(parent) {
		return "", vfserrors.NewInvalidPath(parent)
	}
	now := tx.now()
	node := vfs.Node{
		UUID:         uuid.NewString(),
		OwnerID:      owner,
		RootKey:      root,
		ParentPath:   parent,
		Filename:     name,
		Ordinal:      ordinal,
		IsDirectory:  true,
		IsPublic:     isPublic,
		ContentType:  vfs.ContentTypeDirectory,
		SizeBytes:    0,
		CreatedTime:  now,
		ModifiedTime: now,
	}
	if err := tx.db.Create(&node).Error; err != nil {
		return "", mapStoreError(err, vfs.JoinPath(parent, name))
	}
	return node.UUID, nil
}

func (tx *Tx) EnsurePath(ctx context.Context, owner int64, path, root string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, mapStoreError(err, "")
	}
	path = vfs.NormalizePath(path)
	if !vfs.ValidPath(path) {
		return false, vfserrors.NewInvalidPath(path)
	}
	created := false
	parent := ""
	for _, seg := range vfs.PathSegments(path) {
		node, err := tx.getRow(parent, seg, root)
		switch {
		case err == nil:
			if !node.IsDirectory {
				return created, vfserrors.NewBadArgument("path segment is a file: " + seg)
			}
		case vfserrors.IsCode(err, vfserrors.ErrNotFound):
			max, err := tx.MaxOrdinal(ctx, parent, root)
			if err != nil {
				return created, err
			}
			if _, err := tx.Mkdir(ctx, owner, parent, seg, root, max+1, false); err != nil {
				return created, err
			}
			created = true
		default:
			return created, err
		}
		parent = vfs.JoinPath(parent, seg)
	}
	return created, nil
}
