package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs"
	vfserrors "github.com/Clay-Ferguson/quanta-docs/pkg/vfs/errors"
)

// writeFile is the shared upsert behind WriteText and WriteBinary. On insert
// the supplied ordinal is assigned; on update the ordinal and ownership are
// preserved while content, size, content type, public flag, and modified
// time change.
func (tx *Tx) writeFile(ctx context.Context, owner int64, parent, name, root string, text *string, binary []byte, isBinary bool, ordinal int32, isPublic bool) (string, error) {
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

	var size int64
	if isBinary {
		size = int64(len(binary))
	} else if text != nil {
		size = int64(len(*text))
	}
	now := tx.now()

	existing, err := tx.getRow(parent, name, root)
	switch {
	case err == nil:
		if existing.IsDirectory {
			return "", vfserrors.NewBadArgument("cannot write file content to a directory")
		}
		updates := map[string]any{
			"content_text":   text,
			"content_binary": binary,
			"is_binary":      isBinary,
			"content_type":   vfs.ContentTypeFor(name),
			"size_bytes":     size,
			"is_public":      isPublic,
			"modified_time":  now,
		}
		if err := tx.db.Model(&vfs.Node{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			return "", mapStoreError(err, vfs.JoinPath(parent, name))
		}
		return existing.UUID, nil

	case vfserrors.IsCode(err, vfserrors.ErrNotFound):
		node := vfs.Node{
			UUID:          uuid.NewString(),
			OwnerID:       owner,
			RootKey:       root,
			ParentPath:    parent,
			Filename:      name,
			Ordinal:       ordinal,
			IsDirectory:   false,
			IsPublic:      isPublic,
			IsBinary:      isBinary,
			ContentText:   text,
			ContentBinary: binary,
			ContentType:   vfs.ContentTypeFor(name),
			SizeBytes:     size,
			CreatedTime:   now,
			ModifiedTime:  now,
		}
		if err := tx.db.Create(&node).Error; err != nil {
			return "", mapStoreError(err, vfs.JoinPath(parent, name))
		}
		return node.UUID, nil

	default:
		return "", err
	}
}

func (tx *Tx) WriteText(ctx context.Context, owner int64, parent, name, root, content string, ordinal int32, isPublic bool) (string, error) {
	return tx.writeFile(ctx, owner, parent, name, root, &content, nil, false, ordinal, isPublic)
}

func (tx *Tx) WriteBinary(ctx context.Context, owner int64, parent, name, root string, content []byte, ordinal int32, isPublic bool) (string, error) {
	return tx.writeFile(ctx, owner, parent, name, root, nil, content, true, ordinal, isPublic)
}

func (tx *Tx) ReadFile(ctx context.Context, caller int64, parent, name, root string) (*vfs.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, mapStoreError(err, "")
	}
	parent = vfs.NormalizePath(parent)
	node, err := tx.getRow(parent, name, root)
	if err != nil {
		return nil, err
	}
	// Visibility failures are reported as not-found so that existence does
	// not leak to unauthorized callers.
	if caller != vfs.AdminOwnerID && caller != node.OwnerID && !node.IsPublic {
		return nil, vfserrors.NewNotFound(vfs.JoinPath(parent, name))
	}
	if node.IsDirectory {
		return nil, vfserrors.NewBadArgument("cannot read content of a directory")
	}
	return node, nil
}

func (tx *Tx) Unlink(ctx context.Context, caller int64, parent, name, root string) error {
	if err := ctx.Err(); err != nil {
		return mapStoreError(err, "")
	}
	parent = vfs.NormalizePath(parent)
	node, err := tx.getRow(parent, name, root)
	if err != nil {
		return err
	}
	// A directory, or a row the caller may not write, is reported exactly
	// like a missing row.
	if node.IsDirectory {
		return vfserrors.NewNotFound(vfs.JoinPath(parent, name))
	}
	if caller != vfs.AdminOwnerID && caller != node.OwnerID {
		return vfserrors.NewNotFound(vfs.JoinPath(parent, name))
	}
	if err := tx.db.Delete(&vfs.Node{}, node.ID).Error; err != nil {
		return mapStoreError(err, vfs.JoinPath(parent, name))
	}
	return nil
}
