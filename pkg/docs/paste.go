package docs

import (
	"context"

	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs"
	vfserrors "github.com/Clay-Ferguson/quanta-docs/pkg/vfs/errors"
)

// Paste modes.
const (
	PasteModeMove = "move"
	PasteModeCopy = "copy"
)

// PasteItems moves or copies items (referenced by UUID, stable across source
// renames) into destParent, placed directly after the anchor sibling or at
// the top when anchorUUID is empty. The whole paste is one transaction.
func (s *Service) PasteItems(ctx context.Context, caller int64, destParent, anchorUUID string, itemUUIDs []string, mode, root string) (int, error) {
	if mode != PasteModeMove && mode != PasteModeCopy {
		return 0, vfserrors.NewBadArgument("paste mode must be \"move\" or \"copy\"")
	}
	if len(itemUUIDs) == 0 {
		return 0, vfserrors.NewBadArgument("no items to paste")
	}
	destParent = vfs.NormalizePath(destParent)

	err := s.engine.WithTransaction(ctx, func(tx vfs.Tx) error {
		// Resolve every item up front; a single missing or unauthorized item
		// aborts the whole paste.
		items := make([]*vfs.Node, 0, len(itemUUIDs))
		for _, id := range itemUUIDs {
			node, err := tx.GetNodeByUUID(ctx, id, root)
			if err != nil {
				return err
			}
			if err := checkWrite(caller, node); err != nil {
				return err
			}
			items = append(items, node)
		}

		// Target band: directly after the anchor, or the top of the folder.
		var insertOrdinal int32
		if anchorUUID != "" {
			anchor, err := tx.GetNodeByUUID(ctx, anchorUUID, root)
			if err != nil {
				return err
			}
			if anchor.ParentPath != destParent {
				return vfserrors.NewBadArgument("anchor is not in the destination folder")
			}
			insertOrdinal = anchor.Ordinal + 1
		}

		if _, err := tx.ShiftOrdinalsDown(ctx, caller, destParent, root, insertOrdinal, int32(len(items))); err != nil {
			return err
		}

		for i, item := range items {
			slot := insertOrdinal + int32(i)
			switch {
			case item.ParentPath == destParent && mode == PasteModeMove:
				// Same-folder reorder: the shift already moved this item's
				// ordinal along with the other siblings. Park it in the
				// reserved negative range first so reassignment can never
				// collide with a not-yet-moved sibling.
				if err := tx.SetOrdinal(ctx, item.UUID, root, vfs.TempOrdinalBase+int32(i)); err != nil {
					return err
				}
			case mode == PasteModeMove:
				if err := tx.Rename(ctx, caller, item.ParentPath, item.Filename, destParent, item.Filename, root); err != nil {
					return err
				}
				if err := tx.SetOrdinal(ctx, item.UUID, root, slot); err != nil {
					return err
				}
			default: // copy
				// Copying into the item's own folder would upsert onto the
				// source row itself. The name slot is taken, same as a
				// directory copy colliding in Mkdir.
				if item.ParentPath == destParent {
					return vfserrors.NewAlreadyExists(vfs.JoinPath(destParent, item.Filename))
				}
				if err := clone(ctx, tx, caller, item, destParent, slot, root); err != nil {
					return err
				}
			}
		}

		// Second phase of the same-folder reorder: temporaries land on their
		// final slots, which the shift left free.
		if mode == PasteModeMove {
			for i, item := range items {
				if item.ParentPath != destParent {
					continue
				}
				if err := tx.SetOrdinal(ctx, item.UUID, root, insertOrdinal+int32(i)); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(itemUUIDs), nil
}

// clone copies one node, and for directories its whole visible subtree, into
// destParent at the given ordinal. Cloned rows are owned by the caller.
func clone(ctx context.Context, tx vfs.Tx, caller int64, src *vfs.Node, destParent string, ordinal int32, root string) error {
	if src.IsDirectory {
		if _, err := tx.Mkdir(ctx, caller, destParent, src.Filename, root, ordinal, src.IsPublic); err != nil {
			return err
		}
		children, err := tx.ReadDir(ctx, caller, src.FullPath(), root)
		if err != nil {
			return err
		}
		newParent := vfs.JoinPath(destParent, src.Filename)
		for i := range children {
			if err := clone(ctx, tx, caller, &children[i], newParent, children[i].Ordinal, root); err != nil {
				return err
			}
		}
		return nil
	}

	if src.IsBinary {
		_, err := tx.WriteBinary(ctx, caller, destParent, src.Filename, root, src.ContentBinary, ordinal, src.IsPublic)
		return err
	}
	_, err := tx.WriteText(ctx, caller, destParent, src.Filename, root, src.Text(), ordinal, src.IsPublic)
	return err
}
