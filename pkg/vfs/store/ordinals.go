package store

import (
	"context"

	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs"
	vfserrors "github.com/Clay-Ferguson/quanta-docs/pkg/vfs/errors"
)

func (tx *Tx) MaxOrdinal(ctx context.Context, parent, root string) (int32, error) {
	if err := ctx.Err(); err != nil {
		return 0, mapStoreError(err, "")
	}
	parent = vfs.NormalizePath(parent)
	var max int32
	err := tx.db.Model(&vfs.Node{}).
		Where("doc_root_key = ? AND parent_path = ?", root, parent).
		Select("COALESCE(MAX(ordinal), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, mapStoreError(err, parent)
	}
	return max, nil
}

func (tx *Tx) SetOrdinal(ctx context.Context, id, root string, ordinal int32) error {
	if err := ctx.Err(); err != nil {
		return mapStoreError(err, "")
	}
	res := tx.db.Model(&vfs.Node{}).
		Where("doc_root_key = ? AND uuid = ?", root, id).
		Update("ordinal", ordinal)
	if res.Error != nil {
		return mapStoreError(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return vfserrors.NewNotFound(id)
	}
	return nil
}

// SwapOrdinals exchanges the ordinals of two sibling nodes. SQLite checks
// unique constraints per row, so the swap goes through a negative temporary
// that no real ordinal can collide with.
func (tx *Tx) SwapOrdinals(ctx context.Context, idA, idB, root string) error {
	if err := ctx.Err(); err != nil {
		return mapStoreError(err, "")
	}
	a, err := tx.GetNodeByUUID(ctx, idA, root)
	if err != nil {
		return err
	}
	b, err := tx.GetNodeByUUID(ctx, idB, root)
	if err != nil {
		return err
	}
	if err := tx.SetOrdinal(ctx, a.UUID, root, vfs.TempOrdinalBase); err != nil {
		return err
	}
	if err := tx.SetOrdinal(ctx, b.UUID, root, a.Ordinal); err != nil {
		return err
	}
	return tx.SetOrdinal(ctx, a.UUID, root, b.Ordinal)
}

// ShiftOrdinalsDown adds slots to the ordinal of every child of parent whose
// ordinal is >= insertOrdinal. Ordinals are temporarily mapped into negative
// space and restored in a second statement, so the sibling-ordinal unique
// index never sees a duplicate no matter what order the backend visits rows.
//
// The owner argument is accepted for interface fidelity; ordinal bands span
// all siblings regardless of ownership. The returned path mapping is always
// empty here because shifting never changes any path.
func (tx *Tx) ShiftOrdinalsDown(ctx context.Context, owner int64, parent, root string, insertOrdinal, slots int32) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, mapStoreError(err, "")
	}
	if slots <= 0 {
		return map[string]string{}, nil
	}
	parent = vfs.NormalizePath(parent)

	err := tx.db.Exec(
		"UPDATE nodes SET ordinal = -ordinal - 1 WHERE doc_root_key = ? AND parent_path = ? AND ordinal >= ?",
		root, parent, insertOrdinal,
	).Error
	if err != nil {
		return nil, mapStoreError(err, parent)
	}
	err = tx.db.Exec(
		"UPDATE nodes SET ordinal = -ordinal - 1 + ? WHERE doc_root_key = ? AND parent_path = ? AND ordinal < 0",
		slots, root, parent,
	).Error
	if err != nil {
		return nil, mapStoreError(err, parent)
	}
	return map[string]string{}, nil
}
