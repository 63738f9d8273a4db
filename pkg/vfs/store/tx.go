package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Clay-Ferguson/quanta-docs/pkg/metrics"
	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs"
)

// Tx carries one storage transaction. All engine primitives are methods on
// Tx; Store exposes single-operation wrappers that open one transaction
// around a single primitive.
type Tx struct {
	db  *gorm.DB
	now func() time.Time
}

var _ vfs.Tx = (*Tx)(nil)

// WithTransaction executes fn within one database transaction.
//
// If fn returns an error the transaction is rolled back and no mutation is
// observable; otherwise it commits. Composed document-service operations run
// through here so that name and ordinal uniqueness are never observably
// violated between steps.
func (s *Store) WithTransaction(ctx context.Context, fn func(tx vfs.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return mapStoreError(err, "")
	}
	err := s.db.WithContext(ctx).Transaction(func(g *gorm.DB) error {
		return fn(&Tx{db: g, now: s.now})
	})
	return mapStoreError(err, "")
}

// run opens a transaction around a single primitive and records the outcome
// and latency.
func (s *Store) run(ctx context.Context, op string, fn func(tx *Tx) error) error {
	start := time.Now()
	err := s.db.WithContext(ctx).Transaction(func(g *gorm.DB) error {
		return fn(&Tx{db: g, now: s.now})
	})
	err = mapStoreError(err, "")
	metrics.ObserveEngineOp(op, err)
	metrics.ObserveEngineOpDuration(op, time.Since(start))
	return err
}

// ============================================================================
// Single-operation wrappers
// ============================================================================

func (s *Store) Exists(ctx context.Context, parent, name, root string) (bool, error) {
	var out bool
	err := s.run(ctx, "exists", func(tx *Tx) error {
		var err error
		out, err = tx.Exists(ctx, parent, name, root)
		return err
	})
	return out, err
}

func (s *Store) GetNodeByName(ctx context.Context, parent, name, root string) (*vfs.Node, error) {
	var out *vfs.Node
	err := s.run(ctx, "get_node_by_name", func(tx *Tx) error {
		var err error
		out, err = tx.GetNodeByName(ctx, parent, name, root)
		return err
	})
	return out, err
}

func (s *Store) GetNodeByUUID(ctx context.Context, id, root string) (*vfs.Node, error) {
	var out *vfs.Node
	err := s.run(ctx, "get_node_by_uuid", func(tx *Tx) error {
		var err error
		out, err = tx.GetNodeByUUID(ctx, id, root)
		return err
	})
	return out, err
}

func (s *Store) Stat(ctx context.Context, path, root string) (*vfs.Stats, error) {
	var out *vfs.Stats
	err := s.run(ctx, "stat", func(tx *Tx) error {
		var err error
		out, err = tx.Stat(ctx, path, root)
		return err
	})
	return out, err
}

func (s *Store) CheckAuth(ctx context.Context, caller int64, parent, name, root string, isDir *bool, write bool) (bool, error) {
	var out bool
	err := s.run(ctx, "check_auth", func(tx *Tx) error {
		var err error
		out, err = tx.CheckAuth(ctx, caller, parent, name, root, isDir, write)
		return err
	})
	return out, err
}

func (s *Store) ChildrenExist(ctx context.Context, caller int64, parent, root string) (bool, error) {
	var out bool
	err := s.run(ctx, "children_exist", func(tx *Tx) error {
		var err error
		out, err = tx.ChildrenExist(ctx, caller, parent, root)
		return err
	})
	return out, err
}

func (s *Store) ReadDir(ctx context.Context, caller int64, parent, root string) ([]vfs.Node, error) {
	var out []vfs.Node
	err := s.run(ctx, "readdir", func(tx *Tx) error {
		var err error
		out, err = tx.ReadDir(ctx, caller, parent, root)
		return err
	})
	return out, err
}

func (s *Store) ReadDirByOwner(ctx context.Context, owner int64, parent, root string) ([]vfs.Node, error) {
	var out []vfs.Node
	err := s.run(ctx, "readdir_by_owner", func(tx *Tx) error {
		var err error
		out, err = tx.ReadDirByOwner(ctx, owner, parent, root)
		return err
	})
	return out, err
}

func (s *Store) Mkdir(ctx context.Context, owner int64, parent, name, root string, ordinal int32, isPublic bool) (string, error) {
	var out string
	err := s.run(ctx, "mkdir", func(tx *Tx) error {
		var err error
		out, err = tx.Mkdir(ctx, owner, parent, name, root, ordinal, isPublic)
		return err
	})
	return out, err
}

func (s *Store) EnsurePath(ctx context.Context, owner int64, path, root string) (bool, error) {
	var out bool
	err := s.run(ctx, "ensure_path", func(tx *Tx) error {
		var err error
		out, err = tx.EnsurePath(ctx, owner, path, root)
		return err
	})
	return out, err
}

func (s *Store) WriteText(ctx context.Context, owner int64, parent, name, root, content string, ordinal int32, isPublic bool) (string, error) {
	var out string
	err := s.run(ctx, "write_text", func(tx *Tx) error {
		var err error
		out, err = tx.WriteText(ctx, owner, parent, name, root, content, ordinal, isPublic)
		return err
	})
	return out, err
}

func (s *Store) WriteBinary(ctx context.Context, owner int64, parent, name, root string, content []byte, ordinal int32, isPublic bool) (string, error) {
	var out string
	err := s.run(ctx, "write_binary", func(tx *Tx) error {
		var err error
		out, err = tx.WriteBinary(ctx, owner, parent, name, root, content, ordinal, isPublic)
		return err
	})
	return out, err
}

func (s *Store) ReadFile(ctx context.Context, caller int64, parent, name, root string) (*vfs.Node, error) {
	var out *vfs.Node
	err := s.run(ctx, "read_file", func(tx *Tx) error {
		var err error
		out, err = tx.ReadFile(ctx, caller, parent, name, root)
		return err
	})
	return out, err
}

func (s *Store) Unlink(ctx context.Context, caller int64, parent, name, root string) error {
	return s.run(ctx, "unlink", func(tx *Tx) error {
		return tx.Unlink(ctx, caller, parent, name, root)
	})
}

func (s *Store) Rmdir(ctx context.Context, caller int64, parent, name, root string) (int64, error) {
	var out int64
	err := s.run(ctx, "rmdir", func(tx *Tx) error {
		var err error
		out, err = tx.Rmdir(ctx, caller, parent, name, root)
		return err
	})
	return out, err
}

func (s *Store) Rm(ctx context.Context, caller int64, path, root string, recursive, force bool) error {
	return s.run(ctx, "rm", func(tx *Tx) error {
		return tx.Rm(ctx, caller, path, root, recursive, force)
	})
}

func (s *Store) Rename(ctx context.Context, caller int64, oldParent, oldName, newParent, newName, root string) error {
	return s.run(ctx, "rename", func(tx *Tx) error {
		return tx.Rename(ctx, caller, oldParent, oldName, newParent, newName, root)
	})
}

func (s *Store) SetPublic(ctx context.Context, caller int64, parent, name, root string, isPublic, recursive bool) (int64, error) {
	var out int64
	err := s.run(ctx, "set_public", func(tx *Tx) error {
		var err error
		out, err = tx.SetPublic(ctx, caller, parent, name, root, isPublic, recursive)
		return err
	})
	return out, err
}

func (s *Store) MaxOrdinal(ctx context.Context, parent, root string) (int32, error) {
	var out int32
	err := s.run(ctx, "get_max_ordinal", func(tx *Tx) error {
		var err error
		out, err = tx.MaxOrdinal(ctx, parent, root)
		return err
	})
	return out, err
}

func (s *Store) SetOrdinal(ctx context.Context, id, root string, ordinal int32) error {
	return s.run(ctx, "set_ordinal", func(tx *Tx) error {
		return tx.SetOrdinal(ctx, id, root, ordinal)
	})
}

func (s *Store) SwapOrdinals(ctx context.Context, idA, idB, root string) error {
	return s.run(ctx, "swap_ordinals", func(tx *Tx) error {
		return tx.SwapOrdinals(ctx, idA, idB, root)
	})
}

func (s *Store) ShiftOrdinalsDown(ctx context.Context, owner int64, parent, root string, insertOrdinal, slots int32) (map[string]string, error) {
	var out map[string]string
	err := s.run(ctx, "shift_ordinals_down", func(tx *Tx) error {
		var err error
		out, err = tx.ShiftOrdinalsDown(ctx, owner, parent, root, insertOrdinal, slots)
		return err
	})
	return out, err
}

func (s *Store) SearchText(ctx context.Context, caller int64, query, scopePath, root string, mode vfs.SearchMode, order vfs.SearchOrder) ([]vfs.SearchResult, error) {
	var out []vfs.SearchResult
	err := s.run(ctx, "search_text", func(tx *Tx) error {
		var err error
		out, err = tx.SearchText(ctx, caller, query, scopePath, root, mode, order)
		return err
	})
	return out, err
}
