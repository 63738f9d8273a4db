// Package docs implements the document service: composed operations over the
// VFS engine that encode the sibling-ordinal discipline, search dispatch, and
// tag maintenance. Every composed operation runs inside one engine
// transaction so that name and ordinal uniqueness are never observably
// violated between steps.
package docs

import (
	"context"
	"log/slog"

	"github.com/Clay-Ferguson/quanta-docs/internal/logger"
	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs"
	vfserrors "github.com/Clay-Ferguson/quanta-docs/pkg/vfs/errors"
)

// Service composes engine primitives into document operations.
type Service struct {
	engine vfs.Engine
	log    *slog.Logger
}

// NewService creates a document service over the given engine.
func NewService(engine vfs.Engine) *Service {
	return &Service{
		engine: engine,
		log:    logger.With("component", "docs_service"),
	}
}

// Engine exposes the underlying engine for read-only callers (listings,
// search, direct stat).
func (s *Service) Engine() vfs.Engine {
	return s.engine
}

// checkWrite verifies the caller may mutate an existing node. A row invisible
// to the caller reports NotFound; a visible row the caller does not own
// reports Unauthorized.
func checkWrite(caller int64, node *vfs.Node) error {
	if caller == vfs.AdminOwnerID || caller == node.OwnerID {
		return nil
	}
	if node.IsPublic {
		return vfserrors.NewUnauthorized(node.FullPath())
	}
	return vfserrors.NewNotFound(node.FullPath())
}

// resolveInsertOrdinal turns an insert-after sibling name into the ordinal of
// the new node. An empty name means append at the end.
func resolveInsertOrdinal(ctx context.Context, tx vfs.Tx, parent, insertAfter, root string) (ordinal int32, shift bool, err error) {
	if insertAfter == "" {
		max, err := tx.MaxOrdinal(ctx, parent, root)
		if err != nil {
			return 0, false, err
		}
		return max + 1, false, nil
	}
	anchor, err := tx.GetNodeByName(ctx, parent, insertAfter, root)
	if err != nil {
		return 0, false, err
	}
	return anchor.Ordinal + 1, true, nil
}

// CreateFolder creates a directory in parent, positioned after the
// insertAfter sibling or appended when insertAfter is empty. Missing
// ancestors of parent are created. Returns the new folder's ordinal.
func (s *Service) CreateFolder(ctx context.Context, caller int64, parent, name, insertAfter, root string) (int32, error) {
	var ordinal int32
	err := s.engine.WithTransaction(ctx, func(tx vfs.Tx) error {
		if _, err := tx.EnsurePath(ctx, caller, parent, root); err != nil {
			return err
		}
		ord, shift, err := resolveInsertOrdinal(ctx, tx, parent, insertAfter, root)
		if err != nil {
			return err
		}
		if shift {
			if _, err := tx.ShiftOrdinalsDown(ctx, caller, parent, root, ord, 1); err != nil {
				return err
			}
		}
		if _, err := tx.Mkdir(ctx, caller, parent, name, root, ord, false); err != nil {
			return err
		}
		ordinal = ord
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("folder created",
		logger.KeyParentPath, parent,
		logger.KeyFilename, name,
		logger.KeyOrdinal, int(ordinal),
		logger.KeyDocRoot, root,
	)
	return ordinal, nil
}

// CreateFile creates an empty text file with the same positioning rules as
// CreateFolder.
func (s *Service) CreateFile(ctx context.Context, caller int64, parent, name, insertAfter, root string) (int32, error) {
	var ordinal int32
	err := s.engine.WithTransaction(ctx, func(tx vfs.Tx) error {
		if _, err := tx.EnsurePath(ctx, caller, parent, root); err != nil {
			return err
		}
		exists, err := tx.Exists(ctx, parent, name, root)
		if err != nil {
			return err
		}
		if exists {
			return vfserrors.NewAlreadyExists(vfs.JoinPath(parent, name))
		}
		ord, shift, err := resolveInsertOrdinal(ctx, tx, parent, insertAfter, root)
		if err != nil {
			return err
		}
		if shift {
			if _, err := tx.ShiftOrdinalsDown(ctx, caller, parent, root, ord, 1); err != nil {
				return err
			}
		}
		if _, err := tx.WriteText(ctx, caller, parent, name, root, "", ord, false); err != nil {
			return err
		}
		ordinal = ord
		return nil
	})
	if err != nil {
		return 0, err
	}
	return ordinal, nil
}

// SaveFile writes content to (parent, filename), dispatching to the text or
// binary column by extension. New files append at the end of the parent;
// existing files keep their ordinal, owner, and public flag.
func (s *Service) SaveFile(ctx context.Context, caller int64, parent, filename, root string, content []byte) error {
	return s.engine.WithTransaction(ctx, func(tx vfs.Tx) error {
		if _, err := tx.EnsurePath(ctx, caller, parent, root); err != nil {
			return err
		}

		ordinal := int32(0)
		isPublic := false
		existing, err := tx.GetNodeByName(ctx, parent, filename, root)
		switch {
		case err == nil:
			if err := checkWrite(caller, existing); err != nil {
				return err
			}
			ordinal = existing.Ordinal
			isPublic = existing.IsPublic
		case vfserrors.IsCode(err, vfserrors.ErrNotFound):
			max, err := tx.MaxOrdinal(ctx, parent, root)
			if err != nil {
				return err
			}
			ordinal = max + 1
		default:
			return err
		}

		if vfs.IsBinaryName(filename) {
			_, err = tx.WriteBinary(ctx, caller, parent, filename, root, content, ordinal, isPublic)
		} else {
			_, err = tx.WriteText(ctx, caller, parent, filename, root, string(content), ordinal, isPublic)
		}
		return err
	})
}

// MoveUpOrDown swaps a node with its previous or next sibling. direction is
// "up" or "down"; moving past either end fails with BadArgument.
func (s *Service) MoveUpOrDown(ctx context.Context, caller int64, parent, filename, direction, root string) error {
	if direction != "up" && direction != "down" {
		return vfserrors.NewBadArgument("direction must be \"up\" or \"down\"")
	}
	return s.engine.WithTransaction(ctx, func(tx vfs.Tx) error {
		siblings, err := tx.ReadDir(ctx, caller, parent, root)
		if err != nil {
			return err
		}
		idx := -1
		for i := range siblings {
			if siblings[i].Filename == filename {
				idx = i
				break
			}
		}
		if idx < 0 {
			return vfserrors.NewNotFound(vfs.JoinPath(parent, filename))
		}
		if err := checkWrite(caller, &siblings[idx]); err != nil {
			return err
		}
		neighbor := idx - 1
		if direction == "down" {
			neighbor = idx + 1
		}
		if neighbor < 0 || neighbor >= len(siblings) {
			return vfserrors.NewBadArgument("cannot move " + direction + " past the end of the folder")
		}
		return tx.SwapOrdinals(ctx, siblings[idx].UUID, siblings[neighbor].UUID, root)
	})
}

// RenameItem moves or renames a node by full path, rewriting descendant
// paths for directories.
func (s *Service) RenameItem(ctx context.Context, caller int64, oldPath, newPath, root string) error {
	oldParent, oldName := vfs.SplitPath(vfs.NormalizePath(oldPath))
	newParent, newName := vfs.SplitPath(vfs.NormalizePath(newPath))
	return s.engine.WithTransaction(ctx, func(tx vfs.Tx) error {
		return tx.Rename(ctx, caller, oldParent, oldName, newParent, newName, root)
	})
}

// SetPublic sets a node's public flag, recursively for directories when
// requested. Returns the number of rows updated.
func (s *Service) SetPublic(ctx context.Context, caller int64, path, root string, isPublic, recursive bool) (int64, error) {
	parent, name := vfs.SplitPath(vfs.NormalizePath(path))
	var updated int64
	err := s.engine.WithTransaction(ctx, func(tx vfs.Tx) error {
		var err error
		updated, err = tx.SetPublic(ctx, caller, parent, name, root, isPublic, recursive)
		return err
	})
	return updated, err
}

// DeleteItems removes each path, directories recursively. Missing paths are
// ignored. Returns the number of paths processed.
func (s *Service) DeleteItems(ctx context.Context, caller int64, paths []string, root string) (int, error) {
	deleted := 0
	err := s.engine.WithTransaction(ctx, func(tx vfs.Tx) error {
		for _, path := range paths {
			if err := tx.Rm(ctx, caller, path, root, true, true); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// Search runs a text search with string mode and order names as they appear
// on the wire. Unknown names fail with BadArgument.
func (s *Service) Search(ctx context.Context, caller int64, query, scopePath, root, modeName, orderName string) ([]vfs.SearchResult, error) {
	mode := vfs.MatchAny
	if modeName != "" {
		var ok bool
		if mode, ok = vfs.ParseSearchMode(modeName); !ok {
			return nil, vfserrors.NewBadArgument("unknown search mode: " + modeName)
		}
	}
	order := vfs.OrderModTime
	if orderName != "" {
		var ok bool
		if order, ok = vfs.ParseSearchOrder(orderName); !ok {
			return nil, vfserrors.NewBadArgument("unknown search order: " + orderName)
		}
	}
	return s.engine.SearchText(ctx, caller, query, scopePath, root, mode, order)
}
