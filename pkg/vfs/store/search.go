package store

import (
	"context"
	"regexp"
	"strings"

	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs"
	vfserrors "github.com/Clay-Ferguson/quanta-docs/pkg/vfs/errors"
)

// SearchText scans non-binary file content within the subtree rooted at
// scopePath. Token modes compile to LIKE predicates pushed down to the
// database; regex mode streams candidate rows and matches in Go, since the
// two backends disagree on regex syntax.
func (tx *Tx) SearchText(ctx context.Context, caller int64, query, scopePath, root string, mode vfs.SearchMode, order vfs.SearchOrder) ([]vfs.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, mapStoreError(err, "")
	}
	scopePath = vfs.NormalizePath(scopePath)

	q := tx.db.Model(&vfs.Node{}).
		Where("doc_root_key = ? AND is_directory = ? AND is_binary = ?", root, false, false)
	q = visible(q, caller)
	if scopePath != "" {
		prefix := escapeLike(scopePath) + "/%"
		q = q.Where("(parent_path = ? OR parent_path LIKE ? ESCAPE '\\')", scopePath, prefix)
	}

	var re *regexp.Regexp
	switch mode {
	case vfs.MatchAny, vfs.MatchAll:
		tokens := vfs.TokenizeQuery(query)
		if len(tokens) == 0 {
			// An empty token list matches everything with content.
			q = q.Where("content_text IS NOT NULL")
			break
		}
		conds := make([]string, 0, len(tokens))
		args := make([]any, 0, len(tokens))
		for _, tok := range tokens {
			conds = append(conds, "LOWER(content_text) LIKE ? ESCAPE '\\'")
			args = append(args, "%"+escapeLike(strings.ToLower(tok))+"%")
		}
		joiner := " OR "
		if mode == vfs.MatchAll {
			joiner = " AND "
		}
		q = q.Where("("+strings.Join(conds, joiner)+")", args...)

	case vfs.MatchRegex:
		// An empty pattern matches everything with content, the same
		// semantics as an empty token list. Only a non-empty pattern is
		// compiled and applied in Go.
		if strings.TrimSpace(query) != "" {
			var err error
			re, err = regexp.Compile(query)
			if err != nil {
				return nil, vfserrors.NewBadArgument("invalid regular expression: " + err.Error())
			}
		}
		q = q.Where("content_text IS NOT NULL")

	default:
		return nil, vfserrors.NewBadArgument("unknown search mode: " + string(mode))
	}

	switch order {
	case vfs.OrderFilename:
		q = q.Order("filename ASC")
	default:
		q = q.Order("modified_time DESC")
	}

	var nodes []vfs.Node
	if err := q.Find(&nodes).Error; err != nil {
		return nil, mapStoreError(err, scopePath)
	}
	results := make([]vfs.SearchResult, 0, len(nodes))
	for _, node := range nodes {
		if re != nil && !re.MatchString(node.Text()) {
			continue
		}
		results = append(results, vfs.SearchResult{
			File:         node.FullPath(),
			SizeBytes:    node.SizeBytes,
			ModifiedTime: node.ModifiedTime,
			ContentType:  node.ContentType,
		})
	}
	return results, nil
}
