package docs

import (
	"context"
	"sort"
	"strings"

	"github.com/Clay-Ferguson/quanta-docs/internal/logger"
	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs"
	vfserrors "github.com/Clay-Ferguson/quanta-docs/pkg/vfs/errors"
)

// TagsFileName is the distinguished tag registry file at the root of a
// document tree. Tag scans skip it like any other dot-prefixed name; its
// parsed hashtags form the already-known set new discoveries are checked
// against.
const TagsFileName = ".TAGS.md"

// discoveredHeading is the section appended by ScanAndUpdateTags.
const discoveredHeading = "## Discovered Tags"

// TagCategory groups the tags listed under one markdown heading of the tags
// file.
type TagCategory struct {
	Heading string   `json:"heading"`
	Tags    []string `json:"tags"`
}

// TagReport is the parsed view of the tags file.
type TagReport struct {
	// Categories preserves the heading structure of the tags file.
	Categories []TagCategory `json:"categories"`
	// Tags is the flat unique sorted union across all categories.
	Tags []string `json:"tags"`
}

// ScanReport summarizes one ScanAndUpdateTags run.
type ScanReport struct {
	ExistingTags int `json:"existingTags"`
	NewTags      int `json:"newTags"`
	TotalTags    int `json:"totalTags"`
}

// ExtractTags reads and parses the root .TAGS.md file. A missing tags file
// yields an empty report, not an error.
func (s *Service) ExtractTags(ctx context.Context, caller int64, root string) (*TagReport, error) {
	node, err := s.engine.ReadFile(ctx, caller, "", TagsFileName, root)
	if err != nil {
		if vfserrors.IsCode(err, vfserrors.ErrNotFound) {
			return &TagReport{Categories: []TagCategory{}, Tags: []string{}}, nil
		}
		return nil, err
	}
	return parseTagsFile(node.Text()), nil
}

// parseTagsFile splits the tags file into heading-scoped categories.
// Hashtags before the first heading fall under an unnamed category.
func parseTagsFile(content string) *TagReport {
	report := &TagReport{Categories: []TagCategory{}}

	current := TagCategory{}
	flush := func() {
		if current.Heading != "" || len(current.Tags) > 0 {
			report.Categories = append(report.Categories, current)
		}
	}

	seen := map[string]bool{}
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && isHeading(trimmed) {
			flush()
			current = TagCategory{Heading: strings.TrimSpace(strings.TrimLeft(trimmed, "#"))}
			continue
		}
		for _, tag := range vfs.ExtractHashtags(trimmed) {
			current.Tags = append(current.Tags, tag)
			seen[tag] = true
		}
	}
	flush()

	report.Tags = make([]string, 0, len(seen))
	for tag := range seen {
		report.Tags = append(report.Tags, tag)
	}
	sort.Strings(report.Tags)
	return report
}

// isHeading reports whether a line is a markdown heading rather than a
// hashtag. A heading's hash run is followed by whitespace.
func isHeading(line string) bool {
	rest := strings.TrimLeft(line, "#")
	return rest == "" || strings.HasPrefix(rest, " ") || strings.HasPrefix(rest, "\t")
}

// ScanAndUpdateTags walks the whole tree collecting hashtags from markdown
// and plain-text files, then appends any tags not already registered to the
// tags file under a "## Discovered Tags" section.
//
// Entries whose name begins with "." or "_" are skipped, except the tags
// file itself, which holds the existing set.
func (s *Service) ScanAndUpdateTags(ctx context.Context, caller int64, root string) (*ScanReport, error) {
	report := &ScanReport{}
	err := s.engine.WithTransaction(ctx, func(tx vfs.Tx) error {
		existingContent := ""
		existing := map[string]bool{}
		tagsNode, err := tx.GetNodeByName(ctx, "", TagsFileName, root)
		switch {
		case err == nil:
			existingContent = tagsNode.Text()
			for _, tag := range parseTagsFile(existingContent).Tags {
				existing[tag] = true
			}
		case vfserrors.IsCode(err, vfserrors.ErrNotFound):
			// First scan; the tags file is created below.
		default:
			return err
		}

		discovered := map[string]bool{}
		if err := collectHashtags(ctx, tx, caller, "", root, discovered); err != nil {
			return err
		}

		var novel []string
		for tag := range discovered {
			if !existing[tag] {
				novel = append(novel, tag)
			}
		}
		sort.Strings(novel)

		report.ExistingTags = len(existing)
		report.NewTags = len(novel)
		report.TotalTags = len(existing) + len(novel)

		if len(novel) == 0 {
			return nil
		}

		content := existingContent
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		content += "\n" + discoveredHeading + "\n\n" + strings.Join(novel, " ") + "\n"

		if tagsNode != nil {
			_, err = tx.WriteText(ctx, caller, "", TagsFileName, root, content, tagsNode.Ordinal, tagsNode.IsPublic)
			return err
		}
		max, err := tx.MaxOrdinal(ctx, "", root)
		if err != nil {
			return err
		}
		_, err = tx.WriteText(ctx, caller, "", TagsFileName, root, content, max+1, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("tag scan completed",
		logger.KeyDocRoot, root,
		"existing_tags", report.ExistingTags,
		"new_tags", report.NewTags,
	)
	return report, nil
}

// collectHashtags walks the subtree under parent, honoring the skip rule,
// and adds every hashtag found in text/markdown files to out.
func collectHashtags(ctx context.Context, tx vfs.Tx, caller int64, parent, root string, out map[string]bool) error {
	children, err := tx.ReadDir(ctx, caller, parent, root)
	if err != nil {
		return err
	}
	for i := range children {
		child := &children[i]
		if skipInTagScan(child.Filename) {
			continue
		}
		if child.IsDirectory {
			if err := collectHashtags(ctx, tx, caller, child.FullPath(), root, out); err != nil {
				return err
			}
			continue
		}
		if !isTaggableFile(child.Filename) {
			continue
		}
		for _, tag := range vfs.ExtractHashtags(child.Text()) {
			out[tag] = true
		}
	}
	return nil
}

// skipInTagScan applies the dot/underscore skip rule. The tags file itself
// is also skipped here: its hashtags are the existing set, not discoveries.
func skipInTagScan(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// isTaggableFile reports whether hashtags are collected from the file.
func isTaggableFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".txt")
}
