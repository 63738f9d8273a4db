package docs

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTagsFile(t *testing.T) {
	t.Parallel()

	content := "#orphan\n\n## Work\n\n#meetings #planning\n\n## Personal\n\n#recipes #planning\n"
	report := parseTagsFile(content)

	require.Len(t, report.Categories, 3)
	assert.Equal(t, "", report.Categories[0].Heading)
	assert.Equal(t, []string{"#orphan"}, report.Categories[0].Tags)
	assert.Equal(t, "Work", report.Categories[1].Heading)
	assert.Equal(t, []string{"#meetings", "#planning"}, report.Categories[1].Tags)
	assert.Equal(t, "Personal", report.Categories[2].Heading)
	assert.Equal(t, []string{"#recipes", "#planning"}, report.Categories[2].Tags)

	// The flat list is a sorted unique union.
	assert.Equal(t, []string{"#meetings", "#orphan", "#planning", "#recipes"}, report.Tags)
}

func TestParseTagsFile_HeadingVersusHashtag(t *testing.T) {
	t.Parallel()

	// "## Heading" opens a category; "#tag" on its own line is a tag.
	report := parseTagsFile("## Section\n#tag\n### Sub Section\n")
	require.Len(t, report.Categories, 2)
	assert.Equal(t, "Section", report.Categories[0].Heading)
	assert.Equal(t, []string{"#tag"}, report.Categories[0].Tags)
	assert.Equal(t, "Sub Section", report.Categories[1].Heading)

	assert.Empty(t, parseTagsFile("").Tags)
}

func TestExtractTagsMissingFile(t *testing.T) {
	svc := newTestService(t)

	report, err := svc.ExtractTags(context.Background(), 1, testRoot)
	require.NoError(t, err)
	assert.Empty(t, report.Categories)
	assert.Empty(t, report.Tags)
}

func TestExtractTagsReadsRegistry(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	content := "## Topics\n\n#golang #testing\n"
	require.NoError(t, svc.SaveFile(ctx, 1, "", TagsFileName, testRoot, []byte(content)))

	report, err := svc.ExtractTags(ctx, 1, testRoot)
	require.NoError(t, err)
	assert.Equal(t, []string{"#golang", "#testing"}, report.Tags)
	require.Len(t, report.Categories, 1)
	assert.Equal(t, "Topics", report.Categories[0].Heading)
}

func TestScanAndUpdateTagsCreatesRegistry(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveFile(ctx, 1, "", "notes.md", testRoot, []byte("about #golang and #testing")))
	_, err := svc.CreateFolder(ctx, 1, "", "sub", "", testRoot)
	require.NoError(t, err)
	require.NoError(t, svc.SaveFile(ctx, 1, "sub", "deep.txt", testRoot, []byte("#deeptag here")))

	report, err := svc.ScanAndUpdateTags(ctx, 1, testRoot)
	require.NoError(t, err)
	assert.Equal(t, 0, report.ExistingTags)
	assert.Equal(t, 3, report.NewTags)
	assert.Equal(t, 3, report.TotalTags)

	node, err := svc.Engine().ReadFile(ctx, 1, "", TagsFileName, testRoot)
	require.NoError(t, err)
	assert.Contains(t, node.Text(), "## Discovered Tags")
	assert.Contains(t, node.Text(), "#deeptag #golang #testing")
}

func TestScanAndUpdateTagsAppendsOnlyNovel(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	registry := "## Curated\n\n#golang\n"
	require.NoError(t, svc.SaveFile(ctx, 1, "", TagsFileName, testRoot, []byte(registry)))
	require.NoError(t, svc.SaveFile(ctx, 1, "", "notes.md", testRoot, []byte("#golang #newthing")))

	report, err := svc.ScanAndUpdateTags(ctx, 1, testRoot)
	require.NoError(t, err)
	assert.Equal(t, 1, report.ExistingTags)
	assert.Equal(t, 1, report.NewTags)
	assert.Equal(t, 2, report.TotalTags)

	node, err := svc.Engine().ReadFile(ctx, 1, "", TagsFileName, testRoot)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(node.Text(), registry), "curated section stays intact")
	assert.Equal(t, 1, strings.Count(node.Text(), "#newthing"))
	assert.Equal(t, 1, strings.Count(node.Text(), "#golang"))
}

func TestScanAndUpdateTagsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveFile(ctx, 1, "", "notes.md", testRoot, []byte("#once")))

	_, err := svc.ScanAndUpdateTags(ctx, 1, testRoot)
	require.NoError(t, err)
	first, err := svc.Engine().ReadFile(ctx, 1, "", TagsFileName, testRoot)
	require.NoError(t, err)

	report, err := svc.ScanAndUpdateTags(ctx, 1, testRoot)
	require.NoError(t, err)
	assert.Equal(t, 0, report.NewTags)
	assert.Equal(t, 1, report.TotalTags)

	second, err := svc.Engine().ReadFile(ctx, 1, "", TagsFileName, testRoot)
	require.NoError(t, err)
	assert.Equal(t, first.Text(), second.Text(), "a rescan with no new tags leaves the file alone")
}

func TestScanAndUpdateTagsSkipRules(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveFile(ctx, 1, "", ".hidden.md", testRoot, []byte("#skipped")))
	require.NoError(t, svc.SaveFile(ctx, 1, "", "_draft.md", testRoot, []byte("#skipped")))
	_, err := svc.CreateFolder(ctx, 1, "", "_archive", "", testRoot)
	require.NoError(t, err)
	require.NoError(t, svc.SaveFile(ctx, 1, "_archive", "old.md", testRoot, []byte("#skipped")))
	require.NoError(t, svc.SaveFile(ctx, 1, "", "data.json", testRoot, []byte("#skipped")))
	require.NoError(t, svc.SaveFile(ctx, 1, "", "real.md", testRoot, []byte("#kept")))

	report, err := svc.ScanAndUpdateTags(ctx, 1, testRoot)
	require.NoError(t, err)
	assert.Equal(t, 1, report.NewTags)

	node, err := svc.Engine().ReadFile(ctx, 1, "", TagsFileName, testRoot)
	require.NoError(t, err)
	assert.Contains(t, node.Text(), "#kept")
	assert.NotContains(t, node.Text(), "#skipped")
}

func TestScanAndUpdateTagsPreservesRegistrySlot(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveFile(ctx, 1, "", TagsFileName, testRoot, []byte("#seed")))
	tagsNode, err := svc.Engine().GetNodeByName(ctx, "", TagsFileName, testRoot)
	require.NoError(t, err)
	require.NoError(t, svc.SaveFile(ctx, 1, "", "notes.md", testRoot, []byte("#discovered")))

	_, err = svc.ScanAndUpdateTags(ctx, 1, testRoot)
	require.NoError(t, err)

	after, err := svc.Engine().GetNodeByName(ctx, "", TagsFileName, testRoot)
	require.NoError(t, err)
	assert.Equal(t, tagsNode.Ordinal, after.Ordinal)
	assert.Equal(t, tagsNode.UUID, after.UUID)
}
