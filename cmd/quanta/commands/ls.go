package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Clay-Ferguson/quanta-docs/internal/cli/output"
	"github.com/Clay-Ferguson/quanta-docs/pkg/config"
	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs"
	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs/store"
)

var (
	lsRoot   string
	lsFormat string
)

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List a folder in a document tree",
	Long: `List the children of a folder directly from the database, in sibling
order. Runs as the admin principal, so every node is visible.

Examples:
  # List the root of the default document root
  quanta ls

  # List a subfolder
  quanta ls notes/projects

  # List a different document root as JSON
  quanta ls --root wiki -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

func init() {
	lsCmd.Flags().StringVar(&lsRoot, "root", "", "document root key (default: first configured root)")
	lsCmd.Flags().StringVarP(&lsFormat, "output", "o", "table", "output format (table, json, yaml)")
}

// lsTimeFormat renders modification times in local time, ls-style.
const lsTimeFormat = "Mon Jan 2 15:04:05 2006"

// nodeList renders directory entries as a table.
type nodeList []vfs.Node

// Headers implements output.TableRenderer.
func (nl nodeList) Headers() []string {
	return []string{"NAME", "TYPE", "ORDINAL", "PUBLIC", "SIZE", "MODIFIED"}
}

// Rows implements output.TableRenderer.
func (nl nodeList) Rows() [][]string {
	rows := make([][]string, 0, len(nl))
	for _, n := range nl {
		kind := "file"
		if n.IsDirectory {
			kind = "dir"
		}
		public := "no"
		if n.IsPublic {
			public = "yes"
		}
		rows = append(rows, []string{
			n.Filename,
			kind,
			strconv.Itoa(int(n.Ordinal)),
			public,
			strconv.FormatInt(n.SizeBytes, 10),
			n.ModifiedTime.Local().Format(lsTimeFormat),
		})
	}
	return rows
}

func runLs(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}
	if err := InitLogger(cfg); err != nil {
		return err
	}

	format, err := output.ParseFormat(lsFormat)
	if err != nil {
		return err
	}

	root := lsRoot
	if root == "" {
		if len(cfg.DocRoots) == 0 {
			return fmt.Errorf("no document roots configured")
		}
		root = cfg.DocRoots[0].Key
	} else if !cfg.HasDocRoot(root) {
		return fmt.Errorf("unknown document root: %s", root)
	}

	path := ""
	if len(args) == 1 {
		path = vfs.NormalizePath(args[0])
	}

	ctx := context.Background()
	engine, err := store.New(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = engine.Close() }()

	nodes, err := engine.ReadDir(ctx, vfs.AdminOwnerID, path, root)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, nodes)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, nodes)
	default:
		if len(nodes) == 0 {
			fmt.Println("(empty folder)")
			return nil
		}
		return output.PrintTable(os.Stdout, nodeList(nodes))
	}
}
