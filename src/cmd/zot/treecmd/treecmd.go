package treecmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"zotkit/src/internal/collections"
	"zotkit/src/internal/export"
	"zotkit/src/internal/zotero"
)

// New returns the tree command: print the collection tree, or export it as
// Markdown or JSON into the exports directory.
func New() *cobra.Command {
	var asJSON, asMarkdown bool
	var out string
	cmd := &cobra.Command{
		Use:          "tree",
		Short:        "Show the collection tree",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := zotero.Open()
			if err != nil {
				return err
			}
			cols, err := client.Collections(cmd.Context())
			if err != nil {
				return err
			}
			forest, warnings := collections.Build(cols)
			if warnings > 0 {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: broke %d parent cycle(s) while building the tree\n", warnings)
			}
			switch {
			case asJSON:
				b, err := forest.RenderJSON()
				if err != nil {
					return err
				}
				path := out
				if path == "" {
					path = filepath.Join(cfg.ExportsDir, "collections.json")
				}
				if err := export.WriteFile(path, append(b, '\n')); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
				return err
			case asMarkdown:
				path := out
				if path == "" {
					path = filepath.Join(cfg.ExportsDir, "collections.md")
				}
				if err := export.WriteFile(path, []byte(forest.RenderMarkdown())); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
				return err
			default:
				return forest.RenderText(cmd.OutOrStdout())
			}
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write the tree as JSON to the exports directory")
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "Write the tree as Markdown to the exports directory")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file path (overrides the exports directory default)")
	return cmd
}
