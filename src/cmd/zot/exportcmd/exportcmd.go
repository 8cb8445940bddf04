package exportcmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"zotkit/src/internal/export"
	"zotkit/src/internal/zotero"
)

// New returns the export command: render the library (or one collection) to
// a bibliography format and write it under the exports directory.
func New() *cobra.Command {
	var collection, out string
	cmd := &cobra.Command{
		Use:   "export <bibtex|json|markdown|ris>",
		Short: "Export the library to a bibliography format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := args[0]
			if err := export.Valid(format); err != nil {
				return err
			}
			cmd.SilenceUsage = true
			client, cfg, err := zotero.Open()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			collectionKey := ""
			if strings.TrimSpace(collection) != "" {
				col, ok, err := client.FindCollection(ctx, collection)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("collection %q not found", collection)
				}
				collectionKey = col.Key
			}
			items, err := client.Items(ctx, collectionKey)
			if err != nil {
				return err
			}
			data, err := export.Render(items, format)
			if err != nil {
				return err
			}
			path := out
			if path == "" {
				path = filepath.Join(cfg.ExportsDir, export.Filename(format, collection))
			}
			if err := export.WriteFile(path, data); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "exported %d items to %s\n", len(items), path)
			return err
		},
	}
	cmd.Flags().StringVarP(&collection, "collection", "c", "", "Limit the export to one collection (name or key)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file path (overrides the exports directory default)")
	return cmd
}
