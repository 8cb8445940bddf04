package createcmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"zotkit/src/internal/zotero"
)

// New returns the create command: add a collection, optionally nested under
// a parent resolved by name or key.
func New() *cobra.Command {
	var parent string
	cmd := &cobra.Command{
		Use:          "create <name>",
		Short:        "Create a new collection",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("collection name must not be empty")
			}
			client, _, err := zotero.Open()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			parentKey := ""
			if strings.TrimSpace(parent) != "" {
				p, ok, err := client.FindCollection(ctx, parent)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("parent collection %q not found", parent)
				}
				parentKey = p.Key
			}
			if err := client.CreateCollection(ctx, name, parentKey); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created collection: %s\n", name)
			return err
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "Parent collection name or key")
	return cmd
}
