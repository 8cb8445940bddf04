package listcmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"zotkit/src/internal/schema"
	"zotkit/src/internal/zotero"
)

// New returns the list command: one line per item in a collection.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list <collection>",
		Short:        "List items in a collection (by name or key)",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := zotero.Open()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			col, ok, err := client.FindCollection(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("collection %q not found", args[0])
			}
			items, err := client.Items(ctx, col.Key)
			if err != nil {
				return err
			}
			for _, it := range items {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), formatLine(it)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return cmd
}

// formatLine renders "[year] title - authors" with at most two authors.
func formatLine(it schema.Item) string {
	year := "----"
	if y := it.Year(); y > 0 {
		year = fmt.Sprintf("%d", y)
	}
	title := it.Data.Title
	if r := []rune(title); len(r) > 60 {
		title = string(r[:60]) + "..."
	}
	authors := make([]string, 0, 2)
	as := it.Authors()
	for _, a := range as {
		fam, giv := a.FamilyGiven()
		if fam == "" {
			fam = giv
		}
		if fam == "" {
			continue
		}
		authors = append(authors, fam)
		if len(authors) == 2 {
			break
		}
	}
	line := fmt.Sprintf("[%s] %s", year, title)
	if len(authors) > 0 {
		line += " - " + strings.Join(authors, ", ")
		if len(as) > 2 {
			line += " et al."
		}
	}
	return line
}
