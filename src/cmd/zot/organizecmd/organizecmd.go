package organizecmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"zotkit/src/internal/zotero"
)

// New returns the organize command: file a collection's items into per-year
// subcollections named "<collection>-<year>".
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "organize <collection>",
		Short:        "Organize a collection's items into per-year subcollections",
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
			counts := map[string]int{}
			subKeys := map[string]string{}
			for _, it := range items {
				label := "Unknown"
				if y := it.Year(); y > 0 {
					label = fmt.Sprintf("%d", y)
				}
				subName := fmt.Sprintf("%s-%s", col.Data.Name, label)
				key, err := ensureSubcollection(ctx, client, subKeys, subName, col.Key)
				if err != nil {
					return err
				}
				if err := client.AddItemToCollection(ctx, it.Key, key); err != nil {
					return err
				}
				counts[label]++
			}
			total := 0
			labels := make([]string, 0, len(counts))
			for l, n := range counts {
				total += n
				labels = append(labels, l)
			}
			sort.Strings(labels)
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Organized %d items by year:\n", total); err != nil {
				return err
			}
			for _, l := range labels {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d items\n", l, counts[l]); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return cmd
}

// ensureSubcollection finds or creates the named subcollection, caching keys
// so one run creates each year bucket at most once.
func ensureSubcollection(ctx context.Context, client *zotero.Client, cache map[string]string, name, parentKey string) (string, error) {
	if k, ok := cache[name]; ok {
		return k, nil
	}
	sub, ok, err := client.FindCollection(ctx, name)
	if err != nil {
		return "", err
	}
	if !ok {
		if err := client.CreateCollection(ctx, name, parentKey); err != nil {
			return "", err
		}
		sub, ok, err = client.FindCollection(ctx, name)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("subcollection %q not visible after create", name)
		}
	}
	cache[name] = sub.Key
	return sub.Key, nil
}
