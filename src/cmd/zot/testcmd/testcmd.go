package testcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"zotkit/src/internal/zotero"
)

// New returns the test command: verify credentials against the API.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "test",
		Short:        "Test the API connection",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := zotero.Open()
			if err != nil {
				return err
			}
			if err := client.KeyInfo(cmd.Context()); err != nil {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Connection failed!")
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Connection successful!")
			return err
		},
	}
	return cmd
}
