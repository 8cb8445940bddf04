package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"zotkit/src/cmd/zot/createcmd"
	"zotkit/src/cmd/zot/exportcmd"
	"zotkit/src/cmd/zot/listcmd"
	"zotkit/src/cmd/zot/organizecmd"
	"zotkit/src/cmd/zot/testcmd"
	"zotkit/src/cmd/zot/treecmd"
	"zotkit/src/internal/zotero"
)

var rootCmd = &cobra.Command{
	Use:           "zot",
	Short:         "Personal reference-library toolkit (collections + exports)",
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env if present; real env vars still win.
		_ = godotenv.Load()
	},
}

func execute() error {
	rootCmd.AddCommand(treecmd.New())
	rootCmd.AddCommand(listcmd.New())
	rootCmd.AddCommand(createcmd.New())
	rootCmd.AddCommand(organizecmd.New())
	rootCmd.AddCommand(testcmd.New())
	rootCmd.AddCommand(exportcmd.New())
	return rootCmd.Execute()
}

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, zotero.ErrAuth) {
			_, _ = fmt.Fprintln(os.Stderr, "hint: check ZOTERO_API_KEY and ZOTERO_LIBRARY_ID (keys are managed at zotero.org/settings/keys)")
		}
		os.Exit(1)
	}
}
