// heavyselect-demo serves a single form with a model-backed autocomplete
// widget over a seeded SQLite database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "heavyselect-demo",
		Short:        "Demo server for heavyselect widgets",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
