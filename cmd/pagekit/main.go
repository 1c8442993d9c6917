package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pagekit",
		Short: "Paginated message tooling for chat bots",
		Long: `Pagekit builds and drives paginated chat messages.

Inspect how text would be split into pages, or connect to a gateway
and drive a live paginator from the terminal:

  • wrap    - preview page segmentation for a file or stdin
  • demo    - send an interactive paginator through a gateway
  • version - print build information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		wrapCmd(),
		demoCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}
