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
		Use:   "statebind",
		Short: "Reactive state binding for Go services",
		Long: `Statebind assembles plain data and derivations into live
reactive roots: deep observation of nested objects and lists,
dependency-tracked computed properties, and coalesced change
notifications.

The serve command runs the live bridge, which streams batched
flushes to websocket clients and accepts property writes back.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
