// ABOUTME: Main entry point for the mediacheck command line
// ABOUTME: Runs the web controller or submits single analyses from the terminal

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mediacheck/api/handlers"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mediacheck",
		Short: "Fake news and deepfake analysis front end",
		Long: `Mediacheck serves the analysis page and JSON API in front of a detection service,
and can submit single analyses from the command line.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newNewsCmd())
	root.AddCommand(newMediaCmd())

	return root
}

func init() {
	if version != "dev" {
		handlers.Version = version
	}
}
