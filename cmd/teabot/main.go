// Package main provides the teabot CLI entry point
package main

import (
	"fmt"
	"github.com/spf13/cobra"
	"os"
)

const (
	name = "teabot"

	// ExitError is the exit status of any failed command
	ExitError = 1
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   name,
		Short: "Slack bot keeping track of whose turn it is to make tea",
		Long: `teabot connects to slack with a custom integration token (TOKEN or SLACK_TOKEN),
greets people and hands out the tea rota.

Environment variables are also read from a .env file in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newRunCmd(), newVersionCmd())

	return rootCmd
}
