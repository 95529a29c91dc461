package main

import (
	"fmt"
	"github.com/spf13/cobra"
	"github.com/teamaker/teabot"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the teabot version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", name, teabot.VERSION)
		},
	}
}
