package main

import (
	"os"

	"gigBoard/internal/cli"

	"github.com/spf13/cobra"
)

func main() {
	command := NewGigCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewGigCtlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gigctl [command] [flags]",
		Short: "gigctl ranks and classifies gigs offline.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdSort())
	cmd.AddCommand(cli.NewCmdClassify())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
