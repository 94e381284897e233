package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version подставляется при сборке через -ldflags
var Version = "dev"

func NewCmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gigctl version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gigctl %s\n", Version)
		},
	}
}
