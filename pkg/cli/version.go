package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plugboard/plugboard/pkg/engine"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the plugboard version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), engine.Agent())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
