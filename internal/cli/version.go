package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the teams-mcp version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("teams-mcp %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
