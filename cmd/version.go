package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/richedit/core/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the richedit version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Fprintln(outWriter(), version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
