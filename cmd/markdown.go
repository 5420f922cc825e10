package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/richedit/core/internal/mdmirror"
)

var mdCmd = &cobra.Command{
	Use:   "md [markdown text]",
	Short: "Round-trip Markdown source through the MD-bearing token mirror",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadedConfig(cmd)
		if err != nil {
			return err
		}
		tokens, _ := mdmirror.MDToText(args[0], cfg.EditorOptions().Options)
		if err := printTokensJSON(tokens); err != nil {
			return err
		}
		out, _ := mdmirror.TextToMD(tokens)
		fmt.Fprintln(outWriter(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mdCmd)
}
