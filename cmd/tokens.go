package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/richedit/core/internal/parser"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [text]",
	Short: "Parse text into a token sequence and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadedConfig(cmd)
		if err != nil {
			return err
		}
		tokens := parser.Parse(args[0], cfg.EditorOptions().Options)
		return printTokensJSON(tokens)
	},
}

func printTokensJSON(tokens any) error {
	enc := json.NewEncoder(outWriter())
	enc.SetIndent("", "  ")
	return enc.Encode(tokens)
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
