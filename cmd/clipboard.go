package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/richedit/core/internal/clipboard"
	"github.com/richedit/core/internal/parser"
	"github.com/richedit/core/internal/token"
)

var clipNowrap bool

var clipCmd = &cobra.Command{
	Use:   "clip [text]",
	Short: "Encode parsed text as a tamtam/fragment clipboard payload and decode it back",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadedConfig(cmd)
		if err != nil {
			return err
		}
		tokens := parser.Parse(args[0], cfg.EditorOptions().Options)

		encoded, err := clipboard.EncodeFragment(tokens)
		if err != nil {
			return fmt.Errorf("failed to encode fragment: %w", err)
		}
		fmt.Fprintf(outWriter(), "MIME: %s\n", clipboard.FragmentMIME)
		fmt.Fprintln(outWriter(), encoded)

		decoded, err := clipboard.DecodeFragment(encoded)
		if err != nil {
			return fmt.Errorf("failed to decode fragment: %w", err)
		}
		fmt.Fprintln(outWriter(), "decoded plain text:")
		fmt.Fprintln(outWriter(), clipboard.SanitizePlainText(token.ConcatValues(decoded), clipNowrap))
		return nil
	},
}

func init() {
	clipCmd.Flags().BoolVar(&clipNowrap, "nowrap", false, "Collapse newlines to spaces in the plain-text view")
	rootCmd.AddCommand(clipCmd)
}
