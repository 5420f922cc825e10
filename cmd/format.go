package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/richedit/core/internal/parser"
	"github.com/richedit/core/internal/textalgebra"
	"github.com/richedit/core/internal/token"
)

var (
	formatFrom  int
	formatTo    int
	formatBits  []string
	formatClear bool
)

var formatBitNames = map[string]token.Format{
	"bold":       token.Bold,
	"italic":     token.Italic,
	"underline":  token.Underline,
	"strike":     token.Strike,
	"monospace":  token.Monospace,
	"heading":    token.Heading,
	"marked":     token.Marked,
	"highlight":  token.Highlight,
	"format-link": token.FormatLink,
}

var formatCmd = &cobra.Command{
	Use:   "format [text]",
	Short: "Apply a format update to a range of parsed text and print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadedConfig(cmd)
		if err != nil {
			return err
		}
		opts := cfg.EditorOptions().Options
		tokens := parser.Parse(args[0], opts)

		var bits token.Format
		for _, name := range formatBits {
			bit, ok := formatBitNames[strings.ToLower(name)]
			if !ok {
				return fmt.Errorf("unknown format %q (want one of bold, italic, underline, strike, "+
					"monospace, heading, marked, highlight, format-link)", name)
			}
			bits |= bit
		}

		update := token.FormatUpdate{Add: bits}
		if formatClear {
			update = token.FormatUpdate{Replace: true, Set: 0}
		}

		out := textalgebra.SetFormat(tokens, formatFrom, formatTo, update)
		return printTokensJSON(out)
	},
}

func init() {
	formatCmd.Flags().IntVar(&formatFrom, "from", 0, "Start code-point offset")
	formatCmd.Flags().IntVar(&formatTo, "to", 0, "End code-point offset (exclusive)")
	formatCmd.Flags().StringSliceVar(&formatBits, "set", nil, "Format bits to add (comma-separated)")
	formatCmd.Flags().BoolVar(&formatClear, "clear", false, "Clear all formats in range instead of adding --set")
	rootCmd.AddCommand(formatCmd)
}
