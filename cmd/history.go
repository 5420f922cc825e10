package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/richedit/core/internal/editor"
)

var historyCmd = &cobra.Command{
	Use:   "history [text] [insert-pos] [insert-text]",
	Short: "Insert text into a document, then undo and redo, printing each state",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadedConfig(cmd)
		if err != nil {
			return err
		}
		var pos int
		if _, err := fmt.Sscanf(args[1], "%d", &pos); err != nil {
			return fmt.Errorf("invalid insert position %q: %w", args[1], err)
		}

		now := time.Now()
		c := editor.New(args[0], cfg.EditorOptions(), now)
		fmt.Fprintln(outWriter(), "initial:")
		if err := printTokensJSON(c.Tokens()); err != nil {
			return err
		}

		c.InsertText(pos, args[2], now)
		fmt.Fprintln(outWriter(), "after insert:")
		if err := printTokensJSON(c.Tokens()); err != nil {
			return err
		}

		c.Undo(now)
		fmt.Fprintln(outWriter(), "after undo:")
		if err := printTokensJSON(c.Tokens()); err != nil {
			return err
		}

		c.Redo(now)
		fmt.Fprintln(outWriter(), "after redo:")
		return printTokensJSON(c.Tokens())
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
