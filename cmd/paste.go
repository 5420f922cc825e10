package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/richedit/core/internal/editor"
	"github.com/richedit/core/internal/token"
	"github.com/richedit/core/internal/ui"
)

var pasteCmd = &cobra.Command{
	Use:   "paste [initial] [pasted]",
	Short: "Paste text into a document, replacing its whole content, and print the result",
	Long: `paste drives editor.Coordinator.Paste end to end: it loads [initial] as the
starting document, then pastes [pasted] over the full range, which forces a
full re-parse of the merged text. The coordinator's batching hook (§5
"schedule a callback at the next natural yield point") is wired to a TTY
spinner here, the same way the teacher drove a spinner around a git push:
the spinner starts before the coordinator's deferred ContentUpdated flush
runs and stops right after, so a paste that triggers a non-trivial re-parse
shows progress instead of a silent pause.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadedConfig(cmd)
		if err != nil {
			return err
		}
		now := time.Now()
		c := editor.New(args[0], cfg.EditorOptions(), now)

		sp := ui.NewSpinner("reparsing pasted content")
		c.SetSchedule(func(fn func()) {
			sp.Start()
			fn()
			sp.Stop()
		})

		c.Paste(args[1], 0, token.TotalLen(c.Tokens()), time.Now())
		return printTokensJSON(c.Tokens())
	},
}

func init() {
	rootCmd.AddCommand(pasteCmd)
}
