package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/richedit/core/internal/editor"
	"github.com/richedit/core/internal/token"
)

var pickCmd = &cobra.Command{
	Use:   "pick [text]",
	Short: "Interactively pick a link token in parsed text and set its URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadedConfig(cmd)
		if err != nil {
			return err
		}
		now := time.Now()
		c := editor.New(args[0], cfg.EditorOptions(), now)

		links := c.PickLink()
		if len(links) == 0 {
			fmt.Fprintln(errWriter(), "no link tokens found")
			return printTokensJSON(c.Tokens())
		}

		options := make([]huh.Option[int], len(links))
		pos := 0
		offsets := make([]int, len(links))
		idx := 0
		for _, t := range c.Tokens() {
			if t.Kind == token.Link {
				options[idx] = huh.NewOption(fmt.Sprintf("%s -> %s", t.Value, t.LinkURL), idx)
				offsets[idx] = pos
				idx++
			}
			pos += t.Len()
		}

		var chosen int
		if err := huh.NewSelect[int]().Title("Pick a link").Options(options...).Value(&chosen).Run(); err != nil {
			return err
		}

		var newURL string
		if err := huh.NewInput().Title("New URL").Value(&newURL).Run(); err != nil {
			return err
		}

		start := offsets[chosen]
		length := links[chosen].Len()
		c.SetLink(&newURL, start, length, time.Now())
		return printTokensJSON(c.Tokens())
	},
}

func init() {
	rootCmd.AddCommand(pickCmd)
}
