package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/richedit/core/internal/shortcut"
)

var keysCmd = &cobra.Command{
	Use:   "keys [spec] [mods] [key]",
	Short: "Test whether an observed key combination matches a shortcut spec",
	Long: `Parses spec (e.g. "cmd+shift+z") and reports whether the comma-separated
mods (e.g. "ctrl,shift") plus key match it on the current platform.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := shortcut.Parse(args[0])
		if err != nil {
			return err
		}

		var mods []shortcut.Mod
		for _, name := range strings.Split(args[1], ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			mod, err := shortcutModByName(name)
			if err != nil {
				return err
			}
			mods = append(mods, mod)
		}

		platform := shortcut.DetectPlatform(runtime.GOOS)
		matched := shortcut.Matches(sc, platform, mods, args[2])
		fmt.Fprintln(outWriter(), matched)
		return nil
	},
}

func shortcutModByName(name string) (shortcut.Mod, error) {
	switch strings.ToLower(name) {
	case "cmd":
		return shortcut.Cmd, nil
	case "ctrl":
		return shortcut.Ctrl, nil
	case "alt":
		return shortcut.Alt, nil
	case "shift":
		return shortcut.Shift, nil
	case "meta":
		return shortcut.Meta, nil
	default:
		return 0, fmt.Errorf("unknown modifier %q", name)
	}
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
