package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/richedit/core/internal/config"
)

var configOutputJSON bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage richedit configuration",
	Long:  `Manage the persisted parser/editor defaults richedit loads on every run.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration item",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		parsed, err := parseConfigValue(key, value)
		if err != nil {
			return err
		}
		config.SetConfigValue(key, parsed)
		if err := config.SaveConfig(); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		fmt.Fprintf(os.Stderr, "%s set to %v\n", key, parsed)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current configuration",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.GetConfig()
		if err != nil {
			return err
		}

		if configOutputJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(cfg)
		}

		fmt.Println("Current Configuration:")
		fmt.Printf("text_emoji: %v\n", cfg.TextEmoji)
		fmt.Printf("hashtag: %v\n", cfg.Hashtag)
		fmt.Printf("mention: %d\n", cfg.Mention)
		fmt.Printf("command: %v\n", cfg.Command)
		fmt.Printf("user_sticker: %v\n", cfg.UserSticker)
		fmt.Printf("link: %v\n", cfg.Link)
		fmt.Printf("sticky_link: %v\n", cfg.StickyLink)
		fmt.Printf("markdown: %v\n", cfg.Markdown)
		fmt.Print(wrapLabeledList("link_protocols", cfg.LinkProtocols, terminalWidth()))
		fmt.Printf("reset_format_on_newline: %v\n", cfg.ResetFormatOnNewline)
		fmt.Printf("nowrap: %v\n", cfg.Nowrap)
		fmt.Printf("compact_timeout_ms: %d\n", cfg.CompactTimeoutMS)
		fmt.Printf("max_entries: %d\n", cfg.MaxEntries)
		return nil
	},
}

// terminalWidth reports the width of stdout's controlling terminal, or
// a conservative fallback when stdout is not a TTY (e.g. piped output).
func terminalWidth() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return 80
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// wrapLabeledList renders "label: v1, v2, v3\n", wrapping the
// comma-joined values onto continuation lines indented under label
// whenever the joined form would overflow width.
func wrapLabeledList(label string, values []string, width int) string {
	prefix := label + ": "
	joined := strings.Join(values, ", ")
	if len(prefix)+len(joined) <= width || len(values) <= 1 {
		return prefix + joined + "\n"
	}

	indent := strings.Repeat(" ", len(prefix))
	var b strings.Builder
	lineLen := 0
	for i, v := range values {
		item := v
		if i < len(values)-1 {
			item += ", "
		}
		if lineLen == 0 {
			b.WriteString(prefix)
			lineLen = len(prefix)
		} else if lineLen+len(item) > width {
			b.WriteString("\n")
			b.WriteString(indent)
			lineLen = len(indent)
		}
		b.WriteString(item)
		lineLen += len(item)
	}
	b.WriteString("\n")
	return b.String()
}

// boolConfigKeys are the keys whose CLI values parse as booleans; the
// remaining known keys are either ints or left as strings.
var boolConfigKeys = map[string]bool{
	"text_emoji": true, "hashtag": true, "command": true, "user_sticker": true,
	"link": true, "sticky_link": true, "markdown": true,
	"reset_format_on_newline": true, "nowrap": true,
}

var intConfigKeys = map[string]bool{
	"mention": true, "compact_timeout_ms": true, "max_entries": true,
}

func parseConfigValue(key, value string) (any, error) {
	switch {
	case boolConfigKeys[key]:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value %q for %s: %w", value, key, err)
		}
		return b, nil
	case intConfigKeys[key]:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid integer value %q for %s: %w", value, key, err)
		}
		return n, nil
	default:
		return value, nil
	}
}

func init() {
	configGetCmd.Flags().BoolVar(&configOutputJSON, "json", false, "Output configuration in JSON format")

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}
