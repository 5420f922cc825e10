package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/richedit/core/internal/config"
	"github.com/richedit/core/internal/parser"
	"github.com/richedit/core/internal/version"
)

var (
	cfgFile   string
	debug     bool
	configErr error
	appCtx    context.Context = context.Background()

	textEmoji            bool
	hashtag              bool
	mentionMode          string
	command              bool
	userSticker          bool
	link                 bool
	stickyLink           bool
	markdown             bool
	resetFormatOnNewline bool
	nowrap               bool

	rootCmd = &cobra.Command{
		Use:   "richedit",
		Short: "richedit - rich-text message editor core",
		Long: `richedit exercises the pure text-model engine behind a rich-text
message editor: the tokenizing parser, the formatted-string algebra, the
Markdown mirror, edit history, and the editor coordinator that ties them
together.`,
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// RootCmd returns the root command for doc generation.
func RootCmd() *cobra.Command {
	return rootCmd
}

// SetContext stores ctx as the application context. No command reads it:
// the interactive huh prompts behind "pick" run without a context.
func SetContext(ctx context.Context) {
	appCtx = ctx
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "Config file (default: $XDG_CONFIG_HOME/richedit/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")

	rootCmd.PersistentFlags().BoolVar(&textEmoji, "text-emoji", false, "Recognize text emoji aliases such as :)")
	rootCmd.PersistentFlags().BoolVar(&hashtag, "hashtag", false, "Recognize #hashtag tokens")
	rootCmd.PersistentFlags().StringVar(&mentionMode, "mention", "off", "Mention recognition: off|on|strict")
	rootCmd.PersistentFlags().BoolVar(&command, "command", false, "Recognize /command tokens")
	rootCmd.PersistentFlags().BoolVar(&userSticker, "user-sticker", false, "Recognize user sticker tokens")
	rootCmd.PersistentFlags().BoolVar(&link, "link", false, "Recognize literal and auto-detected links")
	rootCmd.PersistentFlags().BoolVar(&stickyLink, "sticky-link", false, "Treat link boundaries as sticky")
	rootCmd.PersistentFlags().BoolVar(&markdown, "markdown", false, "Parse/render through the Markdown mirror")
	rootCmd.PersistentFlags().BoolVar(&resetFormatOnNewline, "reset-format-on-newline", false,
		"Clear sticky format at the start of a new line")
	rootCmd.PersistentFlags().BoolVar(&nowrap, "nowrap", false, "Collapse inserted newlines to a space")
}

func initConfig() {
	configErr = config.InitConfig(cfgFile)
}

// loadedConfig merges the persisted configuration with any flags the
// caller passed on this invocation, flags taking priority.
func loadedConfig(cmd *cobra.Command) (*config.Config, error) {
	if configErr != nil {
		return nil, fmt.Errorf("configuration error: %w", configErr)
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("text-emoji") {
		cfg.TextEmoji = textEmoji
	}
	if flags.Changed("hashtag") {
		cfg.Hashtag = hashtag
	}
	if flags.Changed("mention") {
		mode, err := parseMentionMode(mentionMode)
		if err != nil {
			return nil, err
		}
		cfg.Mention = int(mode)
	}
	if flags.Changed("command") {
		cfg.Command = command
	}
	if flags.Changed("user-sticker") {
		cfg.UserSticker = userSticker
	}
	if flags.Changed("link") {
		cfg.Link = link
	}
	if flags.Changed("sticky-link") {
		cfg.StickyLink = stickyLink
	}
	if flags.Changed("markdown") {
		cfg.Markdown = markdown
	}
	if flags.Changed("reset-format-on-newline") {
		cfg.ResetFormatOnNewline = resetFormatOnNewline
	}
	if flags.Changed("nowrap") {
		cfg.Nowrap = nowrap
	}
	return cfg, nil
}

func parseMentionMode(s string) (parser.MentionMode, error) {
	switch s {
	case "off", "":
		return parser.MentionOff, nil
	case "on":
		return parser.MentionOn, nil
	case "strict":
		return parser.MentionStrict, nil
	default:
		return parser.MentionOff, fmt.Errorf("unknown mention mode %q (want off|on|strict)", s)
	}
}

func errWriter() *os.File {
	return os.Stderr
}

func outWriter() *os.File {
	return os.Stdout
}
