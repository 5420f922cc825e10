package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/richedit/core/internal/editor"
	"github.com/richedit/core/internal/history"
	"github.com/richedit/core/internal/parser"
)

// Config holds the persisted defaults for a Coordinator: the recognizer
// toggles a host applies on every Parse call, plus the history tuning
// knobs, loaded through the same viper precedence chain the teacher's
// internal/config used for its LLM settings.
type Config struct {
	TextEmoji   bool `mapstructure:"text_emoji"`
	Hashtag     bool `mapstructure:"hashtag"`
	Mention     int  `mapstructure:"mention"`
	Command     bool `mapstructure:"command"`
	UserSticker bool `mapstructure:"user_sticker"`
	Link        bool `mapstructure:"link"`
	StickyLink  bool `mapstructure:"sticky_link"`
	Markdown    bool `mapstructure:"markdown"`

	LinkProtocols []string `mapstructure:"link_protocols"`

	ResetFormatOnNewline bool `mapstructure:"reset_format_on_newline"`
	Nowrap               bool `mapstructure:"nowrap"`

	CompactTimeoutMS int `mapstructure:"compact_timeout_ms"`
	MaxEntries       int `mapstructure:"max_entries"`
}

const (
	DefaultConfigName = "config"
	DefaultConfigDir  = "richedit"
	LegacyConfigName  = ".richedit"
	EnvPrefix         = "RICHEDIT"

	DefaultCompactTimeoutMS = int(history.DefaultCompactTimeout / time.Millisecond)
	DefaultMaxEntries       = history.DefaultMaxEntries
)

var configFilePath string

// getConfigPath returns the config path following priority:
// 1. Explicit --config flag
// 2. RICHEDIT_CONFIG env var
// 3. $XDG_CONFIG_HOME/richedit/config.yaml
// 4. ~/.config/richedit/config.yaml (XDG default)
// 5. ~/.richedit.yaml (legacy fallback)
func getConfigPath(cfgFile string) (string, error) {
	// 1. Explicit config file
	if cfgFile != "" {
		return cfgFile, nil
	}

	// 2. RICHEDIT_CONFIG env var
	if envConfig := os.Getenv("RICHEDIT_CONFIG"); envConfig != "" {
		return envConfig, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}

	// 3. XDG_CONFIG_HOME
	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" {
		xdgConfigHome = filepath.Join(home, ".config")
	}

	xdgConfigPath := filepath.Join(xdgConfigHome, DefaultConfigDir, DefaultConfigName+".yaml")

	// Check if XDG config exists
	if _, err := os.Stat(xdgConfigPath); err == nil {
		return xdgConfigPath, nil
	}

	// 4. Check legacy path
	legacyPath := filepath.Join(home, LegacyConfigName+".yaml")
	if _, err := os.Stat(legacyPath); err == nil {
		return legacyPath, nil
	}

	// 5. Default to XDG path for new installations
	return xdgConfigPath, nil
}

func InitConfig(cfgFile string) error {
	configPath, err := getConfigPath(cfgFile)
	if err != nil {
		return err
	}
	configFilePath = configPath

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// Set defaults
	viper.SetDefault("text_emoji", false)
	viper.SetDefault("hashtag", false)
	viper.SetDefault("mention", int(parser.MentionOff))
	viper.SetDefault("command", false)
	viper.SetDefault("user_sticker", false)
	viper.SetDefault("link", false)
	viper.SetDefault("sticky_link", false)
	viper.SetDefault("markdown", false)
	viper.SetDefault("link_protocols", parser.DefaultLinkProtocols)
	viper.SetDefault("reset_format_on_newline", false)
	viper.SetDefault("nowrap", false)
	viper.SetDefault("compact_timeout_ms", DefaultCompactTimeoutMS)
	viper.SetDefault("max_entries", DefaultMaxEntries)

	// Enable RICHEDIT_ prefixed environment variables, e.g.
	// RICHEDIT_MARKDOWN, RICHEDIT_MAX_ENTRIES.
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if errors.As(err, &notFoundErr) || os.IsNotExist(err) {
			configDir := filepath.Dir(configFilePath)
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return fmt.Errorf("failed to create configuration directory: %w", err)
			}

			if err := viper.WriteConfigAs(configFilePath); err != nil {
				return fmt.Errorf("failed to write configuration file: %w", err)
			}
			if err := enforceConfigFilePermissions(configFilePath); err != nil {
				return err
			}
		} else {
			return fmt.Errorf("failed to read configuration file: %w", err)
		}
	} else {
		if err := enforceConfigFilePermissions(configFilePath); err != nil {
			return err
		}
	}

	// Merge repo-level config if exists (higher priority than user config)
	if repoConfig := findRepoConfig(); repoConfig != "" {
		repoViper := viper.New()
		repoViper.SetConfigFile(repoConfig)
		if err := repoViper.ReadInConfig(); err == nil {
			for _, key := range repoViper.AllKeys() {
				viper.Set(key, repoViper.Get(key))
			}
		}
	}

	return nil
}

// findRepoConfig searches for .richedit.yaml in the current working directory.
func findRepoConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	repoConfigPath := filepath.Join(cwd, LegacyConfigName+".yaml")
	if _, err := os.Stat(repoConfigPath); err == nil {
		return repoConfigPath
	}
	return ""
}

func GetConfig() (*Config, error) {
	cfg := defaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}

func MustGetConfig() *Config {
	cfg, err := GetConfig()
	if err != nil {
		return defaultConfig()
	}
	return cfg
}

func defaultConfig() *Config {
	return &Config{
		Mention:          int(parser.MentionOff),
		LinkProtocols:    append([]string(nil), parser.DefaultLinkProtocols...),
		CompactTimeoutMS: DefaultCompactTimeoutMS,
		MaxEntries:       DefaultMaxEntries,
	}
}

// EditorOptions converts the loaded Config into the editor.Options a
// Coordinator is constructed with.
func (c *Config) EditorOptions() editor.Options {
	return editor.Options{
		Options: parser.Options{
			TextEmoji:     c.TextEmoji,
			Hashtag:       c.Hashtag,
			Mention:       parser.MentionMode(c.Mention),
			Command:       c.Command,
			UserSticker:   c.UserSticker,
			Link:          c.Link,
			StickyLink:    c.StickyLink,
			Markdown:      c.Markdown,
			LinkProtocols: c.LinkProtocols,
		},
		ResetFormatOnNewline: c.ResetFormatOnNewline,
		Nowrap:               c.Nowrap,
	}
}

// HistoryOptions converts the loaded Config into history.Options.
func (c *Config) HistoryOptions() history.Options {
	return history.Options{
		CompactTimeout: time.Duration(c.CompactTimeoutMS) * time.Millisecond,
		MaxEntries:     c.MaxEntries,
	}
}

func SaveConfig() error {
	if err := viper.WriteConfig(); err != nil {
		return err
	}
	return enforceConfigFilePermissions(configFilePath)
}

func SetConfigValue(key string, value any) {
	viper.Set(key, value)
}

func enforceConfigFilePermissions(path string) error {
	if path == "" || runtime.GOOS == "windows" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat configuration file: %w", err)
	}

	const securePerm os.FileMode = 0o600
	if info.Mode().Perm() != securePerm {
		if err := os.Chmod(path, securePerm); err != nil {
			return fmt.Errorf("failed to set configuration file permissions: %w", err)
		}
	}

	updatedInfo, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to verify configuration file permissions: %w", err)
	}

	if updatedInfo.Mode().Perm()&0o077 != 0 {
		return fmt.Errorf("configuration file %s remains readable by other users (mode %04o)",
			path, updatedInfo.Mode().Perm())
	}

	return nil
}
