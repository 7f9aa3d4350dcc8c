// ABOUTME: Configuration loading and parsing for favbot
// ABOUTME: Loads TOML with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults applied when the config file leaves fields unset.
const (
	DefaultCommandPrefix = "!"
	DefaultSaveEmoji     = "🔖"
	DefaultDedupeTTL     = 5 * time.Minute
	DefaultDedupeSize    = 4096
)

// Config represents the complete favbot configuration
type Config struct {
	Discord DiscordConfig `toml:"discord"`
	Bot     BotConfig     `toml:"bot"`
	Dedupe  DedupeConfig  `toml:"dedupe"`
	Logging LoggingConfig `toml:"logging"`
}

// DiscordConfig holds Discord session configuration
type DiscordConfig struct {
	Token string `toml:"token"`
}

// BotConfig holds command and save-flow configuration
type BotConfig struct {
	CommandPrefix string `toml:"command_prefix"`
	SaveEmoji     string `toml:"save_emoji"`
}

// DedupeConfig holds event deduplication cache configuration
type DedupeConfig struct {
	TTL        time.Duration `toml:"-"`
	MaxEntries int           `toml:"max_entries"`

	// Raw string value for TOML unmarshaling
	TTLRaw string `toml:"ttl"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Load reads a configuration file from the given path and returns a parsed
// Config. Environment variables in the format ${VAR_NAME} are expanded and
// defaults are applied to unset fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw TOML content
	expanded := expandEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(expanded, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.parseDurations(); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables expand to an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// applyDefaults fills unset fields with their default values.
func (c *Config) applyDefaults() {
	if c.Bot.CommandPrefix == "" {
		c.Bot.CommandPrefix = DefaultCommandPrefix
	}
	if c.Bot.SaveEmoji == "" {
		c.Bot.SaveEmoji = DefaultSaveEmoji
	}
	if c.Dedupe.MaxEntries == 0 {
		c.Dedupe.MaxEntries = DefaultDedupeSize
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// parseDurations converts the raw duration strings into time.Duration values
func (c *Config) parseDurations() error {
	if c.Dedupe.TTLRaw == "" {
		c.Dedupe.TTL = DefaultDedupeTTL
		return nil
	}

	ttl, err := time.ParseDuration(c.Dedupe.TTLRaw)
	if err != nil {
		return fmt.Errorf("parsing dedupe ttl %q: %w", c.Dedupe.TTLRaw, err)
	}
	c.Dedupe.TTL = ttl
	return nil
}

// Validate checks that all required configuration fields are present and
// valid. Returns an error describing the first validation failure.
func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("discord.token is required")
	}
	if c.Dedupe.TTL < 0 {
		return fmt.Errorf("dedupe.ttl must not be negative")
	}
	if c.Dedupe.MaxEntries < 1 {
		return fmt.Errorf("dedupe.max_entries must be positive")
	}
	return nil
}
