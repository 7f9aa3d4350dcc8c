// ABOUTME: Entry point for the favbot Discord bot
// ABOUTME: Saves reacted-to messages as favs and posts them back on command

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/favbot/internal/bot"
	"github.com/2389/favbot/internal/config"
	"github.com/2389/favbot/internal/favs"
	"github.com/2389/favbot/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
  __             _           _
 / _| __ ___   _| |__   ___ | |_
| |_ / _' \ \ / / '_ \ / _ \| __|
|  _| (_| |\ V /| |_) | (_) | |_
|_|  \__,_| \_/ |_.__/ \___/ \__|
`

const starterConfig = `[discord]
token = "${FAVBOT_DISCORD_TOKEN}"

[bot]
command_prefix = "!"
save_emoji = "🔖"

[dedupe]
ttl = "5m"
max_entries = 4096

[logging]
level = "info"
format = "text"
`

// getConfigPath returns the path to the favbot config file.
// Priority: FAVBOT_CONFIG env var > XDG_CONFIG_HOME/favbot/favbot.toml > ~/.config/favbot/favbot.toml
func getConfigPath() string {
	if envPath := os.Getenv("FAVBOT_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "favbot.toml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "favbot", "favbot.toml")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: favbot <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve     Start the bot")
		fmt.Println("  init      Create a starter config file")
		fmt.Println("  version   Print the version")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "version":
		fmt.Println("favbot", version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	configPath := getConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config from %s: %w", configPath, err)
	}

	logger := setupLogger(cfg.Logging)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:  %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("Prefix:  %s\n", cfg.Bot.CommandPrefix)
	green.Print("    ▶ ")
	fmt.Printf("Emoji:   %s\n", cfg.Bot.SaveEmoji)
	fmt.Println()

	favStore := store.NewMemoryStore(logger)
	defer favStore.Close()

	service := favs.New(favStore, logger)

	b, err := bot.New(cfg, service, logger)
	if err != nil {
		return fmt.Errorf("creating bot: %w", err)
	}

	logger.Info("starting favbot", "version", version)
	return b.Run(ctx)
}

func runInit() error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(starterConfig), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Printf("Wrote starter config to %s\n", configPath)
	fmt.Println("Set FAVBOT_DISCORD_TOKEN (or edit the file) before running `favbot serve`.")
	return nil
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
