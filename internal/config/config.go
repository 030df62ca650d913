package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/chatbots/internal/textresource"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CHATBOTS_*). A double underscore
// separates nesting levels: CHATBOTS_TELEGRAM__ENDPOINT__PATH sets
// telegram.endpoint.path.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps CHATBOTS_TELEGRAM__BOTS__MAIN__TOKEN to telegram.bots.main.token.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLogFormats = map[string]bool{"text": true, "json": true}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Folder == "" {
		return fmt.Errorf("folder is required")
	}
	if len(c.StaticCommandFormats) == 0 {
		return fmt.Errorf("static_command_formats must list at least one format")
	}
	if _, err := textresource.ParseFormats(c.StaticCommandFormats); err != nil {
		return err
	}

	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid logging.format %q: must be text or json", c.Logging.Format)
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid logging.level %q: must be one of debug, info, warn, error", c.Logging.Level)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.Journal.Enabled && c.Journal.Path == "" {
		return fmt.Errorf("journal.path is required when the journal is enabled")
	}
	if c.Journal.RetentionDays < 0 {
		return fmt.Errorf("journal.retention_days must be non-negative")
	}

	if c.Assistant.Enabled {
		if c.Assistant.Model == "" {
			return fmt.Errorf("assistant.model is required when the assistant is enabled")
		}
		if c.Assistant.MaxTokens < 0 {
			return fmt.Errorf("assistant.max_tokens must be non-negative")
		}
	}

	if err := validateEndpoint("telegram", c.Telegram.Endpoint); err != nil {
		return err
	}
	if err := validateEndpoint("basecamp", c.Basecamp.Endpoint); err != nil {
		return err
	}
	if c.Telegram.Endpoint.Enabled && c.Basecamp.Endpoint.Enabled && c.Telegram.Endpoint.Path == c.Basecamp.Endpoint.Path {
		return fmt.Errorf("telegram and basecamp endpoints share the path %q", c.Telegram.Endpoint.Path)
	}

	tokens := make(map[string]string)
	for _, name := range c.TelegramBotNames() {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("telegram bot names must not be empty")
		}
		bot := c.Telegram.Bots[name]
		if !bot.Enabled {
			continue
		}
		if bot.Token == "" {
			return fmt.Errorf("telegram bot %q is enabled but has no token", name)
		}
		if other, dup := tokens[bot.Token]; dup {
			return fmt.Errorf("telegram bots %q and %q share a token", other, name)
		}
		tokens[bot.Token] = name
	}
	for _, name := range c.BasecampBotNames() {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("basecamp bot names must not be empty")
		}
	}

	return nil
}

func validateEndpoint(platform string, e EndpointConfig) error {
	if !e.Enabled {
		return nil
	}
	if !strings.HasPrefix(e.Path, "/") {
		return fmt.Errorf("%s.endpoint.path %q must start with /", platform, e.Path)
	}
	return nil
}

// TelegramBotNames returns the configured Telegram bot names, sorted.
// Sorted order is the order credentials are matched in.
func (c *Config) TelegramBotNames() []string {
	names := make([]string, 0, len(c.Telegram.Bots))
	for name := range c.Telegram.Bots {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// BasecampBotNames returns the configured Basecamp bot names, sorted.
func (c *Config) BasecampBotNames() []string {
	names := make([]string, 0, len(c.Basecamp.Bots))
	for name := range c.Basecamp.Bots {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Formats returns the parsed static command formats.
func (c *Config) Formats() []textresource.Format {
	formats, err := textresource.ParseFormats(c.StaticCommandFormats)
	if err != nil || len(formats) == 0 {
		return textresource.DefaultFormats
	}
	return formats
}
