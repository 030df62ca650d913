package config

// DefaultPath is the configuration file used when --config is not given.
const DefaultPath = "chatbots.yml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CHATBOTS_"

// DefaultFormats is the static command lookup order.
var DefaultFormats = []string{"markdown", "html", "txt"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Enabled:              true,
		Folder:               "botcommands",
		StaticCommandFormats: append([]string(nil), DefaultFormats...),
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Journal: JournalConfig{
			Enabled:       false,
			Path:          "chatbots.db",
			RetentionDays: 30,
		},
		Assistant: AssistantConfig{
			Enabled:   false,
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
			MaxTokens: 512,
		},
		Telegram: TelegramConfig{
			Endpoint: EndpointConfig{Enabled: true, Path: "/telegram"},
		},
		Basecamp: BasecampConfig{
			Endpoint: EndpointConfig{Enabled: true, Path: "/basecamp"},
		},
	}
}
