package config

// Config is the top-level chatbots configuration, corresponding to chatbots.yml.
type Config struct {
	Enabled              bool            `yaml:"enabled" koanf:"enabled"`
	Folder               string          `yaml:"folder" koanf:"folder"`
	StaticCommandFormats []string        `yaml:"static_command_formats" koanf:"static_command_formats"`
	Logging              LoggingConfig   `yaml:"logging" koanf:"logging"`
	Server               ServerConfig    `yaml:"server" koanf:"server"`
	Journal              JournalConfig   `yaml:"journal" koanf:"journal"`
	Assistant            AssistantConfig `yaml:"assistant" koanf:"assistant"`
	Telegram             TelegramConfig  `yaml:"telegram" koanf:"telegram"`
	Basecamp             BasecampConfig  `yaml:"basecamp" koanf:"basecamp"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Format    string `yaml:"format" koanf:"format"` // text or json
	Level     string `yaml:"level" koanf:"level"`
	AddSource bool   `yaml:"add_source" koanf:"add_source"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int    `yaml:"port" koanf:"port"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	AdminToken      string `yaml:"admin_token,omitempty" koanf:"admin_token"`
}

// JournalConfig controls the dispatch journal.
type JournalConfig struct {
	Enabled       bool   `yaml:"enabled" koanf:"enabled"`
	Path          string `yaml:"path" koanf:"path"`
	RetentionDays int    `yaml:"retention_days" koanf:"retention_days"`
}

// AssistantConfig configures the free-text answering fallback.
type AssistantConfig struct {
	Enabled      bool   `yaml:"enabled" koanf:"enabled"`
	Model        string `yaml:"model" koanf:"model"`
	BaseURL      string `yaml:"base_url,omitempty" koanf:"base_url"`
	APIKeyEnv    string `yaml:"api_key_env" koanf:"api_key_env"`
	MaxTokens    int    `yaml:"max_tokens" koanf:"max_tokens"`
	SystemPrompt string `yaml:"system_prompt,omitempty" koanf:"system_prompt"`
}

// EndpointConfig switches a platform's webhook endpoint on or off.
type EndpointConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	Path    string `yaml:"path" koanf:"path"`
}

// TelegramConfig holds the Telegram endpoint and its bots.
type TelegramConfig struct {
	Endpoint EndpointConfig         `yaml:"endpoint" koanf:"endpoint"`
	Bots     map[string]TelegramBot `yaml:"bots" koanf:"bots"`
}

// TelegramBot is one Telegram bot. Token is the secret_token registered
// with setWebhook, echoed back by Telegram on every update.
type TelegramBot struct {
	Token      string `yaml:"token" koanf:"token"`
	AtUsername string `yaml:"at_username,omitempty" koanf:"at_username"`
	Enabled    bool   `yaml:"enabled" koanf:"enabled"`
}

// BasecampConfig holds the Basecamp endpoint and its bots.
type BasecampConfig struct {
	Endpoint EndpointConfig         `yaml:"endpoint" koanf:"endpoint"`
	Bots     map[string]BasecampBot `yaml:"bots" koanf:"bots"`
}

// BasecampBot is one Basecamp chatbot. Basecamp sends no credential, so
// only the name matters.
type BasecampBot struct {
	Enabled bool `yaml:"enabled" koanf:"enabled"`
}
