package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/caarlos0/env/v11"

	"github.com/ziadkadry99/chatbots/internal/textresource"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Enabled {
		t.Error("expected chatbots to be enabled by default")
	}
	if cfg.Folder != "botcommands" {
		t.Errorf("expected default folder %q, got %q", "botcommands", cfg.Folder)
	}
	if cfg.Telegram.Endpoint.Path != "/telegram" {
		t.Errorf("expected default telegram path /telegram, got %q", cfg.Telegram.Endpoint.Path)
	}
	if cfg.Basecamp.Endpoint.Path != "/basecamp" {
		t.Errorf("expected default basecamp path /basecamp, got %q", cfg.Basecamp.Endpoint.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chatbots.yml")

	original := DefaultConfig()
	original.Folder = "commands"
	original.Logging.Level = "debug"
	original.Telegram.Bots = map[string]TelegramBot{
		"main":   {Token: "t-main", AtUsername: "main_bot", Enabled: true},
		"legacy": {Token: "t-legacy", Enabled: false},
	}
	original.Basecamp.Bots = map[string]BasecampBot{"helper": {Enabled: true}}
	original.Journal.Enabled = true

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Folder != "commands" {
		t.Errorf("folder: got %q, want %q", loaded.Folder, "commands")
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("logging.level: got %q, want debug", loaded.Logging.Level)
	}
	if got := loaded.Telegram.Bots["main"]; got.Token != "t-main" || got.AtUsername != "main_bot" || !got.Enabled {
		t.Errorf("telegram main bot: got %+v", got)
	}
	if got := loaded.Telegram.Bots["legacy"]; got.Enabled {
		t.Errorf("telegram legacy bot should stay disabled: %+v", got)
	}
	if !loaded.Basecamp.Bots["helper"].Enabled {
		t.Error("basecamp helper bot should be enabled")
	}
	if !loaded.Journal.Enabled {
		t.Error("journal should be enabled")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port: got %d, want 8080", cfg.Server.Port)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatbots.yml")
	yml := "telegram:\n  bots:\n    main:\n      token: abc\n      enabled: true\n"
	if err := os.WriteFile(path, []byte(yml), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.Bots["main"].Token != "abc" {
		t.Errorf("token: got %q", cfg.Telegram.Bots["main"].Token)
	}
	if !cfg.Telegram.Endpoint.Enabled || cfg.Telegram.Endpoint.Path != "/telegram" {
		t.Errorf("endpoint defaults lost: %+v", cfg.Telegram.Endpoint)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHATBOTS_TELEGRAM__ENDPOINT__PATH", "/hooks/tg")
	t.Setenv("CHATBOTS_TELEGRAM__BOTS__MAIN__TOKEN", "from-env")
	t.Setenv("CHATBOTS_TELEGRAM__BOTS__MAIN__ENABLED", "true")
	t.Setenv("CHATBOTS_SERVER__PORT", "9090")
	t.Setenv("CHATBOTS_LOGGING__FORMAT", "json")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.Endpoint.Path != "/hooks/tg" {
		t.Errorf("telegram path: got %q", cfg.Telegram.Endpoint.Path)
	}
	if bot := cfg.Telegram.Bots["main"]; bot.Token != "from-env" || !bot.Enabled {
		t.Errorf("telegram bot from env: got %+v", bot)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port: got %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("logging.format: got %q", cfg.Logging.Format)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty folder", func(c *Config) { c.Folder = "" }, "folder is required"},
		{"no formats", func(c *Config) { c.StaticCommandFormats = nil }, "at least one format"},
		{"bad format", func(c *Config) { c.StaticCommandFormats = []string{"md", "pdf"} }, "pdf"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "out of range"},
		{"journal without path", func(c *Config) { c.Journal.Enabled = true; c.Journal.Path = "" }, "journal.path"},
		{"negative retention", func(c *Config) { c.Journal.RetentionDays = -1 }, "retention_days"},
		{"assistant without model", func(c *Config) { c.Assistant.Enabled = true; c.Assistant.Model = "" }, "assistant.model"},
		{"relative path", func(c *Config) { c.Telegram.Endpoint.Path = "telegram" }, "must start with /"},
		{"disabled endpoint path ignored", func(c *Config) { c.Telegram.Endpoint = EndpointConfig{} }, ""},
		{"shared path", func(c *Config) { c.Basecamp.Endpoint.Path = "/telegram" }, "share the path"},
		{"enabled bot without token", func(c *Config) {
			c.Telegram.Bots = map[string]TelegramBot{"a": {Enabled: true}}
		}, "has no token"},
		{"duplicate tokens", func(c *Config) {
			c.Telegram.Bots = map[string]TelegramBot{
				"a": {Token: "same", Enabled: true},
				"b": {Token: "same", Enabled: true},
			}
		}, "share a token"},
		{"duplicate token on disabled bot", func(c *Config) {
			c.Telegram.Bots = map[string]TelegramBot{
				"a": {Token: "same", Enabled: true},
				"b": {Token: "same", Enabled: false},
			}
		}, ""},
		{"blank bot name", func(c *Config) { c.Basecamp.Bots = map[string]BasecampBot{" ": {Enabled: true}} }, "must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestBotNamesSorted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Telegram.Bots = map[string]TelegramBot{"zeta": {}, "alpha": {}, "mid": {}}
	got := strings.Join(cfg.TelegramBotNames(), ",")
	if got != "alpha,mid,zeta" {
		t.Errorf("TelegramBotNames = %s", got)
	}
}

func TestFormats(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StaticCommandFormats = []string{"txt", "md"}
	got := cfg.Formats()
	if len(got) != 2 || got[0] != textresource.Text || got[1] != textresource.Markdown {
		t.Errorf("Formats = %v", got)
	}
	cfg.StaticCommandFormats = []string{"bogus"}
	if len(cfg.Formats()) != len(textresource.DefaultFormats) {
		t.Error("invalid formats should fall back to the defaults")
	}
}

func TestFunctionEnv(t *testing.T) {
	fe, err := parseFunctionEnv(env.Options{Environment: map[string]string{
		"CHATBOTS_PLATFORM":            "basecamp",
		"FUNCTIONS_CUSTOMHANDLER_PORT": "7071",
	}})
	if err != nil {
		t.Fatalf("parseFunctionEnv: %v", err)
	}
	if fe.ConfigPath != DefaultPath {
		t.Errorf("ConfigPath = %q, want %q", fe.ConfigPath, DefaultPath)
	}
	if fe.Platform != "basecamp" {
		t.Errorf("Platform = %q", fe.Platform)
	}
	if fe.ListenPort() != 7071 {
		t.Errorf("ListenPort = %d, want 7071", fe.ListenPort())
	}

	fe, err = parseFunctionEnv(env.Options{Environment: map[string]string{"PORT": "9000"}})
	if err != nil {
		t.Fatalf("parseFunctionEnv: %v", err)
	}
	if fe.ListenPort() != 9000 {
		t.Errorf("ListenPort = %d, want 9000", fe.ListenPort())
	}

	if _, err := parseFunctionEnv(env.Options{Environment: map[string]string{"PORT": "http"}}); err == nil {
		t.Error("expected an error for a non-numeric PORT")
	}
}

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	b, _ := GenerateToken()
	if a == b || len(a) != 48 {
		t.Errorf("unexpected tokens %q %q", a, b)
	}
}
