package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// platformChoices are the wizard's platform options, in menu order.
var platformChoices = []string{
	"telegram + basecamp",
	"telegram only",
	"basecamp only",
}

// RunWizard runs an interactive configuration wizard, saves the result
// to path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to chatbots! Let's configure your bots.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Platforms.
	platformPrompt := promptui.Select{
		Label: "Which platforms should be served",
		Items: platformChoices,
	}
	platformIdx, _, err := platformPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("platform selection: %w", err)
	}
	cfg.Telegram.Endpoint.Enabled = platformIdx != 2
	cfg.Basecamp.Endpoint.Enabled = platformIdx != 1

	// 2. Telegram bot.
	if cfg.Telegram.Endpoint.Enabled {
		name, err := (&promptui.Prompt{Label: "Telegram bot name", Default: "main", Validate: notBlank}).Run()
		if err != nil {
			return nil, fmt.Errorf("telegram bot name: %w", err)
		}
		username, err := (&promptui.Prompt{Label: "Telegram @username (optional)"}).Run()
		if err != nil {
			return nil, fmt.Errorf("telegram username: %w", err)
		}
		tokenPrompt := promptui.Prompt{
			Label: "Webhook secret token (leave blank to generate one)",
			Mask:  '*',
		}
		token, err := tokenPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("telegram secret token: %w", err)
		}
		if token == "" {
			if token, err = GenerateToken(); err != nil {
				return nil, err
			}
			fmt.Printf("Generated secret token: %s\n", token)
			fmt.Println("Pass it as secret_token when calling setWebhook.")
		}
		cfg.Telegram.Bots = map[string]TelegramBot{
			strings.TrimSpace(name): {
				Token:      token,
				AtUsername: strings.TrimPrefix(strings.TrimSpace(username), "@"),
				Enabled:    true,
			},
		}
	}

	// 3. Basecamp bot.
	if cfg.Basecamp.Endpoint.Enabled {
		name, err := (&promptui.Prompt{Label: "Basecamp bot name", Default: "main", Validate: notBlank}).Run()
		if err != nil {
			return nil, fmt.Errorf("basecamp bot name: %w", err)
		}
		cfg.Basecamp.Bots = map[string]BasecampBot{strings.TrimSpace(name): {Enabled: true}}
	}

	// 4. Static commands folder.
	folder, err := (&promptui.Prompt{Label: "Folder with static command files", Default: cfg.Folder}).Run()
	if err != nil {
		return nil, fmt.Errorf("commands folder: %w", err)
	}
	cfg.Folder = folder

	// 5. Journal.
	journalPrompt := promptui.Select{
		Label: "Keep a journal of dispatches in SQLite",
		Items: []string{"no", "yes"},
	}
	journalIdx, _, err := journalPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("journal selection: %w", err)
	}
	cfg.Journal.Enabled = journalIdx == 1

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(cfg.Folder); os.IsNotExist(err) {
		fmt.Printf("\nNote: create %s/ and add files such as about.md to serve /about.\n", cfg.Folder)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// GenerateToken returns a random webhook secret token. Telegram accepts
// 1-256 characters from A-Z, a-z, 0-9, _ and -.
func GenerateToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}
