package cmd

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/ziadkadry99/chatbots/internal/app"
	"github.com/ziadkadry99/chatbots/internal/config"
	"github.com/ziadkadry99/chatbots/internal/logger"
)

// loadConfig loads the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `chatbots init` to create a config file", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// loadApp loads the config and builds the chatbots from it.
func loadApp() (*app.App, *config.Config, *slog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("configuring logging: %w", err)
	}
	a, err := app.New(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return a, cfg, log, nil
}

// useFunctionEnv points --config at CHATBOTS_CONFIG unless the flag was
// given, and returns the serverless environment.
func useFunctionEnv(flagChanged bool) (config.FunctionEnv, error) {
	fe, err := config.LoadFunctionEnv()
	if err != nil {
		return fe, err
	}
	if !flagChanged {
		cfgFile = fe.ConfigPath
	}
	return fe, nil
}

func checkPlatform(platform string) error {
	if !slices.Contains(app.Platforms, platform) {
		return fmt.Errorf("unknown platform %q (want one of %s)", platform, strings.Join(app.Platforms, ", "))
	}
	return nil
}
