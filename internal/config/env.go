package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// FunctionEnv is the process environment of serverless deployments,
// where there is no command line to pass flags on.
type FunctionEnv struct {
	ConfigPath string `env:"CHATBOTS_CONFIG" envDefault:"chatbots.yml"`
	// Platform selects the endpoint a single-purpose function serves
	// (telegram or basecamp).
	Platform string `env:"CHATBOTS_PLATFORM"`
	// CustomHandlerPort is set by the Azure Functions host.
	CustomHandlerPort int `env:"FUNCTIONS_CUSTOMHANDLER_PORT"`
	// Port is set by Cloud Functions and Cloud Run.
	Port int `env:"PORT" envDefault:"8080"`
}

// LoadFunctionEnv reads FunctionEnv from the process environment.
func LoadFunctionEnv() (FunctionEnv, error) {
	return parseFunctionEnv(env.Options{})
}

func parseFunctionEnv(opts env.Options) (FunctionEnv, error) {
	var fe FunctionEnv
	if err := env.ParseWithOptions(&fe, opts); err != nil {
		return fe, fmt.Errorf("reading function environment: %w", err)
	}
	return fe, nil
}

// ListenPort returns the Azure custom handler port when set, PORT otherwise.
func (fe FunctionEnv) ListenPort() int {
	if fe.CustomHandlerPort > 0 {
		return fe.CustomHandlerPort
	}
	return fe.Port
}
