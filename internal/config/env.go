// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

var (
	// ErrEnvVariablesNotValid is returned when the environment cannot be parsed.
	ErrEnvVariablesNotValid = errors.New("environment variables not valid")
)

// Environment holds the settings read from environment variables.
type Environment struct {
	LogLevel     string `env:"FLOWDEBUG_LOG_LEVEL"`
	PipelineFile string `env:"FLOWDEBUG_PIPELINE_FILE"`
}

// LoadEnvironment reads the Environment from the process environment.
func LoadEnvironment() (*Environment, error) {
	envVars, err := env.ParseAs[Environment]()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, err.Error())
	}

	return &envVars, nil
}
