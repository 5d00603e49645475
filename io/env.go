package io

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvOverrides are the environment variables which can override a config
// file. Unset variables leave the file's values alone.
type EnvOverrides struct {
	Threads *int    `env:"CRUST_THREADS"`
	Output  *string `env:"CRUST_OUTPUT"`
	Plot    *string `env:"CRUST_PLOT"`
	Verbose *bool   `env:"CRUST_VERBOSE"`
}

// ApplyEnv overwrites config values with any environment overrides.
func ApplyEnv(con *CrustConfig) error {
	over := EnvOverrides{}
	if err := env.Parse(&over); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if over.Threads != nil {
		con.Threads = *over.Threads
	}
	if over.Output != nil {
		con.Output = *over.Output
	}
	if over.Plot != nil {
		con.Plot = *over.Plot
	}
	if over.Verbose != nil {
		con.Verbose = *over.Verbose
	}
	return nil
}
