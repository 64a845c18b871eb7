// Package config defines the data structures related to configuration and
// includes functions for loading and defaulting the config.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/lenderkit/fha-loan-estimate/internal/quote"
	"github.com/lenderkit/fha-loan-estimate/pkg/constants"
)

// Configuration holds all configuration for fha-loan-estimate.
type Configuration struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
	Policy  PolicyConfig  `yaml:"policy,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// ServerConfig holds HTTP server configuration options
type ServerConfig struct {
	Address         string `yaml:"address,omitempty"`
	MaxRequestBytes int64  `yaml:"maxRequestBytes,omitempty"`
}

// PolicyConfig holds the named policy toggles that varied across estimate
// revisions. Pointers distinguish "unset" from an explicit false so that
// defaults apply only when the file is silent.
type PolicyConfig struct {
	EnforceMinimumDownPayment *bool `yaml:"enforceMinimumDownPayment,omitempty"`
	ApplyPrepaidFloors        *bool `yaml:"applyPrepaidFloors,omitempty"`
	AllowLenderCredit         *bool `yaml:"allowLenderCredit,omitempty"`
	RichPropertyAliases       *bool `yaml:"richPropertyAliases,omitempty"`
}

// Default returns the configuration used when no config file is supplied.
func Default() *Configuration {
	return &Configuration{
		Server: ServerConfig{
			Address:         constants.DefaultServerAddress,
			MaxRequestBytes: constants.DefaultMaxRequestBytes,
		},
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path yields the defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	if configPath == "" {
		return Default(), nil
	}
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file not found at %s, %w", configPath, err)
	}

	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if configuration.Server.Address == "" {
		configuration.Server.Address = constants.DefaultServerAddress
	}
	if configuration.Server.MaxRequestBytes <= 0 {
		configuration.Server.MaxRequestBytes = constants.DefaultMaxRequestBytes
	}

	return &configuration, nil
}

// QuotePolicy resolves the policy toggles into the evaluator's policy,
// applying the current-revision defaults for anything unset.
func (conf *Configuration) QuotePolicy() quote.Policy {
	policy := quote.DefaultPolicy()
	apply := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&policy.Engine.EnforceMinimumDownPayment, conf.Policy.EnforceMinimumDownPayment)
	apply(&policy.Engine.ApplyPrepaidFloors, conf.Policy.ApplyPrepaidFloors)
	apply(&policy.Engine.AllowLenderCredit, conf.Policy.AllowLenderCredit)
	apply(&policy.RichPropertyAliases, conf.Policy.RichPropertyAliases)
	return policy
}
