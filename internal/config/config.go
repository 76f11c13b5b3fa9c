// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/evergreen-digital/contract-handover/pkg/constants"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Configuration holds all configuration for contract-handover.
type Configuration struct {
	Server   ServerConfig   `yaml:"server,omitempty"`
	Notifier NotifierConfig `yaml:"notifier,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
}

// ServerConfig holds HTTP server options.
type ServerConfig struct {
	Address string `yaml:"address,omitempty"`
}

// NotifierConfig holds intake-webhook delivery options. An empty endpoint
// disables delivery; submissions then only produce the local artifact.
type NotifierConfig struct {
	Endpoint       string `yaml:"endpoint,omitempty"`
	TimeoutSeconds int    `yaml:"timeoutSeconds,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path yields the defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	configuration := Configuration{
		Server:   ServerConfig{Address: constants.DefaultServerAddress},
		Notifier: NotifierConfig{TimeoutSeconds: constants.DefaultNotifierTimeoutSeconds},
	}
	if configPath == "" {
		return &configuration, nil
	}

	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	if err := viper.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if configuration.Server.Address == "" {
		configuration.Server.Address = constants.DefaultServerAddress
	}
	if configuration.Notifier.TimeoutSeconds == 0 {
		configuration.Notifier.TimeoutSeconds = constants.DefaultNotifierTimeoutSeconds
	}

	return &configuration, nil
}

// NotifierTimeout returns the configured delivery timeout as a duration,
// falling back to the default for non-positive values.
func (c *Configuration) NotifierTimeout() time.Duration {
	if c.Notifier.TimeoutSeconds <= 0 {
		return constants.DefaultNotifierTimeoutSeconds * time.Second
	}
	return time.Duration(c.Notifier.TimeoutSeconds) * time.Second
}

// Dump renders the effective configuration as YAML, used for startup
// debug logging.
func (c *Configuration) Dump() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal configuration, %s", err)
	}
	return string(out), nil
}

// ValidateConfiguration performs general validation of the configuration
// and returns warnings. Warnings never block startup.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Notifier.Endpoint == "" {
		warnings = append(warnings, "no notifier endpoint configured; submissions will only produce the local CSV artifact")
	} else {
		parsed, err := url.Parse(c.Notifier.Endpoint)
		if err != nil || !parsed.IsAbs() {
			warnings = append(warnings, fmt.Sprintf("notifier endpoint %q is not an absolute URL; delivery will fail", c.Notifier.Endpoint))
		}
	}

	if c.Notifier.TimeoutSeconds < 0 {
		warnings = append(warnings, fmt.Sprintf("notifier timeout %d is negative; the default of %d seconds will be used",
			c.Notifier.TimeoutSeconds, constants.DefaultNotifierTimeoutSeconds))
	}

	return warnings
}
