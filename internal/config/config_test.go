package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/evergreen-digital/contract-handover/pkg/constants"
	"gopkg.in/yaml.v3"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfigurationDefaults(t *testing.T) {
	conf, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration(\"\") error = %v", err)
	}
	if conf.Server.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %q, expected %q", conf.Server.Address, constants.DefaultServerAddress)
	}
	if conf.Notifier.TimeoutSeconds != constants.DefaultNotifierTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, expected %d", conf.Notifier.TimeoutSeconds, constants.DefaultNotifierTimeoutSeconds)
	}
	if conf.Notifier.Endpoint != "" {
		t.Errorf("Endpoint = %q, expected empty default", conf.Notifier.Endpoint)
	}
}

func TestLoadConfigurationFromFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  address: ":9090"
notifier:
  endpoint: "https://hooks.example.com/catch/handover"
  timeoutSeconds: 30
logging:
  level: debug
  format: console
`)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.Server.Address != ":9090" {
		t.Errorf("Address = %q, expected :9090", conf.Server.Address)
	}
	if conf.Notifier.Endpoint != "https://hooks.example.com/catch/handover" {
		t.Errorf("Endpoint = %q", conf.Notifier.Endpoint)
	}
	if conf.NotifierTimeout() != 30*time.Second {
		t.Errorf("NotifierTimeout() = %v, expected 30s", conf.NotifierTimeout())
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("unexpected logging config %+v", conf.Logging)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	tests := []struct {
		name           string
		conf           Configuration
		expectFragment string
	}{
		{
			name:           "Empty endpoint warns delivery disabled",
			conf:           Configuration{},
			expectFragment: "no notifier endpoint configured",
		},
		{
			name: "Relative endpoint warns",
			conf: Configuration{
				Notifier: NotifierConfig{Endpoint: "hooks.example.com/catch"},
			},
			expectFragment: "not an absolute URL",
		},
		{
			name: "Negative timeout warns",
			conf: Configuration{
				Notifier: NotifierConfig{
					Endpoint:       "https://hooks.example.com/catch",
					TimeoutSeconds: -5,
				},
			},
			expectFragment: "is negative",
		},
		{
			name: "Valid configuration has no warnings",
			conf: Configuration{
				Notifier: NotifierConfig{
					Endpoint:       "https://hooks.example.com/catch",
					TimeoutSeconds: 10,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.conf.ValidateConfiguration()
			if tt.expectFragment == "" {
				if len(warnings) != 0 {
					t.Errorf("expected no warnings, got %v", warnings)
				}
				return
			}
			found := false
			for _, warning := range warnings {
				if strings.Contains(warning, tt.expectFragment) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected a warning containing %q, got %v", tt.expectFragment, warnings)
			}
		})
	}
}

func TestDumpRoundTrip(t *testing.T) {
	conf := Configuration{
		Server: ServerConfig{Address: ":9090"},
		Notifier: NotifierConfig{
			Endpoint:       "https://hooks.example.com/catch",
			TimeoutSeconds: 15,
		},
		Logging: LoggingConfig{Level: "debug", Format: "console"},
	}

	dump, err := conf.Dump()
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	var decoded Configuration
	if err := yaml.Unmarshal([]byte(dump), &decoded); err != nil {
		t.Fatalf("Dump() output is not valid YAML: %v", err)
	}
	if decoded != conf {
		t.Errorf("round trip mismatch: %+v vs %+v", decoded, conf)
	}
}

func TestNotifierTimeoutFallsBackToDefault(t *testing.T) {
	conf := Configuration{Notifier: NotifierConfig{TimeoutSeconds: -1}}
	if got := conf.NotifierTimeout(); got != constants.DefaultNotifierTimeoutSeconds*time.Second {
		t.Errorf("NotifierTimeout() = %v, expected the default", got)
	}
}
