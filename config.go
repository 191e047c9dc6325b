package quantor

import (
	"fmt"

	"github.com/viant/quantor/service/engine"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the simulator
// configuration. It can be populated from JSON or YAML; the zero-value
// is useful – nested fields inherit their package defaults.
type Config struct {
	Engine engine.Config `json:"engine" yaml:"engine"`
	HTTP   HTTPConfig    `json:"http" yaml:"http"`
	// EventLogURL is the destination of the transition log; any scheme
	// the file-system abstraction supports works (file://, mem://, s3://).
	// Empty disables the log sink.
	EventLogURL string        `json:"eventLogURL" yaml:"eventLogURL"`
	Tracing     TracingConfig `json:"tracing" yaml:"tracing"`
}

// HTTPConfig configures the HTTP control surface.
type HTTPConfig struct {
	ListenAddress string `json:"listenAddress" yaml:"listenAddress"`
}

// TracingConfig configures OpenTelemetry span export.
type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName" yaml:"serviceName"`
	ServiceVersion string `json:"serviceVersion" yaml:"serviceVersion"`
	OutputFile     string `json:"outputFile" yaml:"outputFile"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: engine.DefaultConfig(),
		HTTP: HTTPConfig{
			ListenAddress: ":8080",
		},
		Tracing: TracingConfig{
			ServiceName:    "quantor",
			ServiceVersion: "dev",
		},
	}
}

// ParseYAML decodes a Config from YAML bytes, layered over the package
// defaults.
func ParseYAML(data []byte) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to decode config YAML: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	return c.Engine.Validate()
}
