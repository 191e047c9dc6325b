package quantor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseYAML(t *testing.T) {
	data := []byte(`
engine:
  timeQuantumMs: 200
  agingFactorSec: 10
  ioSimulation:
    enabled: false
http:
  listenAddress: ":9090"
eventLogURL: file:///var/log/quantor/sched_stats.log
`)
	config, err := ParseYAML(data)
	assert.NoError(t, err)
	assert.Equal(t, 200, config.Engine.TimeQuantumMs)
	assert.Equal(t, 10, config.Engine.AgingFactorSec)
	assert.False(t, config.Engine.IOSimulation.Enabled)
	assert.Equal(t, ":9090", config.HTTP.ListenAddress)
	assert.Equal(t, "file:///var/log/quantor/sched_stats.log", config.EventLogURL)

	// Unspecified sections keep their defaults.
	assert.Equal(t, DefaultConfig().Tracing.ServiceName, config.Tracing.ServiceName)
}

func TestParseYAMLRejectsInvalid(t *testing.T) {
	_, err := ParseYAML([]byte("engine:\n  timeQuantumMs: 5\n"))
	assert.Error(t, err)

	_, err = ParseYAML([]byte(":::not yaml"))
	assert.Error(t, err)
}
