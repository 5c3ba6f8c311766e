package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_MatchesSpecDefaults(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, 150.0, c.RTT)
	assert.Equal(t, 1_638_400.0, c.Throughput)
	assert.Equal(t, 30.0, c.DefaultResponseTime)
	assert.Equal(t, 10, c.MaximumConcurrentRequests)
}

func TestConfig_Validate_RejectsNonPositiveRTT(t *testing.T) {
	c := NewConfig()
	c.RTT = 0
	assert.Error(t, c.Validate())
}

func TestConfig_Validate_RejectsNegativeThroughput(t *testing.T) {
	c := NewConfig()
	c.Throughput = -1
	assert.Error(t, c.Validate())
}

func TestConfig_Validate_RejectsNonPositiveConcurrency(t *testing.T) {
	c := NewConfig()
	c.MaximumConcurrentRequests = 0
	assert.Error(t, c.Validate())
}

func TestConfig_Validate_AcceptsDefaults(t *testing.T) {
	assert.NoError(t, NewConfig().Validate())
}

func TestLoadConfig_AppliesDefaultsToOmittedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rtt_ms: 50\n"), 0o644))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 50.0, c.RTT)
	assert.Equal(t, DefaultThroughput, c.Throughput)
	assert.Equal(t, DefaultMaximumConcurrentRequests, c.MaximumConcurrentRequests)
}

func TestLoadConfig_RejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rttt_ms: 50\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestNewPresetConfig_KnownPreset(t *testing.T) {
	c, err := NewPresetConfig("cable")
	require.NoError(t, err)
	assert.NoError(t, c.Validate())
}

func TestNewPresetConfig_UnknownNameReturnsError(t *testing.T) {
	_, err := NewPresetConfig("dialup")
	assert.Error(t, err)
}

func TestIsValidPreset_AndValidPresetNames(t *testing.T) {
	for _, name := range ValidPresetNames() {
		assert.True(t, IsValidPreset(name))
	}
	assert.False(t, IsValidPreset("nonexistent"))
}
