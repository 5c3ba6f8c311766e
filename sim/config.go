// Simulation configuration: round-trip time, throughput, default server
// response time, and the browser's global concurrency cap. Loadable from
// YAML, and selectable by name from a small set of well-known network
// condition presets — the same strict-decode-plus-validate-plus-named-
// factory idiom as the teacher's PolicyBundle.

package sim

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable the core simulation reads. All fields are
// optional when loaded from YAML; zero values are replaced by the package
// defaults in NewConfig.
type Config struct {
	RTT                       float64 `yaml:"rtt_ms"`
	Throughput                float64 `yaml:"throughput_bps"`
	DefaultResponseTime       float64 `yaml:"default_response_time_ms"`
	MaximumConcurrentRequests int     `yaml:"max_concurrent_requests"`
}

// Package defaults, exactly as spec.md §6.
const (
	DefaultRTT                       = 150.0
	DefaultThroughput                = 1_638_400.0 // 1.6 Mbps, i.e. 1600 * 1024
	DefaultResponseTime              = 30.0
	DefaultMaximumConcurrentRequests = 10
)

// NewConfig returns the default configuration.
func NewConfig() Config {
	return Config{
		RTT:                       DefaultRTT,
		Throughput:                DefaultThroughput,
		DefaultResponseTime:       DefaultResponseTime,
		MaximumConcurrentRequests: DefaultMaximumConcurrentRequests,
	}
}

// applyDefaults fills zero-valued fields with package defaults. Used after
// YAML decoding, where an omitted field decodes to its zero value.
func (c Config) applyDefaults() Config {
	if c.RTT == 0 {
		c.RTT = DefaultRTT
	}
	if c.Throughput == 0 {
		c.Throughput = DefaultThroughput
	}
	if c.DefaultResponseTime == 0 {
		c.DefaultResponseTime = DefaultResponseTime
	}
	if c.MaximumConcurrentRequests == 0 {
		c.MaximumConcurrentRequests = DefaultMaximumConcurrentRequests
	}
	return c
}

// Validate rejects negative, NaN, or infinite parameters, and zero
// throughput or RTT — the simulator arithmetic divides by both.
func (c Config) Validate() error {
	if err := validatePositiveFinite("rtt_ms", c.RTT); err != nil {
		return err
	}
	if err := validatePositiveFinite("throughput_bps", c.Throughput); err != nil {
		return err
	}
	if math.IsNaN(c.DefaultResponseTime) || math.IsInf(c.DefaultResponseTime, 0) || c.DefaultResponseTime < 0 {
		return fmt.Errorf("default_response_time_ms must be a non-negative finite number, got %v", c.DefaultResponseTime)
	}
	if c.MaximumConcurrentRequests <= 0 {
		return fmt.Errorf("max_concurrent_requests must be positive, got %d", c.MaximumConcurrentRequests)
	}
	return nil
}

func validatePositiveFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a finite number, got %v", name, v)
	}
	if v <= 0 {
		return fmt.Errorf("%s must be positive, got %v", name, v)
	}
	return nil
}

// LoadConfig reads and strictly parses a YAML configuration file, applying
// package defaults to any field left unset, then validates the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var c Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	c = c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("validating config: %w", err)
	}
	return c, nil
}

// presets holds the named network-condition configurations, reintroduced
// from the original Lighthouse throttling presets that spec.md's
// distillation dropped. Keys are the only valid NewPresetConfig names.
var presets = map[string]Config{
	"mobile3gslow": {RTT: 400, Throughput: 400 * 1024, DefaultResponseTime: DefaultResponseTime, MaximumConcurrentRequests: DefaultMaximumConcurrentRequests},
	"mobile3gfast": {RTT: 150, Throughput: 1_638_400, DefaultResponseTime: DefaultResponseTime, MaximumConcurrentRequests: DefaultMaximumConcurrentRequests},
	"mobile4g":     {RTT: 70, Throughput: 9 * 1024 * 1024, DefaultResponseTime: DefaultResponseTime, MaximumConcurrentRequests: DefaultMaximumConcurrentRequests},
	"cable":        {RTT: 28, Throughput: 5 * 1024 * 1024, DefaultResponseTime: DefaultResponseTime, MaximumConcurrentRequests: DefaultMaximumConcurrentRequests},
	"wifi":         {RTT: 2, Throughput: 30 * 1024 * 1024, DefaultResponseTime: DefaultResponseTime, MaximumConcurrentRequests: DefaultMaximumConcurrentRequests},
}

// IsValidPreset returns true if name is a recognized network condition
// preset.
func IsValidPreset(name string) bool {
	_, ok := presets[name]
	return ok
}

// ValidPresetNames returns the sorted list of recognized preset names.
func ValidPresetNames() []string {
	names := make([]string, 0, len(presets))
	for k := range presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// NewPresetConfig returns the Config for a named network condition. It
// errors on unrecognized names rather than panicking — unlike the
// teacher's policy-name factories, preset names routinely come from
// user-supplied CLI flags, where a typo is an ordinary runtime error, not
// a programmer error.
func NewPresetConfig(name string) (Config, error) {
	c, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown network preset %q; valid options: %s", name, strings.Join(ValidPresetNames(), ", "))
	}
	return c, nil
}
