package crosslight

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// GreenExtension is one bucket of the adaptive green-time policy: every
// vehicle count at or above Threshold earns ExtraSeconds on top of the
// base green, unless a higher bucket also matches.
type GreenExtension struct {
	Threshold    int `yaml:"threshold"`
	ExtraSeconds int `yaml:"extra_seconds"`
}

// Config holds every tunable of the controller. All durations are in
// whole ticks ("seconds" in the operational sense: one tick is
// SamplesPerTick sampler invocations spaced SampleInterval apart).
type Config struct {
	BaseGreenSeconds  int `yaml:"base_green_seconds"`
	YellowSeconds     int `yaml:"yellow_seconds"`
	PedestrianSeconds int `yaml:"pedestrian_seconds"`

	SamplesPerTick   int `yaml:"samples_per_tick"`
	SampleIntervalMS int `yaml:"sample_interval_ms"`

	// Extensions must be sorted by ascending threshold. Only the highest
	// matching bucket applies.
	Extensions []GreenExtension `yaml:"extensions"`
}

// DefaultConfig returns the deployed timing policy: 10 s base green with
// +10/+20/+30 s at counts of 5/10/15, 3 s yellow, 8 s pedestrian
// crossing, and a tick of 50 samples at 20 ms.
func DefaultConfig() Config {
	return Config{
		BaseGreenSeconds:  DefaultBaseGreenSeconds,
		YellowSeconds:     DefaultYellowSeconds,
		PedestrianSeconds: DefaultPedestrianSeconds,
		SamplesPerTick:    DefaultSamplesPerTick,
		SampleIntervalMS:  int(DefaultSampleInterval / time.Millisecond),
		Extensions: []GreenExtension{
			{Threshold: 5, ExtraSeconds: 10},
			{Threshold: 10, ExtraSeconds: 20},
			{Threshold: 15, ExtraSeconds: 30},
		},
	}
}

// LoadConfig reads a YAML configuration file. Fields absent from the file
// keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, NewConfigurationError("Config", fmt.Sprintf("cannot read %s: %v", path, err))
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, NewConfigurationError("Config", fmt.Sprintf("cannot parse %s: %v", path, err))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks that every duration is positive and that the extension
// buckets are strictly ascending in both threshold and extra seconds
// (ascending extras keep GreenSeconds monotonic in the vehicle count).
func (c Config) Validate() error {
	if c.BaseGreenSeconds < 1 {
		return NewConfigurationError("Config", "base_green_seconds must be at least 1")
	}
	if c.YellowSeconds < 1 {
		return NewConfigurationError("Config", "yellow_seconds must be at least 1")
	}
	if c.PedestrianSeconds < 1 {
		return NewConfigurationError("Config", "pedestrian_seconds must be at least 1")
	}
	if c.SamplesPerTick < 1 {
		return NewConfigurationError("Config", "samples_per_tick must be at least 1")
	}
	if c.SampleIntervalMS < 0 {
		return NewConfigurationError("Config", "sample_interval_ms must not be negative")
	}

	for i, ext := range c.Extensions {
		if ext.Threshold < 1 {
			return NewConfigurationError("Config", fmt.Sprintf("extension %d: threshold must be at least 1", i))
		}
		if ext.ExtraSeconds < 1 {
			return NewConfigurationError("Config", fmt.Sprintf("extension %d: extra_seconds must be at least 1", i))
		}
		if i > 0 {
			prev := c.Extensions[i-1]
			if ext.Threshold <= prev.Threshold {
				return NewConfigurationError("Config", fmt.Sprintf("extension %d: thresholds must be strictly ascending", i))
			}
			if ext.ExtraSeconds <= prev.ExtraSeconds {
				return NewConfigurationError("Config", fmt.Sprintf("extension %d: extra_seconds must be strictly ascending", i))
			}
		}
	}

	return nil
}

// SampleInterval returns the per-sample pause as a duration.
func (c Config) SampleInterval() time.Duration {
	return time.Duration(c.SampleIntervalMS) * time.Millisecond
}
