// Package config holds the generation policy knobs.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/on-the-ground/precalc/domain"
	"github.com/on-the-ground/precalc/model"
)

// Config is the generation policy. Its zero value is not usable; start from Default.
type Config struct {
	// MaxTableSize caps the number of entries of any generated table.
	MaxTableSize uint64 `yaml:"max_table_size,omitempty"`
	// DefaultMode applies to declarations that do not name a mode.
	DefaultMode model.Mode `yaml:"default_mode,omitempty"`
}

func Default() Config {
	return Config{
		MaxTableSize: domain.DefaultMaxTableSize,
		DefaultMode:  model.DefaultMode,
	}
}

func (c Config) Validate() error {
	if c.MaxTableSize == 0 {
		return fmt.Errorf("%s must be positive", ConfigPrecalcMaxTableSize)
	}
	switch c.DefaultMode {
	case model.ModePanic, model.ModeOption, model.ModeFallback:
	default:
		return fmt.Errorf("%s: unknown mode %v", ConfigPrecalcDefaultMode, c.DefaultMode)
	}
	return nil
}

// Merge overlays the non-zero fields of o onto c.
func (c Config) Merge(o Config) Config {
	if o.MaxTableSize != 0 {
		c.MaxTableSize = o.MaxTableSize
	}
	if o.DefaultMode != model.DefaultMode {
		c.DefaultMode = o.DefaultMode
	}
	return c
}

// Set assigns one knob by its dotted key.
func (c *Config) Set(key, value string) error {
	switch key {
	case ConfigPrecalcMaxTableSize:
		n, err := strconv.ParseUint(strings.ReplaceAll(value, "_", ""), 0, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.MaxTableSize = n
	case ConfigPrecalcDefaultMode:
		m, err := model.ParseMode(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.DefaultMode = m
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}
