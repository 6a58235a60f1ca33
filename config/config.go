// Package config reads the configuration of the generator service.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vsariola/psymachine"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Listen         string // address to listen on, e.g. ":3000"
	MaxConcurrent  int    `yaml:"maxconcurrent"`  // generations running at the same time
	MaxTrackLength int    `yaml:"maxtracklength"` // longer requests are rejected
	AllowOrigin    string `yaml:"alloworigin,omitempty"`
	// Preset replaces the built-in default preset, if given.
	Preset *psymachine.Preset `yaml:",omitempty"`
}

//go:embed config.yml
var defaultConfigYaml []byte

func Default() Config {
	var config Config
	err := yaml.UnmarshalStrict(defaultConfigYaml, &config)
	if err != nil {
		panic(fmt.Errorf("failed to unmarshal config: %w", err))
	}
	return config
}

// Load returns the default config, overridden by the user config file in
// the user config directory if it exists, and by the PORT environment
// variable.
func Load() (Config, error) {
	config := Default()
	if configDir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(configDir, "psymachine", "config.yml")
		if err := ReadFile(path, &config); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return config, err
		}
	}
	config.applyEnv()
	return config, nil
}

// ReadFile overrides the fields of target with the ones given in a yaml
// file. Preset fields missing from the file keep their defaults.
func ReadFile(path string, target *Config) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if target.Preset == nil {
		preset := psymachine.DefaultPreset()
		target.Preset = &preset
	}
	if err := yaml.Unmarshal(bytes, target); err != nil {
		return fmt.Errorf("could not parse config file %v: %v", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Listen = ":" + port
	}
}

// DefaultPreset returns the preset the service falls back to for fields
// missing from a request.
func (c *Config) DefaultPreset() psymachine.Preset {
	if c.Preset != nil {
		return *c.Preset
	}
	return psymachine.DefaultPreset()
}
