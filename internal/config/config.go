// Package config loads the renderer configuration file.
package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	mp3Command = "ffmpeg -hide_banner -loglevel error -y -i {in} -codec:a libmp3lame -q:a 1 {out}"
	oggCommand = "ffmpeg -hide_banner -loglevel error -y -i {in} -codec:a libvorbis -q:a 9 {out}"
)

type Encoder struct {
	Enabled   bool   `yaml:"enabled"`
	Command   string `yaml:"command"`
	Extension string `yaml:"extension"`
}

type Config struct {
	SampleRate int     `yaml:"sample_rate"`
	Seed       int64   `yaml:"seed"`
	OutputDir  string  `yaml:"output_dir"`
	LogLevel   string  `yaml:"log_level"`
	Encoder    Encoder `yaml:"encoder"`
}

// Default is the configuration used when no file is given.
func Default() Config { return DefaultFor(44100) }

// DefaultFor picks the encoder that suits sampleRate.
func DefaultFor(sampleRate int) Config {
	cfg := Config{SampleRate: sampleRate}
	cfg.setDefaults()
	return cfg
}

var envVarPattern = regexp.MustCompile(`\$\{?(\w+)\}?`)

// interpolateEnvVars replaces ${VAR} and $VAR with the environment value.
func interpolateEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(name string) string {
		name = strings.TrimPrefix(name, "$")
		name = strings.TrimPrefix(name, "{")
		name = strings.TrimSuffix(name, "}")
		return os.Getenv(name)
	})
}

// LoadConfig reads path, interpolates environment variables and fills in
// defaults for anything left out.
func LoadConfig(path string) (Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "expand %s", path)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", expanded)
	}
	var cfg Config
	if err := yaml.Unmarshal([]byte(interpolateEnvVars(string(data))), &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parse config %s", expanded)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.OutputDir, err = homedir.Expand(cfg.OutputDir); err != nil {
		return Config{}, errors.Wrapf(err, "expand output_dir %s", cfg.OutputDir)
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.SampleRate == 0 {
		c.SampleRate = 44100
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.Encoder.Command == "" {
		if c.SampleRate == 48000 {
			c.Encoder.Command, c.Encoder.Extension = oggCommand, "ogg"
		} else {
			c.Encoder.Command, c.Encoder.Extension = mp3Command, "mp3"
		}
	}
	if c.Encoder.Extension == "" {
		c.Encoder.Extension = "mp3"
	}
}

// Validate rejects sample rates the renderer does not support.
func (c Config) Validate() error {
	if c.SampleRate != 44100 && c.SampleRate != 48000 {
		return errors.Errorf("sample_rate must be 44100 or 48000, got %d", c.SampleRate)
	}
	return nil
}
