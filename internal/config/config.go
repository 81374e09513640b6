// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads chaindemo settings from a config file, CHAINDEMO_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CHAINDEMO"

var (
	// ErrInvalidOutput is returned by Validate for an unknown output format.
	ErrInvalidOutput = errors.New("config: invalid output format")
	// ErrInvalidLogLevel is returned by Validate for an unknown log level.
	ErrInvalidLogLevel = errors.New("config: invalid log level")
)

// Config holds chaindemo settings.
type Config struct {
	// Trace enables per-step diagnostic scopes. Default false.
	Trace bool `mapstructure:"trace" yaml:"trace"`
	// Metrics prints step metrics in Prometheus text format after a run.
	Metrics bool `mapstructure:"metrics" yaml:"metrics"`
	// LogLevel is a zap level name.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// Output is one of table, json or yaml.
	Output string `mapstructure:"output" yaml:"output"`
	// OTLPEndpoint, when set, exports step spans over OTLP/HTTP.
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`
	// ServiceName is the OpenTelemetry service.name resource attribute.
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:    "info",
		Output:      OutputTable,
		ServiceName: "chaindemo",
	}
}

// Load reads settings into a Config.
// An empty path searches $HOME/.chaindemo/config.yaml and tolerates its
// absence; an explicit path must exist. Flags in fs that were set on the
// command line override file and environment values.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	d := Default()
	v.SetDefault("trace", d.Trace)
	v.SetDefault("metrics", d.Metrics)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("output", d.Output)
	v.SetDefault("otlp_endpoint", d.OTLPEndpoint)
	v.SetDefault("service_name", d.ServiceName)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".chaindemo"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if fs != nil {
		for _, key := range []string{"trace", "metrics", "log_level", "output", "otlp_endpoint", "service_name"} {
			f := fs.Lookup(strings.ReplaceAll(key, "_", "-"))
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutput, c.Output)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

// Level returns the zap level for LogLevel, defaulting to Info.
func (c Config) Level() zapcore.Level {
	l, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}
