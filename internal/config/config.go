// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads tool settings from defaults, an optional YAML file,
// OVERLAY_EXTRACT_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/overlay-extract/pkg/types"
)

const (
	envPrefix  = "OVERLAY_EXTRACT"
	configName = "overlay-extract"
)

// ErrInvalidConfig is returned when loaded settings fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Defaults returns the built-in settings.
func Defaults() types.Config {
	return types.Config{
		Select: types.SelectConfig{IncludeGlobal: false},
		Resolve: types.ResolveConfig{
			RoutePolicyPrefix: "VRF-",
			SuffixLength:      3,
		},
		Match:    types.MatchConfig{Mode: types.MatchSubstring},
		Pipeline: types.PipelineConfig{Workers: 1},
		Output:   types.OutputConfig{Dir: "overlay", Separator: "!"},
		History: types.HistoryConfig{
			Enabled: true,
			DB:      filepath.Join(".overlay-extract", "history.db"),
		},
		Log: types.LogConfig{Level: "info", Format: "console"},
	}
}

// Loader reads settings. Flags bound with Bind override every other
// source when set on the command line.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a Loader seeded with Defaults.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Defaults())
	return &Loader{v: v}
}

// Bind ties a config key (e.g. "pipeline.workers") to a flag. A nil flag
// is ignored.
func (l *Loader) Bind(key string, f *pflag.Flag) error {
	if f == nil {
		return nil
	}
	if err := l.v.BindPFlag(key, f); err != nil {
		return fmt.Errorf("binding flag %s: %w", f.Name, err)
	}
	return nil
}

// Load reads path, or searches ./overlay-extract.yaml and
// ~/.config/overlay-extract/overlay-extract.yaml when path is empty, and
// returns the validated settings with the file used ("" when none).
// A missing file is only an error when path was given explicitly.
func (l *Loader) Load(path string) (types.Config, string, error) {
	if path != "" {
		l.v.SetConfigFile(path)
	} else {
		l.v.SetConfigName(configName)
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			l.v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return types.Config{}, "", fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg types.Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return types.Config{}, "", fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, "", err
	}
	return cfg, l.v.ConfigFileUsed(), nil
}

// Validate checks cfg against its struct constraints.
func Validate(cfg types.Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("select.include_global", d.Select.IncludeGlobal)
	v.SetDefault("resolve.route_policy_prefix", d.Resolve.RoutePolicyPrefix)
	v.SetDefault("resolve.suffix_length", d.Resolve.SuffixLength)
	v.SetDefault("match.mode", string(d.Match.Mode))
	v.SetDefault("pipeline.workers", d.Pipeline.Workers)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.separator", d.Output.Separator)
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.db", d.History.DB)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}
