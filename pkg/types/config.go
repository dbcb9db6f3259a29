// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MatchMode selects how cross-reference keys are compared with lines.
type MatchMode string

const (
	// MatchSubstring treats any line containing the key as a reference.
	MatchSubstring MatchMode = "substring"

	// MatchStrict requires the key to appear as a whole whitespace token.
	MatchStrict MatchMode = "strict"
)

// SelectConfig holds settings for interface selection.
type SelectConfig struct {
	// IncludeGlobal emits matching interfaces that declare no VRF with the
	// NoAttribute sentinel.
	IncludeGlobal bool `json:"include_global" yaml:"include_global" mapstructure:"include_global"`
}

// ResolveConfig holds settings for cross-reference resolution.
type ResolveConfig struct {
	// RoutePolicyPrefix is stripped from the route-policy base name when
	// present (default "VRF-"). VRFs carry it, route-policies do not.
	RoutePolicyPrefix string `json:"route_policy_prefix" yaml:"route_policy_prefix" mapstructure:"route_policy_prefix"`

	// SuffixLength is the number of trailing variant characters dropped
	// from a VRF name to get the route-policy base name (default 3).
	SuffixLength int `json:"suffix_length" yaml:"suffix_length" mapstructure:"suffix_length" validate:"gte=0,lte=16"`
}

// MatchConfig holds the matching mode shared by resolution and extraction.
type MatchConfig struct {
	Mode MatchMode `json:"mode" yaml:"mode" mapstructure:"mode" validate:"oneof=substring strict"`
}

// PipelineConfig holds settings for the run as a whole.
type PipelineConfig struct {
	// Workers bounds per-entry fan-out (default 1, sequential).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers" validate:"gte=1,lte=64"`
}

// OutputConfig holds settings for the artifact writer.
type OutputConfig struct {
	// Dir is the existing directory artifacts are written to.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir" validate:"required"`

	// Separator is the line written after each delimited block (default "!").
	Separator string `json:"separator" yaml:"separator" mapstructure:"separator" validate:"required"`
}

// HistoryConfig holds settings for the run ledger.
type HistoryConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	DB      string `json:"db" yaml:"db" mapstructure:"db" validate:"required_if=Enabled true"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"oneof=console json"`
}

// Config groups every setting of the tool.
type Config struct {
	Select   SelectConfig   `json:"select" yaml:"select" mapstructure:"select"`
	Resolve  ResolveConfig  `json:"resolve" yaml:"resolve" mapstructure:"resolve"`
	Match    MatchConfig    `json:"match" yaml:"match" mapstructure:"match"`
	Pipeline PipelineConfig `json:"pipeline" yaml:"pipeline" mapstructure:"pipeline"`
	Output   OutputConfig   `json:"output" yaml:"output" mapstructure:"output"`
	History  HistoryConfig  `json:"history" yaml:"history" mapstructure:"history"`
	Log      LogConfig      `json:"log" yaml:"log" mapstructure:"log"`
}
