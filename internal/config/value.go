package config

import "time"

// ConfigSource names the layer a configuration value came from.
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceConfigFile  ConfigSource = "config file"
	SourceEnvironment ConfigSource = "environment"
	SourceFlag        ConfigSource = "flag"
)

func (s ConfigSource) String() string {
	return string(s)
}

// Value is a configuration value tagged with the layer that set it.
type Value[T any] struct {
	Value  T
	Source ConfigSource
}

// Default returns v tagged as a built-in default.
func Default[T any](v T) Value[T] {
	return Value[T]{Value: v, Source: SourceDefault}
}

// set replaces the value if the layer provided one.
func (v *Value[T]) set(x *T, src ConfigSource) {
	if x != nil {
		*v = Value[T]{Value: *x, Source: src}
	}
}

type (
	StringValue   = Value[string]
	StringsValue  = Value[[]string]
	Uint64Value   = Value[uint64]
	BoolValue     = Value[bool]
	DurationValue = Value[time.Duration]
)
