package config

import "github.com/spf13/cobra"

// applyFlag overrides dst only when the flag was given on the command line,
// so an unset flag never masks a file or environment value.
func applyFlag[T any](cmd *cobra.Command, name string, dst *Value[T], get func(string) (T, error)) {
	if !cmd.Flags().Changed(name) {
		return
	}
	if v, err := get(name); err == nil {
		dst.set(&v, SourceFlag)
	}
}

// ApplyStringFlag sets dst from a string flag.
func ApplyStringFlag(cmd *cobra.Command, name string, dst *StringValue) {
	applyFlag(cmd, name, dst, cmd.Flags().GetString)
}

// ApplyBoolFlag sets dst from a bool flag.
func ApplyBoolFlag(cmd *cobra.Command, name string, dst *BoolValue) {
	applyFlag(cmd, name, dst, cmd.Flags().GetBool)
}

// ApplyUint64Flag sets dst from a uint64 flag.
func ApplyUint64Flag(cmd *cobra.Command, name string, dst *Uint64Value) {
	applyFlag(cmd, name, dst, cmd.Flags().GetUint64)
}
