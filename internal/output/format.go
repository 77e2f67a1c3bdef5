package output

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	"github.com/fatih/color"
)

const (
	// SeparatorWidth is the width of separator lines.
	SeparatorWidth = 60

	// SeparatorChar is the character used for separator lines.
	SeparatorChar = "─"

	// MistPerSUI is the number of MIST in one SUI.
	MistPerSUI = 1_000_000_000
)

// Separator returns a separator line of the default width.
func Separator() string {
	return strings.Repeat(SeparatorChar, SeparatorWidth)
}

// ColoredSeparator returns a colored separator line.
func ColoredSeparator(c *color.Color) string {
	return c.Sprint(Separator())
}

// RedSeparator returns a red separator line for errors.
func RedSeparator() string {
	return ColoredSeparator(color.New(color.FgRed))
}

// CyanSeparator returns a cyan separator line for info.
func CyanSeparator() string {
	return ColoredSeparator(color.New(color.FgCyan))
}

// FormatMist renders an amount of MIST with its SUI equivalent, for example
// "1500000000 MIST (1.5 SUI)".
func FormatMist(mist math.Int) string {
	sui := math.LegacyNewDecFromInt(mist).QuoInt64(MistPerSUI)
	s := strings.TrimRight(strings.TrimRight(sui.String(), "0"), ".")
	if s == "" || s == "-" {
		s = "0"
	}
	return fmt.Sprintf("%s MIST (%s SUI)", mist, s)
}

// FormatMistU64 is FormatMist for a uint64 amount.
func FormatMistU64(mist uint64) string {
	return FormatMist(math.NewIntFromUint64(mist))
}
