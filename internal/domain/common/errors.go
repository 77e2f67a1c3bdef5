// Package common holds error behaviours shared by the domain packages.
package common

import "errors"

// The presentation layer inspects these interfaces to decide how an error is
// displayed. Domain errors opt in by implementing them.

// SilenceUsageError is implemented by errors raised after the command line was
// parsed correctly, so printing usage would only add noise.
type SilenceUsageError interface {
	error
	ShouldSilenceUsage() bool
}

// UserFacingError carries a message meant to be shown verbatim.
type UserFacingError interface {
	error
	UserMessage() string
}

// RecoverableError suggests what the operator can do next.
type RecoverableError interface {
	error
	RecoveryHint() string
}

// ShouldSilenceUsage reports whether any error in the chain asks to hide usage.
func ShouldSilenceUsage(err error) bool {
	var sue SilenceUsageError
	if errors.As(err, &sue) {
		return sue.ShouldSilenceUsage()
	}
	return false
}

// GetUserMessage returns the first UserMessage in the chain, falling back to
// err.Error().
func GetUserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ufe UserFacingError
	if errors.As(err, &ufe) {
		return ufe.UserMessage()
	}
	return err.Error()
}

// GetRecoveryHint returns the first non-empty hint in the chain.
func GetRecoveryHint(err error) string {
	var re RecoverableError
	if errors.As(err, &re) {
		return re.RecoveryHint()
	}
	return ""
}
