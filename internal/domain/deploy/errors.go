package deploy

import (
	"fmt"
	"strings"
)

// BuildError is returned when the package compiler fails or its output
// cannot be used.
type BuildError struct {
	Path     string
	Message  string
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *BuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("build of %s failed: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("build of %s failed: %s", e.Path, e.Message)
}

func (e *BuildError) Unwrap() error { return e.Err }

// UserMessage includes the tail of the compiler output.
func (e *BuildError) UserMessage() string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	if out := strings.TrimSpace(e.Stderr); out != "" {
		sb.WriteString("\n\ncompiler stderr:\n")
		sb.WriteString(out)
	}
	if out := strings.TrimSpace(e.Stdout); out != "" {
		sb.WriteString("\n\ncompiler stdout:\n")
		sb.WriteString(out)
	}
	return sb.String()
}

func (e *BuildError) RecoveryHint() string {
	return "Run `sui move build` in the package directory to inspect the failure."
}

func (e *BuildError) ShouldSilenceUsage() bool { return true }

// KeyError is returned when the signing secret is missing or malformed.
type KeyError struct {
	Message string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("invalid signing key: %s", e.Message)
}

func (e *KeyError) RecoveryHint() string {
	return "Set PRIVATE_KEY to the hex encoded 32-byte Ed25519 secret of the deployer."
}

func (e *KeyError) ShouldSilenceUsage() bool { return true }

// Submission stages.
const (
	StageEncode  = "encode"
	StageDryRun  = "dry-run"
	StageSign    = "sign"
	StageExecute = "execute"
)

// SubmissionError is returned when preparing, simulating or executing a
// transaction fails for reasons outside the transaction itself.
type SubmissionError struct {
	Stage   string
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Stage, e.Message)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

func (e *SubmissionError) RecoveryHint() string {
	if e.Stage == StageExecute {
		return "The transaction may still have landed; check the sender's recent transactions before retrying."
	}
	return ""
}

func (e *SubmissionError) ShouldSilenceUsage() bool { return true }

// ValidationError is returned when deployment parameters are invalid.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) ShouldSilenceUsage() bool { return true }
