// Package builder compiles Move packages with the sui CLI.
package builder

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
	"github.com/altuslabsxyz/suideploy/internal/infrastructure/executor"
	"github.com/altuslabsxyz/suideploy/internal/output"
)

// DefaultBinary is the compiler used when none is configured.
const DefaultBinary = "sui"

// MoveBuilder implements ports.PackageCompiler by running
// `sui move build --dump-bytecode-as-base64`.
type MoveBuilder struct {
	binary    string
	extraArgs []string
	exec      executor.CommandExecutor
	logger    *output.Logger
	timeout   time.Duration
}

// NewMoveBuilder creates a MoveBuilder. An empty binary selects DefaultBinary.
func NewMoveBuilder(binary string, extraArgs []string, exec executor.CommandExecutor, logger *output.Logger) *MoveBuilder {
	if binary == "" {
		binary = DefaultBinary
	}
	if exec == nil {
		exec = executor.NewOSCommandExecutor()
	}
	if logger == nil {
		logger = output.DefaultLogger
	}
	return &MoveBuilder{
		binary:    binary,
		extraArgs: extraArgs,
		exec:      exec,
		logger:    logger,
	}
}

// WithTimeout bounds each Build call. Zero means no limit.
func (b *MoveBuilder) WithTimeout(d time.Duration) *MoveBuilder {
	b.timeout = d
	return b
}

// Args returns the compiler arguments for path.
func (b *MoveBuilder) Args(path string) []string {
	args := []string{"move", "build", "--dump-bytecode-as-base64", "-p", path}
	return append(args, b.extraArgs...)
}

// Build runs the compiler and parses its JSON dump.
func (b *MoveBuilder) Build(ctx context.Context, path string, requireDigest bool) (*deploy.BuildOutput, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	args := b.Args(path)
	b.logger.Debug("Running %s %s", b.binary, strings.Join(args, " "))

	res, err := b.exec.Run(ctx, b.binary, args...)
	if err != nil {
		msg := "compiler exited with an error"
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			msg = fmt.Sprintf("compiler did not finish within %s", b.timeout)
		}
		berr := &deploy.BuildError{Path: path, Message: msg, Err: err}
		if res != nil {
			berr.Stdout = string(res.Stdout)
			berr.Stderr = string(res.Stderr)
			berr.ExitCode = res.ExitCode
		}
		return nil, berr
	}

	out, err := ParseBuildOutput(res.Stdout)
	if err == nil {
		err = out.Check(requireDigest)
	}
	if err != nil {
		return nil, &deploy.BuildError{
			Path:     path,
			Message:  "unusable compiler output",
			Stdout:   string(res.Stdout),
			Stderr:   string(res.Stderr),
			ExitCode: res.ExitCode,
			Err:      err,
		}
	}
	return out, nil
}

// CLIVersion returns the first line of `sui --version`.
func (b *MoveBuilder) CLIVersion(ctx context.Context) (string, error) {
	res, err := b.exec.Run(ctx, b.binary, "--version")
	if err != nil {
		return "", fmt.Errorf("%s --version: %w", b.binary, err)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(res.Stdout)), "\n")
	return line, nil
}

// dump is the JSON object printed by --dump-bytecode-as-base64.
type dump struct {
	Modules      []string        `json:"modules"`
	Dependencies []string        `json:"dependencies"`
	Digest       json.RawMessage `json:"digest"`
}

// ParseBuildOutput extracts the bytecode dump from compiler stdout. Anything
// printed before the JSON object, such as dependency fetch notices, is skipped.
func ParseBuildOutput(stdout []byte) (*deploy.BuildOutput, error) {
	start := bytes.IndexByte(stdout, '{')
	if start < 0 {
		return nil, fmt.Errorf("no JSON object in compiler output")
	}

	var d dump
	dec := json.NewDecoder(bytes.NewReader(stdout[start:]))
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to parse compiler output: %w", err)
	}

	digest, err := parseDigest(d.Digest)
	if err != nil {
		return nil, err
	}
	return &deploy.BuildOutput{
		Modules:      d.Modules,
		Dependencies: d.Dependencies,
		Digest:       digest,
	}, nil
}

// parseDigest accepts the CLI's byte array form as well as hex or base64
// strings.
func parseDigest(raw json.RawMessage) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	switch raw[0] {
	case '[':
		var ints []int
		if err := json.Unmarshal(raw, &ints); err != nil {
			return nil, fmt.Errorf("invalid digest: %w", err)
		}
		out := make([]byte, len(ints))
		for i, v := range ints {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("invalid digest: byte %d out of range: %d", i, v)
			}
			out[i] = byte(v)
		}
		return out, nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("invalid digest: %w", err)
		}
		if b, err := hex.DecodeString(strings.TrimPrefix(s, "0x")); err == nil {
			return b, nil
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid digest %q: neither hex nor base64", s)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("invalid digest: unexpected JSON %s", string(raw))
	}
}
