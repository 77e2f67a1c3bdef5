// Package version provides build information and the version command.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Build-time variables injected via ldflags:
//
//	-X github.com/altuslabsxyz/suideploy/internal/version.Version={{.Version}}
//	-X github.com/altuslabsxyz/suideploy/internal/version.GitCommit={{.FullCommit}}
//	-X github.com/altuslabsxyz/suideploy/internal/version.BuildDate={{.Date}}
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info contains version and build information.
type Info struct {
	Name      string   `json:"name" yaml:"name"`
	Version   string   `json:"version" yaml:"version"`
	GitCommit string   `json:"commit" yaml:"commit"`
	BuildDate string   `json:"build_date,omitempty" yaml:"build_date,omitempty"`
	GoVersion string   `json:"go" yaml:"go"`
	SuiCLI    string   `json:"sui_cli,omitempty" yaml:"sui_cli,omitempty"`
	BuildDeps []string `json:"build_deps,omitempty" yaml:"build_deps,omitempty"`
}

// NewInfo creates an Info for the named binary.
func NewInfo(name string) Info {
	return Info{
		Name:      name,
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: fmt.Sprintf("go version %s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
	}
}

// WithBuildDeps populates the module dependencies from runtime/debug.
func (i Info) WithBuildDeps() Info {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return i
	}

	deps := make([]string, 0, len(buildInfo.Deps))
	for _, dep := range buildInfo.Deps {
		s := dep.Path + "@" + dep.Version
		if dep.Replace != nil {
			s += " => " + dep.Replace.Path + "@" + dep.Replace.Version
		}
		deps = append(deps, s)
	}
	sort.Strings(deps)
	i.BuildDeps = deps
	return i
}

// String returns a short human readable form.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s version %s\n", i.Name, i.Version)
	fmt.Fprintf(&sb, "  commit:     %s\n", i.GitCommit)
	fmt.Fprintf(&sb, "  build date: %s\n", i.BuildDate)
	fmt.Fprintf(&sb, "  go:         %s\n", i.GoVersion)
	if i.SuiCLI != "" {
		fmt.Fprintf(&sb, "  sui cli:    %s\n", i.SuiCLI)
	}
	return sb.String()
}

// LongString returns the YAML form, including build dependencies when set.
func (i Info) LongString() string {
	data, err := yaml.Marshal(i)
	if err != nil {
		return i.String()
	}
	return string(data)
}

// CLIVersionFunc reports the version of the external sui binary.
type CLIVersionFunc func(ctx context.Context) (string, error)

// cliVersionTimeout bounds the sui --version call made by --long.
const cliVersionTimeout = 5 * time.Second

// NewCmd creates the version command. With --long it also asks cliVersion for
// the sui CLI version; a lookup failure is shown instead of the version. The
// inherited --json flag selects JSON output.
func NewCmd(name string, cliVersion CLIVersionFunc) *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print version information. Use --long for build dependencies and the sui CLI version.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := NewInfo(name)
			if long {
				info = info.WithBuildDeps()
				if cliVersion != nil {
					ctx, cancel := context.WithTimeout(cmd.Context(), cliVersionTimeout)
					defer cancel()
					v, err := cliVersion(ctx)
					if err != nil {
						v = "unavailable (" + err.Error() + ")"
					}
					info.SuiCLI = v
				}
			}

			jsonOutput, _ := cmd.Flags().GetBool("json")
			return write(cmd.OutOrStdout(), info, long, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&long, "long", false, "Show build dependencies and the sui CLI version")
	return cmd
}

func write(w io.Writer, info Info, long, jsonOutput bool) error {
	switch {
	case jsonOutput:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case long:
		_, err := io.WriteString(w, info.LongString())
		return err
	default:
		_, err := io.WriteString(w, info.String())
		return err
	}
}
