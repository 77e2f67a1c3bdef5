package output

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

// Reporter renders an OutcomeReport for the operator.
type Reporter struct {
	w        io.Writer
	jsonMode bool
}

// NewReporter creates a Reporter. In JSON mode the report is written as a
// single indented JSON document.
func NewReporter(w io.Writer, jsonMode bool) *Reporter {
	return &Reporter{w: w, jsonMode: jsonMode}
}

// Report writes r.
func (p *Reporter) Report(r *deploy.OutcomeReport) error {
	if p.jsonMode {
		return p.writeJSON(r)
	}

	bold := color.New(color.Bold)
	fmt.Fprintln(p.w, CyanSeparator())
	bold.Fprintf(p.w, "%s outcome\n", r.Kind)
	fmt.Fprintln(p.w, CyanSeparator())

	p.field("Run", r.RunID)
	p.field("Network", r.Network)
	p.field("Sender", r.Sender.String())

	p.field("Dry-run status", statusText(r.PredictedStatus))
	if r.PredictedGas != nil {
		p.field("Dry-run gas", FormatMist(r.PredictedGas.Net()))
	}

	if !r.Executed {
		reason := r.AbortReason
		if reason == "" {
			reason = "not executed"
		}
		color.New(color.FgYellow).Fprintf(p.w, "%-16s %s\n", "Aborted:", reason)
		return nil
	}

	p.field("Status", statusText(r.ExecutedStatus))
	if g := r.GasUsed; g != nil {
		p.field("Gas used", FormatMist(g.Net()))
		p.field("  computation", FormatMistU64(g.ComputationCost))
		p.field("  storage", FormatMistU64(g.StorageCost))
		p.field("  rebate", FormatMistU64(g.StorageRebate))
		p.field("  non-refundable", FormatMistU64(g.NonRefundableStorageFee))
	}
	p.field("Digest", r.TransactionDigest)
	if r.PackageID != "" {
		p.field("Package", r.PackageID)
	}
	if r.UpgradeCapID != "" {
		p.field("UpgradeCap", r.UpgradeCapID)
	}
	return nil
}

// Build writes a summary of compiled bytecode.
func (p *Reporter) Build(path string, b *deploy.BuildOutput) error {
	if p.jsonMode {
		return p.writeJSON(b)
	}

	p.field("Package path", path)
	fmt.Fprintf(p.w, "%-16s %d\n", "Modules:", len(b.Modules))
	for i, m := range b.Modules {
		raw, err := base64.StdEncoding.DecodeString(m)
		if err != nil {
			fmt.Fprintf(p.w, "  [%d] invalid base64\n", i)
			continue
		}
		fmt.Fprintf(p.w, "  [%d] %d bytes\n", i, len(raw))
	}
	fmt.Fprintf(p.w, "%-16s %d\n", "Dependencies:", len(b.Dependencies))
	for _, d := range b.Dependencies {
		fmt.Fprintf(p.w, "  %s\n", d)
	}
	if len(b.Digest) > 0 {
		p.field("Digest", hex.EncodeToString(b.Digest))
	}
	return nil
}

// History writes ledger records, newest first.
func (p *Reporter) History(recs []*deploy.DeploymentRecord) error {
	if p.jsonMode {
		if recs == nil {
			recs = []*deploy.DeploymentRecord{}
		}
		return p.writeJSON(recs)
	}
	if len(recs) == 0 {
		fmt.Fprintln(p.w, "No deployments recorded.")
		return nil
	}

	fmt.Fprintf(p.w, "%-20s  %-8s  %-8s  %-8s  %-66s  %s\n", "TIME", "KIND", "NETWORK", "STATUS", "PACKAGE", "DIGEST")
	for _, r := range recs {
		fmt.Fprintf(p.w, "%-20s  %-8s  %-8s  %-8s  %-66s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.Kind, r.Network, r.Status, r.PackageID, r.TransactionDigest)
	}
	return nil
}

func (p *Reporter) field(label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(p.w, "%-16s %s\n", label+":", value)
}

func (p *Reporter) writeJSON(v interface{}) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func statusText(s *deploy.ExecutionStatus) string {
	switch {
	case s == nil:
		return color.YellowString("unknown")
	case s.Succeeded():
		return color.GreenString(s.String())
	default:
		return color.RedString(s.String())
	}
}
