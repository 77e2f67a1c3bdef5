package interactive

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

// ErrNotInteractive is returned when confirmation is required but stdin is
// not a terminal.
var ErrNotInteractive = errors.New("--confirm requires an interactive terminal")

// ExecuteConfirmer asks the operator to approve execution after a successful
// dry-run. It implements ports.Confirmer.
type ExecuteConfirmer struct {
	prompter    Prompter
	interactive func() bool
}

// NewExecuteConfirmer creates a confirmer backed by prompter.
func NewExecuteConfirmer(prompter Prompter) *ExecuteConfirmer {
	return &ExecuteConfirmer{prompter: prompter, interactive: IsTerminalInteractive}
}

// Confirm implements ports.Confirmer.
func (c *ExecuteConfirmer) Confirm(report *deploy.OutcomeReport) (bool, error) {
	if !c.interactive() {
		return false, ErrNotInteractive
	}

	label := fmt.Sprintf("Dry-run %s. Execute %s from %s", report.PredictedStatus, report.Kind, report.Sender)
	if report.PredictedGas != nil {
		label += fmt.Sprintf(" (estimated %s MIST)", report.PredictedGas.Net())
	}

	ok, err := c.prompter.ConfirmYesNo(label)
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return ok, nil
}
