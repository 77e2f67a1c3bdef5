package interactive

import (
	"errors"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

type mockPrompter struct {
	answer bool
	err    error
	labels []string
}

func (m *mockPrompter) ConfirmYesNo(label string) (bool, error) {
	m.labels = append(m.labels, label)
	return m.answer, m.err
}

func newTestConfirmer(p Prompter, tty bool) *ExecuteConfirmer {
	c := NewExecuteConfirmer(p)
	c.interactive = func() bool { return tty }
	return c
}

func report() *deploy.OutcomeReport {
	return &deploy.OutcomeReport{
		Kind:            deploy.KindUpgrade,
		Sender:          deploy.Address{0x11},
		PredictedStatus: &deploy.ExecutionStatus{Status: deploy.StatusSuccess},
		PredictedGas:    &deploy.GasSummary{ComputationCost: 700, StorageCost: 300},
	}
}

func TestExecuteConfirmer_Answers(t *testing.T) {
	yes := &mockPrompter{answer: true}
	ok, err := newTestConfirmer(yes, true).Confirm(report())
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, yes.labels, 1)
	assert.Contains(t, yes.labels[0], "Execute upgrade")
	assert.Contains(t, yes.labels[0], "estimated 1000 MIST")

	no := &mockPrompter{answer: false}
	ok, err = newTestConfirmer(no, true).Confirm(report())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExecuteConfirmer_InterruptDeclines(t *testing.T) {
	for _, perr := range []error{promptui.ErrInterrupt, promptui.ErrEOF} {
		ok, err := newTestConfirmer(&mockPrompter{err: perr}, true).Confirm(report())
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestExecuteConfirmer_PromptFailure(t *testing.T) {
	_, err := newTestConfirmer(&mockPrompter{err: errors.New("tty gone")}, true).Confirm(report())
	assert.ErrorContains(t, err, "tty gone")
}

func TestExecuteConfirmer_RequiresTerminal(t *testing.T) {
	p := &mockPrompter{answer: true}
	_, err := newTestConfirmer(p, false).Confirm(report())
	assert.ErrorIs(t, err, ErrNotInteractive)
	assert.Empty(t, p.labels)
}
