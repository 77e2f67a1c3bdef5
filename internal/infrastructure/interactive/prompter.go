// Package interactive provides terminal prompts.
package interactive

import (
	"errors"
	"os"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// Prompter abstracts interactive prompt operations for testing.
type Prompter interface {
	// ConfirmYesNo shows label with a [y/N] suffix. A "no" answer returns
	// false with a nil error; Ctrl+C returns promptui.ErrInterrupt.
	ConfirmYesNo(label string) (bool, error)
}

// PrompterAdapter implements Prompter using promptui.
type PrompterAdapter struct{}

// NewPrompterAdapter creates a promptui-based prompter.
func NewPrompterAdapter() *PrompterAdapter {
	return &PrompterAdapter{}
}

// ConfirmYesNo implements Prompter.
func (p *PrompterAdapter) ConfirmYesNo(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	_, err := prompt.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IsTerminalInteractive reports whether stdin is a terminal. promptui reads
// from stdin, so piped input cannot answer a prompt.
func IsTerminalInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
