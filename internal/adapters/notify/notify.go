// Package notify contains Notifier implementations for displaying restock alerts.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/example/gardenwatch/internal/ports/secondary"
)

// Notifier names accepted by New.
const (
	Console = "console"
	Desktop = "desktop"
	Tmux    = "tmux"
)

// Known reports whether name is a supported notifier.
func Known(name string) bool {
	switch name {
	case Console, Desktop, Tmux:
		return true
	}
	return false
}

// runFunc executes an external command. Tests replace it.
type runFunc func(ctx context.Context, name string, args ...string) error

func runCommand(ctx context.Context, name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s not available: %w", name, err)
	}
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// New builds a notifier from a list of names. Output for the console notifier
// goes to w.
func New(names []string, w io.Writer) (secondary.Notifier, error) {
	var notifiers []secondary.Notifier
	for _, name := range names {
		switch strings.TrimSpace(name) {
		case Console:
			notifiers = append(notifiers, NewConsoleNotifier(w))
		case Desktop:
			notifiers = append(notifiers, NewDesktopNotifier())
		case Tmux:
			notifiers = append(notifiers, NewTmuxNotifier())
		case "":
		default:
			return nil, fmt.Errorf("unknown notifier %q", name)
		}
	}
	if len(notifiers) == 1 {
		return notifiers[0], nil
	}
	return Multi(notifiers), nil
}

// Multi fans a notification out to every notifier and joins their errors.
type Multi []secondary.Notifier

func (m Multi) Notify(ctx context.Context, n secondary.Notification) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ secondary.Notifier = Multi(nil)
