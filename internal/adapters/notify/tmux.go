package notify

import (
	"context"
	"os"
	"strings"

	"github.com/example/gardenwatch/internal/ports/secondary"
)

// TmuxNotifier shows a one-line summary in the tmux status line.
// Outside tmux it does nothing.
type TmuxNotifier struct {
	getenv func(string) string
	run    runFunc
}

// NewTmuxNotifier creates a tmux notifier.
func NewTmuxNotifier() *TmuxNotifier {
	return &TmuxNotifier{getenv: os.Getenv, run: runCommand}
}

func (t *TmuxNotifier) Notify(ctx context.Context, n secondary.Notification) error {
	if t.getenv("TMUX") == "" {
		return nil
	}
	return t.run(ctx, "tmux", "display-message", "-d", "5000", statusLine(n))
}

// statusLine flattens the body onto one line. tmux expands '#' sequences, so
// those are escaped.
func statusLine(n secondary.Notification) string {
	var parts []string
	for _, line := range strings.Split(n.Body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			parts = append(parts, line)
		}
	}
	msg := n.Title
	if len(parts) > 0 {
		msg += " " + strings.Join(parts, " ")
	}
	return strings.ReplaceAll(msg, "#", "##")
}

var _ secondary.Notifier = (*TmuxNotifier)(nil)
