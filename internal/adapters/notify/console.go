package notify

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/example/gardenwatch/internal/ports/secondary"
)

// ConsoleNotifier prints notifications as a coloured block.
type ConsoleNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleNotifier creates a console notifier writing to w.
func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

func (c *ConsoleNotifier) Notify(_ context.Context, n secondary.Notification) error {
	title := color.New(color.FgGreen, color.Bold).Sprint(n.Title)

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s\n", title)
	for _, line := range strings.Split(n.Body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "•") {
			sb.WriteString(color.CyanString(line))
		} else {
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := io.WriteString(c.w, sb.String()); err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}
	return nil
}

var _ secondary.Notifier = (*ConsoleNotifier)(nil)
