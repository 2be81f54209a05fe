package notify

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/example/gardenwatch/internal/ports/secondary"
)

// DesktopNotifier raises an OS notification through notify-send (Linux) or
// osascript (macOS).
type DesktopNotifier struct {
	goos string
	run  runFunc
}

// NewDesktopNotifier creates a desktop notifier for the current OS.
func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{goos: runtime.GOOS, run: runCommand}
}

func (d *DesktopNotifier) Notify(ctx context.Context, n secondary.Notification) error {
	switch d.goos {
	case "linux", "freebsd", "openbsd":
		return d.run(ctx, "notify-send", "--app-name=gardenwatch", n.Title, n.Body)
	case "darwin":
		script := fmt.Sprintf("display notification %s with title %s",
			strconv.Quote(n.Body), strconv.Quote(n.Title))
		return d.run(ctx, "osascript", "-e", script)
	default:
		return fmt.Errorf("desktop notifications not supported on %s", d.goos)
	}
}

var _ secondary.Notifier = (*DesktopNotifier)(nil)
