// Package notify delivers optional desktop notifications. It is an
// enhancement only: when no backend is available the no-op variant is used
// and nothing ever fails.
package notify

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
)

// Notifier shows a short message to the user outside the terminal.
type Notifier interface {
	Notify(title, body string) error
	// Chime rings the terminal bell once.
	Chime()
}

// bell is where the chime writes. Stderr reaches the terminal directly even
// while the TUI holds the alternate screen.
var bell io.Writer = os.Stderr

// Noop silently drops every notification.
type Noop struct{}

func (Noop) Notify(title, body string) error { return nil }

func (Noop) Chime() {}

// Desktop shells out to the platform notification helper.
type Desktop struct{}

func (Desktop) Chime() {
	io.WriteString(bell, "\a")
}

func (Desktop) Notify(title, body string) error {
	cmd, ok := command(title, body)
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return cmd.Run()
}

func command(title, body string) (*exec.Cmd, bool) {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", title, body), true
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		return exec.Command("osascript", "-e", script), true
	default:
		return nil, false
	}
}

// helper reports the binary the current platform would use, empty when none.
func helper() string {
	switch runtime.GOOS {
	case "linux":
		return "notify-send"
	case "darwin":
		return "osascript"
	default:
		return ""
	}
}

// New returns a Desktop notifier when the platform helper is installed,
// otherwise a Noop.
func New() Notifier {
	bin := helper()
	if bin == "" {
		return Noop{}
	}
	if _, err := exec.LookPath(bin); err != nil {
		return Noop{}
	}
	return Desktop{}
}
