package notify

import (
	"bytes"
	"runtime"
	"testing"
)

func TestNoopNeverErrors(t *testing.T) {
	var n Notifier = Noop{}
	if err := n.Notify("Focus", "time's up"); err != nil {
		t.Fatalf("noop notifier returned error: %v", err)
	}
}

func TestChimeRingsBellExactlyOnce(t *testing.T) {
	var buf bytes.Buffer
	orig := bell
	bell = &buf
	t.Cleanup(func() { bell = orig })

	Desktop{}.Chime()
	if got := buf.String(); got != "\a" {
		t.Fatalf("chime wrote %q, want a single bell", got)
	}
}

func TestNoopChimeIsSilent(t *testing.T) {
	var buf bytes.Buffer
	orig := bell
	bell = &buf
	t.Cleanup(func() { bell = orig })

	Noop{}.Chime()
	if buf.Len() != 0 {
		t.Fatalf("noop chime wrote %q", buf.String())
	}
}

func TestCommandPerPlatform(t *testing.T) {
	cmd, ok := command("title", "body")
	switch runtime.GOOS {
	case "linux", "darwin":
		if !ok || cmd == nil {
			t.Fatal("expected a notification command on this platform")
		}
	default:
		if ok {
			t.Fatal("expected no command on unsupported platform")
		}
	}
}

func TestNewNeverNil(t *testing.T) {
	if New() == nil {
		t.Fatal("New should always return a notifier")
	}
}
