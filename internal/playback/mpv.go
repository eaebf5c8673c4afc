package playback

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV drives a headless mpv process over its JSON-IPC socket.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when the mpv process exits
	events     chan Event
	closeOnce  sync.Once
	mu         sync.Mutex // protects socket command round trips
}

// NewMPV starts an idle mpv instance and waits for its IPC socket.
func NewMPV() (*MPV, error) {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, fmt.Errorf("generate socket name: %w", err)
	}

	m := &MPV{
		socketPath: filepath.Join(os.TempDir(), fmt.Sprintf("focusbox-%x.sock", randomBytes)),
		exited:     make(chan struct{}),
		events:     make(chan Event, 8),
	}

	m.cmd = exec.Command("mpv",
		"--idle=yes",
		"--no-video",
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
	)
	m.cmd.Stdin = nil
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil

	if err := m.cmd.Start(); err != nil {
		return nil, fmt.Errorf("start mpv: %w", err)
	}

	// Reap the process to avoid zombies.
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			logrus.Warn("killing mpv: socket never became ready")
			_ = m.cmd.Process.Kill()
		}
		return nil, fmt.Errorf("mpv socket not ready: %w", err)
	}

	go m.eventLoop()
	return m, nil
}

// waitForSocket polls until the IPC socket accepts connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// Load replaces the current media. Playback is left paused; the caller
// resumes it when appropriate.
func (m *MPV) Load(path, title string) error {
	if _, err := m.sendCommand("loadfile", path, "replace"); err != nil {
		return err
	}
	if _, err := m.sendCommand("set_property", "pause", true); err != nil {
		return err
	}
	if _, err := m.sendCommand("set_property", "force-media-title", title); err != nil {
		logrus.Debugf("set media title: %v", err)
	}
	return nil
}

func (m *MPV) Play() error {
	_, err := m.sendCommand("set_property", "pause", false)
	return err
}

func (m *MPV) Pause() error {
	_, err := m.sendCommand("set_property", "pause", true)
	return err
}

// Seek moves playback to the given absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand("seek", seconds, "absolute")
	return err
}

// Position returns the current playback position in seconds. "property
// unavailable" means nothing is loaded yet and reports 0.
func (m *MPV) Position() (float64, error) {
	return m.floatProperty("time-pos")
}

// Duration returns the current media duration in seconds, 0 while unknown.
func (m *MPV) Duration() (float64, error) {
	return m.floatProperty("duration")
}

func (m *MPV) floatProperty(name string) (float64, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		if strings.Contains(err.Error(), "property unavailable") {
			return 0, nil
		}
		return 0, err
	}
	f, ok := data.(float64)
	if !ok {
		return 0, nil
	}
	return f, nil
}

func (m *MPV) Events() <-chan Event {
	return m.events
}

// Close asks mpv to quit and cleans up the socket.
func (m *MPV) Close() error {
	var err error
	m.closeOnce.Do(func() {
		_, err = m.sendCommand("quit")

		select {
		case <-m.exited:
		case <-time.After(2 * time.Second):
			if m.cmd.Process != nil {
				_ = m.cmd.Process.Kill()
			}
		}
		_ = os.Remove(m.socketPath)
	})
	return err
}

// ipcEvent is an asynchronous notification mpv pushes to IPC clients.
type ipcEvent struct {
	Event string      `json:"event"`
	Name  string      `json:"name"`
	Data  interface{} `json:"data"`
}

// eventLoop keeps a dedicated connection open, subscribes to end-of-file
// changes and forwards them as engine events. The channel send never blocks;
// a stale unread event is worthless.
func (m *MPV) eventLoop() {
	conn, err := net.Dial("unix", m.socketPath)
	if err != nil {
		logrus.Warnf("mpv event connection: %v", err)
		m.emit(Event{Type: EventEngineExited})
		return
	}
	defer conn.Close()

	subscribe := []byte(`{"command":["observe_property",1,"eof-reached"]}` + "\n")
	if _, err := conn.Write(subscribe); err != nil {
		logrus.Warnf("mpv observe_property: %v", err)
		m.emit(Event{Type: EventEngineExited})
		return
	}

	dec := json.NewDecoder(conn)
	for {
		var ev ipcEvent
		if err := dec.Decode(&ev); err != nil {
			select {
			case <-m.exited:
			default:
				logrus.Debugf("mpv event stream closed: %v", err)
			}
			m.emit(Event{Type: EventEngineExited})
			return
		}

		if ev.Event == "property-change" && ev.Name == "eof-reached" {
			if reached, ok := ev.Data.(bool); ok && reached {
				m.emit(Event{Type: EventTrackEnded})
			}
		}
	}
}

func (m *MPV) emit(ev Event) {
	select {
	case m.events <- ev:
	default:
	}
}
