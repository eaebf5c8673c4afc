// Package playback abstracts the media engine the player is wired to.
package playback

// EventType identifies an asynchronous engine notification.
type EventType int

const (
	// EventTrackEnded fires when the current track played to its end.
	EventTrackEnded EventType = iota
	// EventEngineExited fires when the engine process went away.
	EventEngineExited
)

type Event struct {
	Type EventType
}

// Engine is the playback surface the TUI drives. Load does not start
// playback; the caller decides whether to resume. Position and Duration
// report seconds; a Duration of 0 means "not known yet".
type Engine interface {
	Load(path, title string) error
	Play() error
	Pause() error
	Seek(seconds float64) error
	Position() (float64, error)
	Duration() (float64, error)
	Events() <-chan Event
	Close() error
}

// Null is the no-op engine used when no real backend is available. Every
// operation succeeds so the UI behaves normally, it just stays silent.
type Null struct {
	path   string
	title  string
	paused bool
	pos    float64
	events chan Event
}

func NewNull() *Null {
	return &Null{paused: true, events: make(chan Event)}
}

func (n *Null) Load(path, title string) error {
	n.path = path
	n.title = title
	n.paused = true
	n.pos = 0
	return nil
}

func (n *Null) Play() error  { n.paused = false; return nil }
func (n *Null) Pause() error { n.paused = true; return nil }

func (n *Null) Seek(seconds float64) error {
	n.pos = seconds
	return nil
}

func (n *Null) Position() (float64, error) { return n.pos, nil }

// Duration is always unknown for the null engine.
func (n *Null) Duration() (float64, error) { return 0, nil }

func (n *Null) Events() <-chan Event { return n.events }

func (n *Null) Close() error { return nil }
