package tui

// countdownState tracks where the countdown is in its lifecycle.
type countdownState int

const (
	countdownIdle countdownState = iota
	countdownRunning
	countdownDone
)

// countdown is the timer state machine, separate from display. It consumes
// the app-wide one-second tick only while running, so pausing or resetting
// cannot leak a tick source.
type countdown struct {
	minutes        int
	seconds        int
	defaultMinutes int
	state          countdownState
}

func newCountdown(defaultMinutes int) countdown {
	return countdown{
		minutes:        defaultMinutes,
		defaultMinutes: defaultMinutes,
	}
}

// start begins the countdown. It reports false when already running or when
// no time remains.
func (c *countdown) start() bool {
	if c.state == countdownRunning {
		return false
	}
	if c.minutes == 0 && c.seconds == 0 {
		return false
	}
	c.state = countdownRunning
	return true
}

// pause stops ticking, preserving the remaining time.
func (c *countdown) pause() {
	if c.state == countdownRunning {
		c.state = countdownIdle
	}
}

// reset stops ticking and restores the default duration.
func (c *countdown) reset() {
	c.state = countdownIdle
	c.minutes = c.defaultMinutes
	c.seconds = 0
}

// setDefault changes the duration reset() restores. The remaining time is
// untouched; the new default takes effect on the next reset.
func (c *countdown) setDefault(minutes int) {
	c.defaultMinutes = minutes
}

// setPreset stops ticking and retargets the countdown to minutes:00.
func (c *countdown) setPreset(minutes int) {
	c.state = countdownIdle
	c.minutes = minutes
	c.seconds = 0
}

// tick advances the countdown by one second, borrowing a minute when the
// seconds underflow. At 0:00 the tick transitions to Done instead of going
// negative. It reports true on the completing tick.
func (c *countdown) tick() bool {
	if c.state != countdownRunning {
		return false
	}
	if c.seconds == 0 {
		if c.minutes == 0 {
			c.state = countdownDone
			return true
		}
		c.minutes--
		c.seconds = 59
		return false
	}
	c.seconds--
	return false
}

func (c countdown) running() bool { return c.state == countdownRunning }
func (c countdown) done() bool    { return c.state == countdownDone }

func (c countdown) remaining() (int, int) {
	return c.minutes, c.seconds
}
