// Package countdown provides a one-shot per-second countdown driven by
// Bubble Tea tick messages.
package countdown

import (
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultSeconds seeds a timed session.
const DefaultSeconds = 60

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg is sent once per elapsed second to the countdown with ID.
type TickMsg struct {
	ID   int
	Time time.Time
}

// Countdown decrements once per second until paused or it reaches zero.
type Countdown struct {
	id        int
	interval  time.Duration
	remaining int
	running   bool
	paused    bool
	expired   bool
	onExpire  func()
}

// New returns a stopped countdown seeded with seconds. onExpire runs once
// when the countdown reaches zero.
func New(seconds int, onExpire func()) *Countdown {
	if seconds < 0 {
		seconds = 0
	}
	return &Countdown{
		id:        nextID(),
		interval:  time.Second,
		remaining: seconds,
		onExpire:  onExpire,
	}
}

// ID identifies the countdown in tick messages.
func (c *Countdown) ID() int {
	return c.id
}

// Start begins ticking. A paused or expired countdown does not restart.
func (c *Countdown) Start() tea.Cmd {
	if c.running || c.paused || c.expired {
		return nil
	}
	if c.remaining == 0 {
		c.fire()
		return nil
	}
	c.running = true
	return c.tick()
}

// Update handles tick messages addressed to this countdown.
func (c *Countdown) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != c.id {
		return nil
	}
	c.Tick()
	if !c.running {
		return nil
	}
	return c.tick()
}

// Tick records one elapsed second.
func (c *Countdown) Tick() {
	if !c.running {
		return
	}
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.fire()
	}
}

// Pause stops the countdown for good.
func (c *Countdown) Pause() {
	c.running = false
	c.paused = true
}

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int {
	return c.remaining
}

// Paused reports whether Pause was called.
func (c *Countdown) Paused() bool {
	return c.paused
}

// Running reports whether the countdown is ticking.
func (c *Countdown) Running() bool {
	return c.running
}

// Expired reports whether the countdown reached zero.
func (c *Countdown) Expired() bool {
	return c.expired
}

// View renders the remaining time as m:ss.
func (c *Countdown) View() string {
	return fmt.Sprintf("%d:%02d", c.remaining/60, c.remaining%60)
}

func (c *Countdown) fire() {
	c.running = false
	if c.expired {
		return
	}
	c.expired = true
	if c.onExpire != nil {
		c.onExpire()
	}
}

func (c *Countdown) tick() tea.Cmd {
	id := c.id
	return tea.Tick(c.interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
