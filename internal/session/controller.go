package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/wordsprint/internal/generator"
	"github.com/verte-zerg/wordsprint/internal/model"
)

// Surface is the text input the user types into.
type Surface interface {
	Focus()
	Blur()
	ScrollTo(position int)
}

// Timer is the countdown driving a timed session.
type Timer interface {
	Pause()
	Remaining() int
}

type nopSurface struct{}

func (nopSurface) Focus()       {}
func (nopSurface) Blur()        {}
func (nopSurface) ScrollTo(int) {}

type nopTimer struct{}

func (nopTimer) Pause()         {}
func (nopTimer) Remaining() int { return 0 }

// Option configures a Controller.
type Option func(*Controller)

// WithSurface sets the text surface capability.
func WithSurface(s Surface) Option {
	return func(c *Controller) {
		if s != nil {
			c.surface = s
		}
	}
}

// WithTimer sets the countdown capability.
func WithTimer(t Timer) Option {
	return func(c *Controller) {
		if t != nil {
			c.timer = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDFunc overrides session ID generation.
func WithIDFunc(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithOnFinish registers a callback invoked once per session when it ends
// by completion or expiry.
func WithOnFinish(fn func(Result)) Option {
	return func(c *Controller) {
		c.onFinish = fn
	}
}

// Controller owns one typing session at a time and applies side effects
// around the pure transitions in Apply and Expire.
type Controller struct {
	src      generator.WordSource
	surface  Surface
	timer    Timer
	logger   zerolog.Logger
	now      func() time.Time
	newID    func() string
	onFinish func(Result)

	cfg       model.Config
	id        string
	state     State
	ready     bool
	startedAt time.Time
	endedAt   time.Time
	reported  bool
}

// NewController returns a controller drawing words from src.
func NewController(src generator.WordSource, opts ...Option) *Controller {
	c := &Controller{
		src:     src,
		surface: nopSurface{},
		timer:   nopTimer{},
		logger:  zerolog.Nop(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartSession generates a fresh word sequence and resets the cursor.
// On failure a running session is left untouched; without one, cfg is
// still kept so SetWordCount can retry with its other settings.
func (c *Controller) StartSession(cfg model.Config) error {
	words, err := generator.Generate(c.src, cfg.Words, cfg.MaxLength)
	if err != nil {
		if !c.ready {
			c.cfg = cfg
		}
		c.logger.Error().Err(err).Int("words", cfg.Words).Int("max_length", cfg.MaxLength).Msg("failed to generate words")
		return fmt.Errorf("failed to start session: %w", err)
	}
	if c.ready && c.state.Active() {
		c.timer.Pause()
	}
	c.cfg = cfg
	c.id = c.newID()
	c.state = NewState(words)
	c.ready = true
	c.startedAt = time.Time{}
	c.endedAt = time.Time{}
	c.reported = false
	c.surface.Focus()
	c.surface.ScrollTo(0)
	c.logger.Info().Str("session", c.id).Int("words", len(words)).Bool("timed", cfg.Timed).Msg("session started")
	return nil
}

// SetWordCount restarts the session when n differs from the current count.
func (c *Controller) SetWordCount(n int) error {
	if c.ready && c.cfg.Words == n {
		return nil
	}
	cfg := c.cfg
	cfg.Words = n
	return c.StartSession(cfg)
}

// HandleInput applies the current text surface value.
func (c *Controller) HandleInput(value string) Effect {
	if !c.ready {
		return EffectNone
	}
	if c.state.Active() && c.startedAt.IsZero() && value != "" {
		c.startedAt = c.now()
	}
	next, effect := Apply(c.state, value)
	c.state = next
	switch effect {
	case EffectAdvanced:
		c.surface.ScrollTo(c.state.Cursor)
	case EffectFinished:
		c.finish()
	}
	return effect
}

// Expire ends the session because the countdown reached zero.
func (c *Controller) Expire() Effect {
	if !c.ready {
		return EffectNone
	}
	next, effect := Expire(c.state)
	if effect == EffectNone {
		return effect
	}
	c.state = next
	c.logger.Warn().Str("session", c.id).Int("cursor", c.state.Cursor).Msg("countdown expired")
	c.finish()
	return effect
}

// EndSession releases the timer and the text surface. It is safe to call
// more than once.
func (c *Controller) EndSession() {
	if !c.ready {
		return
	}
	c.ready = false
	c.timer.Pause()
	c.surface.Blur()
	c.logger.Debug().Str("session", c.id).Msg("session ended")
}

func (c *Controller) finish() {
	c.endedAt = c.now()
	c.surface.Blur()
	c.timer.Pause()
	if c.reported {
		return
	}
	c.reported = true
	res := c.Result()
	c.logger.Info().
		Str("session", c.id).
		Int("correct", res.Correct).
		Int("missed", res.Missed).
		Bool("expired", res.Expired).
		Float64("wpm", res.WPM()).
		Msg("session finished")
	if c.onFinish != nil {
		c.onFinish(res)
	}
}

// Ready reports whether a session is running or finished but not torn down.
func (c *Controller) Ready() bool {
	return c.ready
}

// State returns the current state snapshot.
func (c *Controller) State() State {
	s := c.state
	if c.cfg.Timed && !s.Expired {
		s.Remaining = c.timer.Remaining()
	}
	return s
}

// Views returns render-ready word flags.
func (c *Controller) Views() []WordView {
	return Render(c.state)
}

// Draft returns the in-progress text for the current word.
func (c *Controller) Draft() string {
	return c.state.Draft
}

// ID returns the current session ID.
func (c *Controller) ID() string {
	return c.id
}

// Config returns the configuration of the current session.
func (c *Controller) Config() model.Config {
	return c.cfg
}

// Result summarizes the current session.
func (c *Controller) Result() Result {
	res := Result{
		ID:        c.id,
		StartedAt: c.startedAt,
		EndedAt:   c.endedAt,
		Words:     len(c.state.Words),
		Expired:   c.state.Expired,
	}
	for _, w := range c.state.Words {
		switch {
		case w.Correct:
			res.Correct++
			res.CorrectChars += len([]rune(w.Text))
		case w.Position < c.state.Cursor:
			res.Missed++
		}
	}
	return res
}
