package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/wordsprint/internal/countdown"
	"github.com/verte-zerg/wordsprint/internal/model"
)

type fixedSource struct {
	words []string
}

func (s fixedSource) Words(_, exactly int) ([]string, error) {
	if exactly > len(s.words) {
		return nil, errors.New("not enough words")
	}
	return s.words[:exactly], nil
}

func newTestModel(t *testing.T, cfg model.Config, words ...string) *Model {
	t.Helper()
	return NewModel(cfg, nil, fixedSource{words: words}, zerolog.Nop())
}

func typeText(m *Model, text string) {
	for _, r := range text {
		if r == ' ' {
			m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestModelTypingAdvances(t *testing.T) {
	m := newTestModel(t, model.Config{Lang: "en", Words: 3, MaxLength: 6}, "cat", "dog", "sun")
	if !m.input.Focused() {
		t.Fatalf("expected input focused at start")
	}
	typeText(m, "cat ")
	state := m.ctrl.State()
	if state.Cursor != 1 || !state.Words[0].Correct {
		t.Fatalf("unexpected state after first word: %+v", state)
	}
	if m.input.Value() != "" {
		t.Fatalf("expected input cleared after commit, got %q", m.input.Value())
	}
	typeText(m, "do")
	if m.input.Value() != "do" {
		t.Fatalf("expected input to hold draft, got %q", m.input.Value())
	}
}

func TestModelFinishBlursInput(t *testing.T) {
	m := newTestModel(t, model.Config{Lang: "en", Words: 2, MaxLength: 6}, "cat", "dog")
	typeText(m, "cat dig ")
	if !m.ctrl.State().Finished() {
		t.Fatalf("expected finished session")
	}
	if m.input.Focused() {
		t.Fatalf("expected input blurred after finish")
	}
	if !m.hasLast {
		t.Fatalf("expected last result recorded")
	}
	typeText(m, "x ")
	if m.ctrl.State().Cursor != 2 {
		t.Fatalf("expected input ignored after finish")
	}
	if !strings.Contains(m.View(), "1 missed") {
		t.Fatalf("expected finish status in view")
	}
}

func TestModelBlankSpaceIgnored(t *testing.T) {
	m := newTestModel(t, model.Config{Lang: "en", Words: 2, MaxLength: 6}, "cat", "dog")
	typeText(m, "  ")
	if m.ctrl.State().Cursor != 0 || m.input.Value() != "" {
		t.Fatalf("expected blank spaces ignored")
	}
}

func TestModelCountdownExpiry(t *testing.T) {
	m := newTestModel(t, model.Config{Lang: "en", Words: 2, MaxLength: 6, Timed: true, Seconds: 1}, "cat", "dog")
	if m.countdown == nil || m.countdown.Remaining() != 1 {
		t.Fatalf("expected countdown seeded with 1 second")
	}
	if got := m.ctrl.State().Remaining; got != 1 {
		t.Fatalf("expected session state to carry 1 second, got %d", got)
	}
	typeText(m, "ca")
	m.Update(countdown.TickMsg{ID: m.countdown.ID()})
	state := m.ctrl.State()
	if !state.Expired || state.Active() {
		t.Fatalf("expected session expired")
	}
	if m.input.Focused() {
		t.Fatalf("expected input blurred on expiry")
	}
	typeText(m, "t ")
	if m.ctrl.State().Cursor != 0 {
		t.Fatalf("expected input ignored after expiry")
	}
}

func TestModelFinishPausesCountdown(t *testing.T) {
	m := newTestModel(t, model.Config{Lang: "en", Words: 1, MaxLength: 6, Timed: true, Seconds: 60}, "cat")
	typeText(m, "cat ")
	if m.countdown.Running() || !m.countdown.Paused() {
		t.Fatalf("expected countdown paused after completion")
	}
	m.Update(countdown.TickMsg{ID: m.countdown.ID()})
	if m.countdown.Remaining() != 60 {
		t.Fatalf("expected paused countdown to hold, got %d", m.countdown.Remaining())
	}
}

func TestModelGenerationErrorView(t *testing.T) {
	m := newTestModel(t, model.Config{Lang: "en", Words: 5, MaxLength: 6}, "cat")
	if m.genErr == nil {
		t.Fatalf("expected generation error")
	}
	if !strings.Contains(m.View(), "generate 5 words") {
		t.Fatalf("expected error view, got %q", m.View())
	}
	typeText(m, "cat ")
}

func TestModelWordCountPreset(t *testing.T) {
	words := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	m := newTestModel(t, model.Config{Lang: "en", Words: 5, MaxLength: 6}, words...)
	typeText(m, "a ")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	state := m.ctrl.State()
	if len(state.Words) != 10 || state.Cursor != 0 {
		t.Fatalf("expected fresh 10-word session, got %d words cursor %d", len(state.Words), state.Cursor)
	}
	if m.config.Words != 10 {
		t.Fatalf("expected config updated to 10, got %d", m.config.Words)
	}
}

func TestRenderFooterFormats(t *testing.T) {
	m := newTestModel(t, model.Config{Lang: "en", Words: 4, MaxLength: 6}, "a", "b", "c", "d")
	typeText(m, "a b ")
	m.hasLast = true
	m.lastWPM = 72.4
	m.lastAcc = 0.978
	m.allWPM = 68.1
	m.allAcc = 0.969
	out := m.renderFooter()
	if !containsAll(out, []string{"Progress 50%", "Last 72.4 WPM", "97.8%", "All-time 68.1 WPM", "96.9%"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestNextPreset(t *testing.T) {
	if got := nextPreset(5); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := nextPreset(50); got != 5 {
		t.Fatalf("expected wrap to 5, got %d", got)
	}
	if got := nextPreset(7); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func TestModelFailedRestartAbandonsSession(t *testing.T) {
	m := newTestModel(t, model.Config{Lang: "en", Words: 2, MaxLength: 6, Timed: true, Seconds: 1}, "cat", "dog")
	old := m.countdown
	typeText(m, "c")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.genErr == nil {
		t.Fatalf("expected generation error for the 5-word preset")
	}
	if !old.Paused() {
		t.Fatalf("expected the abandoned countdown paused")
	}
	m.Update(countdown.TickMsg{ID: old.ID()})
	if m.ctrl.State().Expired || m.hasLast {
		t.Fatalf("expected the abandoned session not to expire or be recorded")
	}
	if m.config.Words != 5 {
		t.Fatalf("expected preset cursor moved to 5, got %d", m.config.Words)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.config.Words != 10 {
		t.Fatalf("expected next preset 10, got %d", m.config.Words)
	}
}
