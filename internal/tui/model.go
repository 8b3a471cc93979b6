// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/wordsprint/internal/countdown"
	"github.com/verte-zerg/wordsprint/internal/generator"
	"github.com/verte-zerg/wordsprint/internal/model"
	"github.com/verte-zerg/wordsprint/internal/session"
	statsPkg "github.com/verte-zerg/wordsprint/internal/stats"
	"github.com/verte-zerg/wordsprint/internal/store"
)

// WordCountPresets are cycled with ctrl+t.
var WordCountPresets = []int{5, 10, 25, 50}

// Model implements the Bubble Tea typing UI.
type Model struct {
	config model.Config
	store  *store.Store
	logger zerolog.Logger
	ctrl   *session.Controller

	input     textinput.Model
	countdown *countdown.Countdown
	genErr    error
	initCmd   tea.Cmd

	width  int
	height int
	scroll int

	lastWPM float64
	lastAcc float64
	hasLast bool

	allWPM      float64
	allAcc      float64
	allChars    int
	allCorrect  int
	allMissed   int
	allDuration int64
}

var (
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	missedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentBg     = lipgloss.Color("#93C5FD")
	timerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(currentBg).Padding(0, 1)
)

type inputSurface struct {
	m *Model
}

func (s inputSurface) Focus() {
	s.m.input.Focus()
}

func (s inputSurface) Blur() {
	s.m.input.Blur()
}

func (s inputSurface) ScrollTo(position int) {
	s.m.scrollTo(position)
}

type countdownTimer struct {
	m *Model
}

func (t countdownTimer) Pause() {
	if t.m.countdown != nil {
		t.m.countdown.Pause()
	}
}

func (t countdownTimer) Remaining() int {
	if t.m.countdown == nil {
		return 0
	}
	return t.m.countdown.Remaining()
}

// NewModel constructs a typing TUI model and starts the first session.
func NewModel(cfg model.Config, st *store.Store, src generator.WordSource, logger zerolog.Logger) *Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "start typing"
	input.CharLimit = 64
	input.Width = 24

	m := &Model{
		config: cfg,
		store:  st,
		logger: logger,
		input:  input,
	}
	m.ctrl = session.NewController(src,
		session.WithSurface(inputSurface{m: m}),
		session.WithTimer(countdownTimer{m: m}),
		session.WithLogger(logger),
		session.WithOnFinish(m.saveResult),
	)
	m.loadFooterStats()
	m.initCmd = m.startSession()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initCmd)
}

// Close ends the running session and releases the input and countdown.
func (m *Model) Close() {
	m.ctrl.EndSession()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scrollTo(m.ctrl.State().Cursor)
		return m, nil
	case countdown.TickMsg:
		if m.countdown == nil {
			return m, nil
		}
		return m, m.countdown.Update(msg)
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.Close()
			return m, tea.Quit
		case tea.KeyTab, tea.KeyEsc:
			return m, m.startSession()
		case tea.KeyCtrlT:
			return m, m.setWordCount(nextPreset(m.config.Words))
		default:
			return m, m.handleKey(msg)
		}
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.genErr != nil || !m.ctrl.State().Active() {
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.HandleInput(m.input.Value())
	if draft := m.ctrl.Draft(); m.input.Value() != draft {
		m.input.SetValue(draft)
	}
	return cmd
}

func (m *Model) startSession() tea.Cmd {
	if err := m.ctrl.StartSession(m.config); err != nil {
		return m.sessionFailed(err)
	}
	return m.sessionStarted()
}

func (m *Model) setWordCount(n int) tea.Cmd {
	prevID := m.ctrl.ID()
	err := m.ctrl.SetWordCount(n)
	m.config.Words = n
	if err != nil {
		return m.sessionFailed(err)
	}
	if m.genErr == nil && m.ctrl.ID() == prevID {
		return nil
	}
	return m.sessionStarted()
}

// sessionFailed abandons the session on screen so its countdown cannot
// finish and record it behind the error view.
func (m *Model) sessionFailed(err error) tea.Cmd {
	m.genErr = err
	m.ctrl.EndSession()
	m.input.SetValue("")
	return nil
}

func (m *Model) sessionStarted() tea.Cmd {
	m.genErr = nil
	m.input.SetValue("")
	m.countdown = nil
	if !m.config.Timed {
		return nil
	}
	m.countdown = countdown.New(m.config.Seconds, m.onExpire)
	return m.countdown.Start()
}

func (m *Model) onExpire() {
	m.ctrl.Expire()
	m.input.SetValue("")
}

func (m *Model) scrollTo(position int) {
	m.scroll = ensureVisible(m.ctrl.Views(), m.scroll, position, m.rowWidth())
}

func (m *Model) rowWidth() int {
	if m.width == 0 {
		return 0
	}
	width := int(float64(m.width) * 0.70)
	if width < 1 {
		width = 1
	}
	return width
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.genErr != nil {
		content := lipgloss.JoinVertical(lipgloss.Center,
			errorStyle.Render(m.genErr.Error()),
			footerStyle.Render("tab retry · ctrl+c quit"),
		)
		return m.place(content, "")
	}
	views := m.ctrl.Views()
	if len(views) == 0 {
		return ""
	}
	rows := []string{}
	if m.countdown != nil {
		rows = append(rows, timerStyle.Render(m.countdown.View()), "")
	}
	rows = append(rows, renderWordRow(views, m.scroll, m.rowWidth()), "")
	rows = append(rows, inputBoxStyle.Render(m.input.View()))
	if status := m.renderStatus(); status != "" {
		rows = append(rows, "", status)
	}
	content := lipgloss.JoinVertical(lipgloss.Center, rows...)
	return m.place(content, m.renderFooter())
}

func (m *Model) place(content, footer string) string {
	if m.width == 0 || m.height == 0 {
		if footer == "" {
			return content
		}
		return content + "\n" + footer
	}
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderStatus() string {
	state := m.ctrl.State()
	if state.Active() {
		return ""
	}
	res := m.ctrl.Result()
	head := "Done"
	if state.Expired {
		head = "Time's up"
	}
	line := fmt.Sprintf("%s · %d correct · %d missed · %.1f WPM · tab for a new session",
		head, res.Correct, res.Missed, res.WPM())
	return statusStyle.Render(line)
}

func (m *Model) renderFooter() string {
	state := m.ctrl.State()
	if len(state.Words) == 0 {
		return ""
	}
	progress := int(float64(state.Cursor) / float64(len(state.Words)) * 100)
	segments := []string{fmt.Sprintf("Progress %d%%", progress)}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f WPM · %.1f%%", m.lastWPM, m.lastAcc*100))
	}
	segments = append(segments, fmt.Sprintf("All-time %.1f WPM · %.1f%%", m.allWPM, m.allAcc*100))
	footer := strings.Join(segments, "  ")
	return footerStyle.Render(footer)
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	ctx := context.Background()
	sessions, err := m.store.ListSessions(ctx, model.StatsConfig{Lang: m.config.Lang})
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to load session stats")
		return
	}
	if len(sessions) == 0 {
		return
	}
	last := sessions[len(sessions)-1]
	m.lastWPM, m.lastAcc = statsPkg.AggregateMetrics(last)
	m.hasLast = true

	for _, s := range sessions {
		m.allChars += s.CorrectChars
		m.allCorrect += s.CorrectWords
		m.allMissed += s.MissedWords
		m.allDuration += s.DurationMs
	}
	m.recomputeAllTime()
}

func (m *Model) recomputeAllTime() {
	m.allWPM, m.allAcc = statsPkg.SessionMetrics(m.allChars, m.allCorrect, m.allMissed, m.allDuration)
}

func (m *Model) saveResult(res session.Result) {
	if res.StartedAt.IsZero() {
		return
	}
	stats := res.Stats(m.ctrl.Config())
	if m.store != nil {
		if _, err := m.store.InsertSession(context.Background(), stats); err != nil {
			m.logger.Error().Err(err).Str("session", stats.ID).Msg("failed to save session")
		}
	}
	m.lastWPM, m.lastAcc = statsPkg.SessionMetrics(stats.CorrectChars, stats.CorrectWords, stats.MissedWords, stats.DurationMs)
	m.hasLast = true
	m.allChars += stats.CorrectChars
	m.allCorrect += stats.CorrectWords
	m.allMissed += stats.MissedWords
	m.allDuration += stats.DurationMs
	m.recomputeAllTime()
}

func nextPreset(current int) int {
	for _, n := range WordCountPresets {
		if n > current {
			return n
		}
	}
	return WordCountPresets[0]
}
