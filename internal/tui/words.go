package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/wordsprint/internal/session"
)

const wordGap = " "

func wordStyle(v session.WordView) lipgloss.Style {
	style := pendingStyle
	switch {
	case v.Correct:
		style = correctStyle
	case v.Missed:
		style = missedStyle
	}
	if v.Current {
		style = style.Background(currentBg)
	}
	return style
}

func wordWidth(v session.WordView) int {
	return runewidth.StringWidth(v.Text)
}

// visibleEnd returns the exclusive end index of the words that fit in
// width starting at start. At least one word is always visible.
func visibleEnd(views []session.WordView, start, width int) int {
	if width <= 0 {
		return len(views)
	}
	used := 0
	end := start
	for end < len(views) {
		w := wordWidth(views[end])
		if end > start {
			w += runewidth.StringWidth(wordGap)
		}
		if used+w > width && end > start {
			break
		}
		used += w
		end++
	}
	return end
}

// ensureVisible returns a scroll start that keeps target on screen,
// moving as little as possible from start.
func ensureVisible(views []session.WordView, start, target, width int) int {
	if len(views) == 0 || width <= 0 {
		return 0
	}
	if target >= len(views) {
		target = len(views) - 1
	}
	if target < 0 {
		target = 0
	}
	if start > target {
		return target
	}
	if start < 0 {
		start = 0
	}
	for start < target && visibleEnd(views, start, width) <= target {
		start++
	}
	return start
}

func renderWordRow(views []session.WordView, start, width int) string {
	if len(views) == 0 {
		return ""
	}
	if start < 0 || start >= len(views) {
		start = 0
	}
	end := visibleEnd(views, start, width)
	parts := make([]string, 0, end-start)
	for _, v := range views[start:end] {
		parts = append(parts, wordStyle(v).Render(v.Text))
	}
	return strings.Join(parts, wordGap)
}
