// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/wordsprint/internal/model"
)

// SessionMetrics computes WPM and word accuracy for a session.
// Five correct characters count as one word.
func SessionMetrics(correctChars, correctWords, missedWords int, durationMs int64) (wpm, accuracy float64) {
	den := float64(correctWords + missedWords)
	if den > 0 {
		accuracy = float64(correctWords) / den
	}
	if durationMs <= 0 {
		return 0, accuracy
	}
	minutes := float64(durationMs) / 60000.0
	wpm = (float64(correctChars) / 5.0) / minutes
	return wpm, accuracy
}

// AggregateMetrics computes WPM and accuracy for a session aggregate.
func AggregateMetrics(s model.SessionAggregate) (wpm, accuracy float64) {
	return SessionMetrics(s.CorrectChars, s.CorrectWords, s.MissedWords, s.DurationMs)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// RenderSummary prints a summary for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalWPM, totalAcc float64
	bestWPM := 0.0
	expired := 0
	for _, s := range sessions {
		wpm, acc := AggregateMetrics(s)
		totalWPM += wpm
		totalAcc += acc
		if wpm > bestWPM {
			bestWPM = wpm
		}
		if s.Expired {
			expired++
		}
	}
	count := float64(len(sessions))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d (%d ran out of time)", len(sessions), expired),
		fmt.Sprintf("Avg WPM: %.2f", totalWPM/count),
		fmt.Sprintf("Best WPM: %.2f", bestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", (totalAcc/count)*100),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory prints the most recent sessions as a table.
func RenderHistory(w io.Writer, sessions []model.SessionAggregate, limit int) error {
	if len(sessions) == 0 {
		return nil
	}
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[len(sessions)-limit:]
	}
	if _, err := fmt.Fprintln(w, "Recent Sessions"); err != nil {
		return err
	}
	headers := []string{"Ended", "Words", "Correct", "Missed", "WPM", "Accuracy", "Timer"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		wpm, acc := AggregateMetrics(s)
		timer := "-"
		if s.Expired {
			timer = "expired"
		}
		rows = append(rows, []string{
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", s.Words),
			fmt.Sprintf("%d", s.CorrectWords),
			fmt.Sprintf("%d", s.MissedWords),
			fmt.Sprintf("%.1f", wpm),
			fmt.Sprintf("%.1f%%", acc*100),
			timer,
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCurves plots moving-average WPM and accuracy learning curves
// sized to totalWidth columns (the terminal width when 0).
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window, totalWidth int, useColor bool) error {
	if len(sessions) == 0 {
		return nil
	}
	wpms := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		wpm, acc := AggregateMetrics(s)
		wpms[i] = wpm
		accs[i] = acc * 100
	}
	wpms = MovingAverage(wpms, window)
	accs = MovingAverage(accs, window)

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Learning Curves", []Series{
		{Name: "WPM", Values: wpms},
		{Name: "Accuracy", Values: accs},
	}, width, defaultPlotHeight, useColor)
}
