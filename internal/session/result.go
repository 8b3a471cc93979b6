package session

import (
	"time"

	"github.com/verte-zerg/wordsprint/internal/model"
)

// Result summarizes a session.
type Result struct {
	ID           string
	StartedAt    time.Time
	EndedAt      time.Time
	Words        int
	Correct      int
	Missed       int
	CorrectChars int
	Expired      bool
}

// Duration is the time between the first keystroke and the end.
func (r Result) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.EndedAt.Before(r.StartedAt) {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// WPM counts five correct characters as one word.
func (r Result) WPM() float64 {
	minutes := r.Duration().Minutes()
	if minutes <= 0 {
		return 0
	}
	return (float64(r.CorrectChars) / 5.0) / minutes
}

// Accuracy is the share of committed words typed correctly.
func (r Result) Accuracy() float64 {
	den := r.Correct + r.Missed
	if den == 0 {
		return 0
	}
	return float64(r.Correct) / float64(den)
}

// Stats converts r into a persisted session record.
func (r Result) Stats(cfg model.Config) model.SessionStats {
	return model.SessionStats{
		ID:           r.ID,
		StartedAt:    r.StartedAt,
		EndedAt:      r.EndedAt,
		Lang:         cfg.Lang,
		Words:        r.Words,
		MaxLength:    cfg.MaxLength,
		Timed:        cfg.Timed,
		Expired:      r.Expired,
		CorrectWords: r.Correct,
		MissedWords:  r.Missed,
		CorrectChars: r.CorrectChars,
		DurationMs:   r.Duration().Milliseconds(),
	}
}
