// Package model defines shared data structures.
package model

import "time"

// Word is a single target word in a session.
type Word struct {
	Text     string
	Position int
	Correct  bool
}

// Config defines practice settings.
type Config struct {
	Lang         string
	Words        int
	MaxLength    int
	Timed        bool
	Seconds      int
	WordListPath string
	LogLevel     string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Lang        string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionStats captures a finished typing session.
type SessionStats struct {
	ID           string
	StartedAt    time.Time
	EndedAt      time.Time
	Lang         string
	Words        int
	MaxLength    int
	Timed        bool
	Expired      bool
	CorrectWords int
	MissedWords  int
	CorrectChars int
	DurationMs   int64
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID    int64
	UUID         string
	EndedAt      time.Time
	Words        int
	CorrectWords int
	MissedWords  int
	CorrectChars int
	Expired      bool
	DurationMs   int64
}
