// Package session implements the word-progression state machine and the
// controller that drives it from input events.
package session

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/wordsprint/internal/model"
)

// Effect describes what a transition did.
type Effect int

const (
	// EffectNone means the event did not move the cursor.
	EffectNone Effect = iota
	// EffectAdvanced means a word was committed and another one is current.
	EffectAdvanced
	// EffectFinished means the last word was committed.
	EffectFinished
	// EffectExpired means the countdown ended an active session.
	EffectExpired
)

func (e Effect) String() string {
	switch e {
	case EffectAdvanced:
		return "advanced"
	case EffectFinished:
		return "finished"
	case EffectExpired:
		return "expired"
	default:
		return "none"
	}
}

// State is one snapshot of a session. Transitions never mutate a State in
// place; they return a new one.
type State struct {
	Words     []model.Word
	Cursor    int
	Draft     string
	Expired   bool
	// Remaining is the countdown in seconds for timed sessions, 0 otherwise.
	Remaining int
}

// NewState returns the initial state for words: cursor 0, empty draft.
func NewState(words []model.Word) State {
	return State{Words: words}
}

// Finished reports whether every word has been committed.
func (s State) Finished() bool {
	return s.Cursor >= len(s.Words)
}

// Active reports whether input events still affect the state.
func (s State) Active() bool {
	return !s.Expired && !s.Finished()
}

// Current returns the word under the cursor, if any.
func (s State) Current() (model.Word, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Words) {
		return model.Word{}, false
	}
	return s.Words[s.Cursor], true
}

// Apply feeds the full text surface value into the state machine.
func Apply(s State, value string) (State, Effect) {
	if !s.Active() {
		return s, EffectNone
	}
	last, _ := utf8.DecodeLastRuneInString(value)
	if value != "" && unicode.IsSpace(last) {
		s.Draft = ""
		if strings.TrimSpace(value) == "" {
			return s, EffectNone
		}
		s.Cursor++
		if s.Finished() {
			return s, EffectFinished
		}
		return s, EffectAdvanced
	}

	s.Draft = value
	if value == s.Words[s.Cursor].Text && !s.Words[s.Cursor].Correct {
		words := make([]model.Word, len(s.Words))
		copy(words, s.Words)
		words[s.Cursor].Correct = true
		s.Words = words
	}
	return s, EffectNone
}

// Expire ends an active session because the countdown reached zero.
func Expire(s State) (State, Effect) {
	if !s.Active() {
		return s, EffectNone
	}
	s.Expired = true
	s.Remaining = 0
	return s, EffectExpired
}

// WordView carries the render flags for one word.
type WordView struct {
	model.Word
	Current bool
	Missed  bool
}

// Render derives per-word display flags from s.
func Render(s State) []WordView {
	views := make([]WordView, len(s.Words))
	for i, w := range s.Words {
		views[i] = WordView{
			Word:    w,
			Current: w.Position == s.Cursor,
			Missed:  !w.Correct && w.Position < s.Cursor,
		}
	}
	return views
}
