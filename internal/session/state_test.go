package session

import (
	"testing"

	"github.com/verte-zerg/wordsprint/internal/model"
)

func testWords(texts ...string) []model.Word {
	words := make([]model.Word, len(texts))
	for i, text := range texts {
		words[i] = model.Word{Text: text, Position: i}
	}
	return words
}

func applyAll(s State, values ...string) (State, Effect) {
	effect := EffectNone
	for _, v := range values {
		s, effect = Apply(s, v)
	}
	return s, effect
}

func TestApplyCommitsCorrectWord(t *testing.T) {
	s := NewState(testWords("cat", "dog", "sun"))
	s, effect := applyAll(s, "c", "ca", "cat", "cat ")
	if effect != EffectAdvanced {
		t.Fatalf("expected advance, got %s", effect)
	}
	if !s.Words[0].Correct {
		t.Fatalf("expected first word correct")
	}
	if s.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", s.Cursor)
	}
	if s.Draft != "" {
		t.Fatalf("expected empty draft, got %q", s.Draft)
	}
}

func TestApplyCommitsWrongWord(t *testing.T) {
	s := NewState(testWords("cat", "dog", "sun"))
	s, _ = applyAll(s, "c", "ca", "cap", "cap ")
	if s.Words[0].Correct {
		t.Fatalf("expected first word not correct")
	}
	if s.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", s.Cursor)
	}
	views := Render(s)
	if !views[0].Missed || views[0].Current {
		t.Fatalf("expected first word missed, got %+v", views[0])
	}
	if !views[1].Current {
		t.Fatalf("expected second word current")
	}
}

func TestApplyBlankSpaceIgnored(t *testing.T) {
	s := NewState(testWords("cat", "dog", "sun"))
	s, effect := applyAll(s, " ", "  ", "\t")
	if effect != EffectNone {
		t.Fatalf("expected no effect, got %s", effect)
	}
	if s.Cursor != 0 || s.Draft != "" {
		t.Fatalf("expected cursor 0 and empty draft, got %d %q", s.Cursor, s.Draft)
	}
}

func TestApplyCorrectMidTypingStays(t *testing.T) {
	s := NewState(testWords("cat", "dog"))
	s, _ = applyAll(s, "cat", "cats")
	if !s.Words[0].Correct {
		t.Fatalf("expected correctness to persist after overtyping")
	}
	if s.Draft != "cats" {
		t.Fatalf("expected draft cats, got %q", s.Draft)
	}
	s, _ = Apply(s, "cats ")
	if !s.Words[0].Correct {
		t.Fatalf("expected word to stay correct after commit")
	}
}

func TestApplyCorrectedWord(t *testing.T) {
	s := NewState(testWords("cat"))
	s, _ = applyAll(s, "cap", "ca", "cat")
	if !s.Words[0].Correct {
		t.Fatalf("expected corrected word to be marked correct")
	}
}

func TestApplyFinishesAndDeactivates(t *testing.T) {
	s := NewState(testWords("cat", "dog"))
	s, _ = applyAll(s, "cat", "cat ", "dog")
	s, effect := Apply(s, "dog ")
	if effect != EffectFinished {
		t.Fatalf("expected finished, got %s", effect)
	}
	if !s.Finished() || s.Active() {
		t.Fatalf("expected finished inactive state")
	}
	if _, ok := s.Current(); ok {
		t.Fatalf("expected no current word")
	}
	before := s
	after, effect := applyAll(s, "x", "x ")
	if effect != EffectNone || after.Cursor != before.Cursor || after.Draft != before.Draft {
		t.Fatalf("expected input after finish to be ignored")
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	s := NewState(testWords("cat"))
	next, _ := Apply(s, "cat")
	if s.Words[0].Correct {
		t.Fatalf("expected original state unchanged")
	}
	if !next.Words[0].Correct {
		t.Fatalf("expected next state correct")
	}
}

func TestEmptyWordList(t *testing.T) {
	s := NewState(nil)
	if s.Active() {
		t.Fatalf("expected empty session inactive")
	}
	s, effect := Apply(s, "a ")
	if effect != EffectNone || s.Cursor != 0 {
		t.Fatalf("expected no-op on empty session")
	}
	if len(Render(s)) != 0 {
		t.Fatalf("expected no views")
	}
}

func TestExpireStopsInput(t *testing.T) {
	s := NewState(testWords("cat", "dog"))
	s, _ = Apply(s, "ca")
	s.Remaining = 1
	s, effect := Expire(s)
	if effect != EffectExpired || s.Active() {
		t.Fatalf("expected expired inactive state")
	}
	if s.Remaining != 0 || s.Draft != "ca" {
		t.Fatalf("expected remaining zeroed and draft kept, got %+v", s)
	}
	s, effect = Apply(s, "cat ")
	if effect != EffectNone || s.Cursor != 0 {
		t.Fatalf("expected input after expiry to be ignored")
	}
	if _, effect := Expire(s); effect != EffectNone {
		t.Fatalf("expected second expiry to be a no-op")
	}
}
