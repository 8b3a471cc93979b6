package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/wordsprint/internal/model"
	"github.com/verte-zerg/wordsprint/internal/session"
)

func viewsFor(texts ...string) []session.WordView {
	words := make([]model.Word, len(texts))
	for i, text := range texts {
		words[i] = model.Word{Text: text, Position: i}
	}
	return session.Render(session.NewState(words))
}

func TestWordStyleFlags(t *testing.T) {
	s := session.NewState([]model.Word{{Text: "cat", Position: 0}, {Text: "dog", Position: 1}, {Text: "sun", Position: 2}})
	s, _ = session.Apply(s, "cap ")
	s, _ = session.Apply(s, "dog")
	views := session.Render(s)

	if got := wordStyle(views[0]).Render("cat"); got != missedStyle.Render("cat") {
		t.Fatalf("expected missed style for skipped word")
	}
	if got := wordStyle(views[1]).Render("dog"); got != correctStyle.Background(currentBg).Render("dog") {
		t.Fatalf("expected correct current style")
	}
	if got := wordStyle(views[2]).Render("sun"); got != pendingStyle.Render("sun") {
		t.Fatalf("expected pending style for upcoming word")
	}
}

func TestVisibleEnd(t *testing.T) {
	views := viewsFor("aaa", "bbb", "ccc")
	if got := visibleEnd(views, 0, 7); got != 2 {
		t.Fatalf("expected 2 words in width 7, got %d", got)
	}
	if got := visibleEnd(views, 0, 0); got != 3 {
		t.Fatalf("expected all words with no width, got %d", got)
	}
	if got := visibleEnd(views, 0, 1); got != 1 {
		t.Fatalf("expected at least one word, got %d", got)
	}
}

func TestEnsureVisible(t *testing.T) {
	views := viewsFor("aaa", "bbb", "ccc", "ddd")
	if got := ensureVisible(views, 0, 1, 7); got != 0 {
		t.Fatalf("expected no scroll for visible word, got %d", got)
	}
	if got := ensureVisible(views, 0, 3, 7); got != 2 {
		t.Fatalf("expected scroll to 2, got %d", got)
	}
	if got := ensureVisible(views, 3, 1, 7); got != 1 {
		t.Fatalf("expected scroll back to 1, got %d", got)
	}
	if got := ensureVisible(views, 0, 4, 7); got != 2 {
		t.Fatalf("expected finished cursor to clamp to last word, got %d", got)
	}
	if got := ensureVisible(nil, 5, 0, 7); got != 0 {
		t.Fatalf("expected 0 for empty views, got %d", got)
	}
}

func TestRenderWordRowScrolled(t *testing.T) {
	views := viewsFor("aaa", "bbb", "ccc")
	row := renderWordRow(views, 1, 7)
	if strings.Contains(row, "aaa") {
		t.Fatalf("expected first word scrolled out: %q", row)
	}
	if !strings.Contains(row, "bbb") || !strings.Contains(row, "ccc") {
		t.Fatalf("expected remaining words visible: %q", row)
	}
}
