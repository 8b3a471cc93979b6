// Package generator builds the target word sequence for a session.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/wordsprint/internal/model"
)

// ErrGeneration matches any *GenerationError via errors.Is.
var ErrGeneration = errors.New("word generation failed")

// GenerationError reports that the word source could not satisfy a request.
type GenerationError struct {
	Count     int
	MaxLength int
	Err       error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %d words (max length %d): %v", e.Count, e.MaxLength, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrGeneration.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}

// WordSource supplies exactly n words no longer than maxLength runes.
type WordSource interface {
	Words(maxLength, exactly int) ([]string, error)
}

// ListSource draws words uniformly from a fixed list.
type ListSource struct {
	rnd   *rand.Rand
	words []string
}

// NewListSource returns a ListSource seeded with the current time.
func NewListSource(words []string) *ListSource {
	return NewListSourceWithSeed(words, time.Now().UnixNano())
}

// NewListSourceWithSeed returns a ListSource with a fixed seed.
func NewListSourceWithSeed(words []string, seed int64) *ListSource {
	return &ListSource{
		rnd:   rand.New(rand.NewSource(seed)),
		words: words,
	}
}

// Words implements WordSource.
func (s *ListSource) Words(maxLength, exactly int) ([]string, error) {
	candidates := make([]string, 0, len(s.words))
	for _, word := range s.words {
		n := utf8.RuneCountInString(word)
		if n > 0 && n <= maxLength {
			candidates = append(candidates, word)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no words of length <= %d in list of %d", maxLength, len(s.words))
	}
	result := make([]string, 0, exactly)
	for i := 0; i < exactly; i++ {
		result = append(result, candidates[s.rnd.Intn(len(candidates))])
	}
	return result, nil
}

// Generate asks src for count words and assigns positions 0..count-1.
// It never returns a partial list.
func Generate(src WordSource, count, maxLength int) ([]model.Word, error) {
	fail := func(err error) ([]model.Word, error) {
		return nil, &GenerationError{Count: count, MaxLength: maxLength, Err: err}
	}
	if count <= 0 {
		return fail(fmt.Errorf("count must be > 0"))
	}
	if maxLength <= 0 {
		return fail(fmt.Errorf("max length must be > 0"))
	}
	if src == nil {
		return fail(fmt.Errorf("no word source"))
	}
	texts, err := src.Words(maxLength, count)
	if err != nil {
		return fail(err)
	}
	if len(texts) != count {
		return fail(fmt.Errorf("source returned %d words", len(texts)))
	}
	words := make([]model.Word, 0, count)
	for i, text := range texts {
		n := utf8.RuneCountInString(text)
		if n == 0 {
			return fail(fmt.Errorf("source returned an empty word at %d", i))
		}
		if n > maxLength {
			return fail(fmt.Errorf("source returned %q longer than %d", text, maxLength))
		}
		words = append(words, model.Word{Text: text, Position: i})
	}
	return words, nil
}
