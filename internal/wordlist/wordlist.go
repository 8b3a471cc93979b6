// Package wordlist loads word lists from files or the embedded defaults.
package wordlist

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed data/en.txt
var embeddedEnglish string

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return readWords(file)
}

// Embedded returns the built-in word list for a language.
func Embedded(lang string) ([]string, error) {
	switch strings.ToLower(lang) {
	case "en":
		return readWords(strings.NewReader(embeddedEnglish))
	default:
		return nil, fmt.Errorf("no built-in word list for %q", lang)
	}
}

// EmbeddedLangs lists languages with a built-in word list.
func EmbeddedLangs() []string {
	return []string{"en"}
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}
