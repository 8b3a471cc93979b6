package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/wordsprint/internal/config"
	"github.com/verte-zerg/wordsprint/internal/model"
)

func TestValidateConfig(t *testing.T) {
	ok := model.Config{Words: 5, MaxLength: 6, Seconds: 60, LogLevel: "info"}
	if err := validateConfig(ok); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}
	bad := []model.Config{
		{Words: 0, MaxLength: 6},
		{Words: 5, MaxLength: 0},
		{Words: 5, MaxLength: 6, Timed: true, Seconds: 0},
		{Words: 5, MaxLength: 6, LogLevel: "chatty"},
	}
	for _, cfg := range bad {
		if err := validateConfig(cfg); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
}

func TestLoadWordsFallsBackToEmbedded(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	words, err := loadWords(model.Config{Lang: "en"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("load words: %v", err)
	}
	if len(words) == 0 {
		t.Fatalf("expected embedded words")
	}
}

func TestLoadWordsExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("cat\nDog\nsun\n"), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	words, err := loadWords(model.Config{Lang: "en", WordListPath: path}, zerolog.Nop())
	if err != nil {
		t.Fatalf("load words: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected filtered words, got %v", words)
	}
}

func TestLoadWordsUnknownLang(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if _, err := loadWords(model.Config{Lang: "xx"}, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for unknown language")
	}
}

func TestLangsListsBuiltinAndFiles(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	listDir := filepath.Join(dir, "wordsprint", "wordlists")
	if err := os.MkdirAll(listDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(listDir, "de.txt"), []byte("hund\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	cmd := newLangsCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("langs: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "de\tfile") || !strings.Contains(out, "en\tbuilt-in") {
		t.Fatalf("unexpected langs output: %q", out)
	}
}

func TestDefaultConfigTemplateParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("template does not parse: %v", err)
	}
	if cfg.Practice.Words != nil || cfg.Log.Level != nil {
		t.Fatalf("expected all template values commented out")
	}
}
