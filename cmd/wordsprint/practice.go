package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordsprint/internal/config"
	"github.com/verte-zerg/wordsprint/internal/generator"
	"github.com/verte-zerg/wordsprint/internal/logging"
	"github.com/verte-zerg/wordsprint/internal/model"
	"github.com/verte-zerg/wordsprint/internal/store"
	"github.com/verte-zerg/wordsprint/internal/tui"
	"github.com/verte-zerg/wordsprint/internal/wordlist"
)

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "lang", &practiceLang, fileCfg.Practice.Lang)
	applyIntConfig(cmd, "words", &practiceWords, fileCfg.Practice.Words)
	applyIntConfig(cmd, "max-length", &practiceMaxLength, fileCfg.Practice.MaxLength)
	applyBoolConfig(cmd, "timed", &practiceTimed, fileCfg.Practice.Timed)
	applyIntConfig(cmd, "seconds", &practiceSeconds, fileCfg.Practice.Seconds)
	applyStringConfig(cmd, "wordlist", &practiceWordList, fileCfg.Practice.WordList)

	cfg := model.Config{
		Lang:         practiceLang,
		Words:        practiceWords,
		MaxLength:    practiceMaxLength,
		Timed:        practiceTimed,
		Seconds:      practiceSeconds,
		WordListPath: practiceWordList,
		LogLevel:     logLevel,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	logFile, err := logging.OpenFile(config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil {
			// Best-effort close of the log file.
			_ = cerr
		}
	}()
	logger, err := newLogger(logFile)
	if err != nil {
		return err
	}

	words, err := loadWords(cfg, logger)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error().Err(cerr).Msg("failed to close db")
		}
	}()

	src := generator.NewListSource(words)
	m := tui.NewModel(cfg, st, src, logger)
	defer m.Close()
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// loadWords reads the configured word list, then the per-language file
// under the config dir, then the built-in list.
func loadWords(cfg model.Config, logger zerolog.Logger) ([]string, error) {
	filter := wordlist.FilterForLang(cfg.Lang)
	if cfg.WordListPath != "" {
		words, err := wordlist.LoadWords(cfg.WordListPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load word list %s: %w", cfg.WordListPath, err)
		}
		return wordlist.Filter(words, filter), nil
	}
	path := config.DefaultWordListPath(cfg.Lang)
	words, err := wordlist.LoadWords(path)
	if err == nil {
		logger.Debug().Str("path", path).Int("words", len(words)).Msg("loaded word list")
		return wordlist.Filter(words, filter), nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load word list %s: %w", path, err)
	}
	words, err = wordlist.Embedded(cfg.Lang)
	if err != nil {
		return nil, fmt.Errorf("%w (add one at %s, see: wordsprint langs)", err, path)
	}
	return wordlist.Filter(words, filter), nil
}
