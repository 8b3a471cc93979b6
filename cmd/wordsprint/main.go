// Package main provides the CLI entrypoint for wordsprint.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordsprint/internal/config"
	"github.com/verte-zerg/wordsprint/internal/countdown"
	"github.com/verte-zerg/wordsprint/internal/logging"
	"github.com/verte-zerg/wordsprint/internal/model"
	"github.com/verte-zerg/wordsprint/internal/wordlist"
)

const (
	defaultLang      = "en"
	defaultWords     = 5
	defaultMaxLength = 6
	defaultCurveWin  = 10
)

var (
	practiceLang      string
	practiceWords     int
	practiceMaxLength int
	practiceTimed     bool
	practiceSeconds   int
	practiceWordList  string
	logLevel          string
)

func main() {
	if err := config.LoadEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordsprint",
		Short:         "Terminal typing-speed practice",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceLang, "lang", defaultLang, "language code")
	rootCmd.Flags().IntVar(&practiceWords, "words", defaultWords, "words per session")
	rootCmd.Flags().IntVar(&practiceMaxLength, "max-length", defaultMaxLength, "maximum word length")
	rootCmd.Flags().BoolVar(&practiceTimed, "timed", false, "end the session when the countdown runs out")
	rootCmd.Flags().IntVar(&practiceSeconds, "seconds", countdown.DefaultSeconds, "countdown length for timed sessions")
	rootCmd.Flags().StringVar(&practiceWordList, "wordlist", "", "word list file (one word per line)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.DefaultLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

// loadFileConfig reads the config file and applies values for flags the
// user did not set.
func loadFileConfig(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-level", &logLevel, config.EnvString(config.EnvLogLevel))
	return fileCfg, nil
}

func newLogger(w *os.File) (zerolog.Logger, error) {
	return logging.New(w, logLevel, false)
}

func newStderrLogger() zerolog.Logger {
	logger, err := logging.New(os.Stderr, logLevel, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v; using %s\n", err, logging.DefaultLevel)
		logger, _ = logging.New(os.Stderr, logging.DefaultLevel, true)
	}
	return logger
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List available word list languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	seen := map[string]string{}
	for _, lang := range wordlist.EmbeddedLangs() {
		seen[lang] = "built-in"
	}
	entries, err := os.ReadDir(config.DefaultWordListDir())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read wordlist directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".txt") {
			continue
		}
		seen[strings.TrimSuffix(name, ".txt")] = "file"
	}
	langs := make([]string, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", lang, seen[lang]); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordsprint configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# lang = %q           # Language code
# words = %d            # Words per session
# max-length = %d       # Maximum word length
# timed = false         # End the session when the countdown runs out
# seconds = %d         # Countdown length for timed sessions
# wordlist = ""         # Word list file, one word per line

[log]
# level = %q        # debug, info, warn, error
`,
		defaultLang,
		defaultWords,
		defaultMaxLength,
		countdown.DefaultSeconds,
		logging.DefaultLevel,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.MaxLength <= 0 {
		return fmt.Errorf("--max-length must be > 0")
	}
	if cfg.Timed && cfg.Seconds <= 0 {
		return fmt.Errorf("--seconds must be > 0")
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}
