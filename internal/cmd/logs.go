package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/Iron-Ham/tmux-layout/internal/config"
	"github.com/Iron-Ham/tmux-layout/internal/errors"
	"github.com/Iron-Ham/tmux-layout/internal/logging"
	"github.com/Iron-Ham/tmux-layout/internal/report"
	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View the tmux-layout log file",
	Long: `View and filter the log file configured with logging.file.

Examples:
  # Show the last 50 entries
  tmux-layout logs

  # Show everything from one invocation
  tmux-layout logs --run 3f2a9c1e -n 0

  # Only warnings and errors from the last hour
  tmux-layout logs --level warn --since 1h

  # Search messages and fields
  tmux-layout logs --grep "backup|new-window"`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsTail  int
	logsLevel string
	logsSince string
	logsGrep  string
	logsRun   string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show logs since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter logs matching pattern (regex)")
	logsCmd.Flags().StringVar(&logsRun, "run", "", "Show only entries whose run_id starts with this prefix")
}

// logFilter selects log entries for display.
type logFilter struct {
	minLevel int
	since    time.Time
	grep     *regexp.Regexp
	run      string
}

// levelPriority returns the priority of a log level for filtering
func levelPriority(level string) int {
	switch strings.ToUpper(level) {
	case logging.LevelDebug:
		return 0
	case logging.LevelInfo:
		return 1
	case logging.LevelWarn:
		return 2
	case logging.LevelError:
		return 3
	default:
		return -1
	}
}

// parseLogEntry decodes one slog JSON line, moving everything except time,
// level and msg into Fields.
func parseLogEntry(line string) (report.LogEntry, error) {
	var all map[string]any
	if err := json.Unmarshal([]byte(line), &all); err != nil {
		return report.LogEntry{}, err
	}

	var entry report.LogEntry
	if s, ok := all["time"].(string); ok {
		entry.Time, _ = time.Parse(time.RFC3339Nano, s)
	}
	entry.Level, _ = all["level"].(string)
	entry.Msg, _ = all["msg"].(string)

	delete(all, "time")
	delete(all, "level")
	delete(all, "msg")
	if len(all) > 0 {
		entry.Fields = all
	}
	return entry, nil
}

// passes checks if a log entry passes all filter criteria
func (f logFilter) passes(entry report.LogEntry) bool {
	if f.minLevel >= 0 && levelPriority(entry.Level) < f.minLevel {
		return false
	}

	if !f.since.IsZero() && entry.Time.Before(f.since) {
		return false
	}

	if f.run != "" {
		runID, _ := entry.Fields["run_id"].(string)
		if !strings.HasPrefix(runID, f.run) {
			return false
		}
	}

	if f.grep != nil && !f.grepMatches(entry) {
		return false
	}

	return true
}

// grepMatches reports whether the message or any single field value matches
// the grep pattern. Each is matched on its own so anchors apply to it.
func (f logFilter) grepMatches(entry report.LogEntry) bool {
	if f.grep.MatchString(entry.Msg) {
		return true
	}
	for _, v := range entry.Fields {
		if f.grep.MatchString(fmt.Sprintf("%v", v)) {
			return true
		}
	}
	return false
}

func runLogs(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidConfig, configErr)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}
	printer := report.New(cmd.OutOrStdout(), cfg.Output.Color)

	logPath := cfg.Logging.ResolveLogFile()
	if logPath == "" {
		printer.Line("No log file configured; logs go to stderr.")
		printer.Line("Set one with: tmux-layout config set logging.file ~/.local/state/tmux-layout.log")
		return nil
	}

	filter := logFilter{minLevel: -1, run: logsRun}
	if logsLevel != "" {
		filter.minLevel = levelPriority(logsLevel)
		if filter.minLevel < 0 {
			return fmt.Errorf("invalid level %q: must be one of debug, info, warn, error", logsLevel)
		}
	}
	if logsSince != "" {
		duration, err := time.ParseDuration(logsSince)
		if err != nil {
			return fmt.Errorf("invalid duration format: %w", err)
		}
		filter.since = time.Now().Add(-duration)
	}
	if logsGrep != "" {
		filter.grep, err = regexp.Compile(logsGrep)
		if err != nil {
			return fmt.Errorf("invalid grep pattern: %w", err)
		}
	}

	file, err := os.Open(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			printer.Line("No logs found at " + logPath)
			return nil
		}
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	type line struct {
		raw   string
		entry *report.LogEntry
	}
	var lines []line

	scanner := bufio.NewScanner(file)
	// Increase buffer size for potentially long log lines
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		text := scanner.Text()
		if text == "" {
			continue
		}
		entry, err := parseLogEntry(text)
		if err != nil {
			// If we can't parse as JSON, display raw line
			lines = append(lines, line{raw: text})
			continue
		}
		if !filter.passes(entry) {
			continue
		}
		lines = append(lines, line{entry: &entry})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading log file: %w", err)
	}

	if logsTail > 0 && len(lines) > logsTail {
		lines = lines[len(lines)-logsTail:]
	}

	if len(lines) == 0 {
		printer.Line("No matching log entries found.")
		return nil
	}
	for _, l := range lines {
		if l.entry == nil {
			printer.Line(l.raw)
			continue
		}
		printer.LogEntry(*l.entry)
	}
	return nil
}
