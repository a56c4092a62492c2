package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// LogEntry is one decoded JSON log record.
type LogEntry struct {
	Time   time.Time
	Level  string
	Msg    string
	Fields map[string]any
}

// levelColors maps slog level names to their display color.
var levelColors = map[string]lipgloss.Color{
	"DEBUG": MutedColor,
	"INFO":  lipgloss.Color("#60A5FA"),
	"WARN":  WarningColor,
	"ERROR": lipgloss.Color("#F87171"),
}

// LogEntry prints e as "[hh:mm:ss.mmm] [LEVEL] msg key=value ..." with
// fields in key order.
func (p *Printer) LogEntry(e LogEntry) {
	level := strings.ToUpper(e.Level)
	levelStyle := p.styles.Window
	if c, ok := levelColors[level]; ok {
		levelStyle = levelStyle.Foreground(c)
	}

	var sb strings.Builder
	sb.WriteString(p.styles.Muted.Render("[" + e.Time.Format("15:04:05.000") + "]"))
	sb.WriteString(" ")
	sb.WriteString(levelStyle.Render("[" + level + "]"))
	sb.WriteString(" ")
	sb.WriteString(e.Msg)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(" ")
		sb.WriteString(p.styles.Session.Render(k + "="))
		sb.WriteString(fmt.Sprintf("%v", e.Fields[k]))
	}

	p.printf("%s\n", sb.String())
}

// Line prints s unchanged.
func (p *Printer) Line(s string) {
	p.printf("%s\n", s)
}
