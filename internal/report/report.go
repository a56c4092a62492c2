// Package report renders tmux-layout command output for humans.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/Iron-Ham/tmux-layout/internal/backup"
	"github.com/Iron-Ham/tmux-layout/internal/restore"
	"github.com/Iron-Ham/tmux-layout/internal/topology"
	"github.com/Iron-Ham/tmux-layout/internal/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color modes accepted by New.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	indent         = "  "
	columnGap      = "  "
	maxWindowWidth = 24
	minDirWidth    = 16
)

// Printer writes styled reports to an output stream.
type Printer struct {
	out    io.Writer
	styles Styles
	width  int // 0 disables truncation
}

// New returns a Printer for w. colorMode is one of ColorAuto, ColorAlways or
// ColorNever; auto enables color only when w is a terminal.
func New(w io.Writer, colorMode string) *Printer {
	r := lipgloss.NewRenderer(w)
	tty, width := terminalInfo(w)

	switch colorMode {
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		r.SetColorProfile(termenv.TrueColor)
	default:
		if !tty {
			r.SetColorProfile(termenv.Ascii)
		}
	}

	return &Printer{
		out:    w,
		styles: NewStyles(r),
		width:  width,
	}
}

// WithWidth overrides the detected terminal width. Zero disables truncation.
func (p *Printer) WithWidth(width int) *Printer {
	p.width = width
	return p
}

// terminalInfo reports whether w is a terminal and, if so, its width.
func terminalInfo(w io.Writer) (bool, int) {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false, 0
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return false, 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return true, 0
	}
	return true, width
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Topology lists t grouped by session under a header naming path.
func (p *Printer) Topology(path string, t topology.Topology) {
	sessions := t.Sessions()
	p.printf("%s %s\n", p.styles.Title.Render(path),
		p.styles.Muted.Render(fmt.Sprintf("(%s, %s)", plural(len(t), "window"), plural(len(sessions), "session"))))

	if len(t) == 0 {
		p.printf("%s%s\n", indent, p.styles.Muted.Render("no windows"))
		return
	}

	windowWidth := p.windowColumnWidth(t)
	grouped := t.BySession()
	for _, session := range sessions {
		p.printf("%s\n", p.styles.Session.Render(session))
		for _, rec := range grouped[session] {
			p.printf("%s%s\n", indent, p.windowLine(rec, windowWidth, len(indent)))
		}
	}
}

// SavePlan describes a dry-run save: where the layout would go and what it
// would contain.
func (p *Printer) SavePlan(path string, t topology.Topology) {
	p.printf("%s %s\n", p.styles.Planned.Render("would save"),
		fmt.Sprintf("%s to %s", plural(len(t), "window"), path))
	windowWidth := p.windowColumnWidth(t)
	for _, rec := range t {
		line := p.styles.Session.Render(rec.Session) + columnGap + p.windowLine(rec, windowWidth, len(indent)+len(rec.Session)+len(columnGap))
		p.printf("%s%s\n", indent, line)
	}
}

// Saved confirms a completed save.
func (p *Printer) Saved(path string, t topology.Topology) {
	p.printf("%s %s in %s to %s\n", p.styles.Created.Render("saved"),
		plural(len(t), "window"), plural(len(t.Sessions()), "session"), path)
}

// Restore describes the actions of a restore. dryRun phrases them as a plan.
func (p *Printer) Restore(result restore.Result, dryRun bool) {
	verb := p.styles.Created.Render("created")
	if dryRun {
		verb = p.styles.Planned.Render("would create")
	}

	for _, a := range result.Actions {
		kind := "window "
		if a.Kind == restore.CreateSession {
			kind = "session"
		}
		p.printf("%s %s %s%s%s%s%s\n", verb, kind,
			p.styles.Session.Render(a.Record.Session), columnGap,
			p.styles.Window.Render(a.Record.Window), columnGap,
			p.styles.Dir.Render(a.Record.Directory))
	}

	if result.Empty() {
		p.printf("%s\n", p.styles.Muted.Render(
			fmt.Sprintf("nothing to restore, %s already present", plural(result.Skipped, "window"))))
		return
	}

	summary := fmt.Sprintf("%s and %s", plural(result.SessionsCreated(), "session"), plural(result.WindowsCreated(), "window"))
	if dryRun {
		p.printf("%s %s", "would restore", summary)
	} else {
		p.printf("%s %s", "restored", summary)
	}
	if result.Skipped > 0 {
		p.printf(", %d already present", result.Skipped)
	}
	p.printf("\n")
}

// Backups lists the backup set newest first.
func (p *Printer) Backups(backups []backup.Backup) {
	if len(backups) == 0 {
		p.printf("%s\n", p.styles.Muted.Render("no backups"))
		return
	}
	for _, b := range backups {
		p.printf("%s%s%s\n", b.Path, columnGap, p.styles.Muted.Render(b.ModTime.Format(time.DateTime)))
	}
}

// windowColumnWidth is the padded width of the window column.
func (p *Printer) windowColumnWidth(t topology.Topology) int {
	w := 0
	for _, rec := range t {
		w = max(w, lipgloss.Width(rec.Window))
	}
	return min(w, maxWindowWidth)
}

// windowLine renders "window  directory", truncating to the terminal width
// when one is known. used is the number of columns already taken.
func (p *Printer) windowLine(rec topology.Record, windowWidth, used int) string {
	window := util.TruncateANSI(rec.Window, maxWindowWidth)
	dir := rec.Directory
	if p.width > 0 {
		avail := p.width - used - windowWidth - len(columnGap)
		dir = util.TruncatePathLeft(dir, max(avail, minDirWidth))
	}
	return util.PadRight(p.styles.Window.Render(window), windowWidth) + columnGap + p.styles.Dir.Render(dir)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
