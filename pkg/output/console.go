package output

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	isatty "github.com/mattn/go-isatty"
)

var (
	styleArrow   = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)  // cyan/blue
	styleBatch   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)  // bright white
	styleDesc    = lipgloss.NewStyle().Faint(true)                                  // dim
	styleWarnLbl = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true) // yellow
	styleWarnTxt = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))            // yellow
	styleAdded   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)  // green
	styleFailed  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red
	colorEnabled = true
)

// InitConsole configures color output based on noColor flag and TTY detection
func InitConsole(noColor bool) {
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	colorEnabled = tty && !noColor
}

func r(st lipgloss.Style, s string) string {
	if !colorEnabled {
		return s
	}
	return st.Render(s)
}

// PreflightLine returns a progress line for one pre-validated batch.
func PreflightLine(batch, total, size int) string {
	arrow := r(styleArrow, "→")
	return fmt.Sprintf("%s %s %s", arrow,
		r(styleBatch, fmt.Sprintf("[%d/%d]", batch, total)),
		r(styleDesc, fmt.Sprintf("%d note(s) confirmed addable", size)))
}

// CommitLine returns a progress line with the running totals after one
// committed batch.
func CommitLine(batch, total, added, failed int) string {
	arrow := r(styleArrow, "→")
	line := fmt.Sprintf("%s %s %s added", arrow,
		r(styleBatch, fmt.Sprintf("[%d/%d]", batch, total)),
		r(styleAdded, fmt.Sprintf("%d", added)))
	if failed > 0 {
		line += fmt.Sprintf(", %s failed", r(styleFailed, fmt.Sprintf("%d", failed)))
	}
	return line
}

// Warnf returns a single-line colored warning string with a standard prefix.
func Warnf(format string, a ...interface{}) string {
	msg := fmt.Sprintf(format, a...)
	return r(styleWarnLbl, "Warning:") + " " + r(styleWarnTxt, msg)
}

// Summary returns the operator-facing end-of-run summary.
func Summary(submitted, added, failed int) string {
	var b strings.Builder
	b.WriteString(r(styleBatch, "Upload complete: "))
	b.WriteString(r(styleAdded, fmt.Sprintf("%d/%d added", added, submitted)))
	if failed > 0 {
		b.WriteString(", ")
		b.WriteString(r(styleFailed, fmt.Sprintf("%d failed", failed)))
	}
	return b.String()
}

// FieldList returns a faint bullet list of note field payloads, one line per
// note, for failure reports on the console.
func FieldList(fieldSets []map[string]string) string {
	if len(fieldSets) == 0 {
		return ""
	}
	var b strings.Builder
	for _, fields := range fieldSets {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, fields[k]))
		}
		b.WriteString(r(styleDesc, "    - "+strings.Join(parts, ", ")))
		b.WriteByte('\n')
	}
	return b.String()
}
