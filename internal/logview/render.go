package logview

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
)

// maxPathWidth caps the file column in listing tables.
const maxPathWidth = 60

// levelColors maps log level markers to their colors, checked in order.
var levelColors = []struct {
	marker string
	color  lipgloss.Color
	bold   bool
}{
	{"[ERROR]", "1", true},
	{"[WARN]", "3", true},
	{"[WARNING]", "3", true},
	{"[INFO]", "6", false},
	{"[SUCCESS]", "2", true},
	{"[SUGGESTION]", "5", true},
	{"[DEBUG]", "8", false},
}

// Styles holds the lipgloss styles used by the viewer. A plain Styles
// renders text unchanged.
type Styles struct {
	plain bool

	Title     lipgloss.Style
	Header    lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Timestamp lipgloss.Style
	Rule      lipgloss.Style
	Heading   lipgloss.Style
	Match     lipgloss.Style
	Border    lipgloss.Style

	levels map[string]lipgloss.Style
}

// NewStyles builds styles bound to w. With plain set, no escape codes are
// emitted regardless of the terminal.
func NewStyles(w io.Writer, plain bool) Styles {
	r := lipgloss.NewRenderer(w)
	levels := make(map[string]lipgloss.Style, len(levelColors))
	for _, lc := range levelColors {
		levels[lc.marker] = r.NewStyle().Foreground(lc.color).Bold(lc.bold)
	}
	return Styles{
		levels:    levels,
		plain:     plain,
		Title:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Header:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		Muted:     r.NewStyle().Faint(true),
		Success:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		Warning:   r.NewStyle().Foreground(lipgloss.Color("3")),
		Error:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		Timestamp: r.NewStyle().Faint(true).Foreground(lipgloss.Color("6")),
		Rule:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		Heading:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		Match:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")).Background(lipgloss.Color("1")),
		Border:    r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// Render applies style to s unless the styles are plain.
func (st Styles) Render(style lipgloss.Style, s string) string {
	if st.plain {
		return s
	}
	return style.Render(s)
}

// FormatSize formats a byte count with one decimal, e.g. "1.5KB".
func FormatSize(n int64) string {
	size := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f%s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1fTB", size)
}

// Colorize colors each line of a plain-text log by its level marker,
// timestamp prefix or section rule.
func (st Styles) Colorize(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = st.colorizeLine(line)
	}
	return strings.Join(lines, "\n")
}

func (st Styles) colorizeLine(line string) string {
	if line == "" {
		return line
	}

	upper := strings.ToUpper(line)
	for _, lc := range levelColors {
		if strings.Contains(upper, lc.marker) {
			return st.Render(st.levels[lc.marker], line)
		}
	}

	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "[2") && strings.Contains(prefix(line, 30), "]"):
		return st.Render(st.Timestamp, line)
	case strings.HasPrefix(trimmed, "===") || strings.HasPrefix(trimmed, "---"):
		return st.Render(st.Rule, line)
	case strings.HasPrefix(trimmed, "##"):
		return st.Render(st.Heading, line)
	}
	return line
}

// prefix returns at most the first n bytes of s.
func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Highlight marks every case-insensitive occurrence of query in line.
func (st Styles) Highlight(line, query string) string {
	if query == "" {
		return line
	}
	return queryPattern(query).ReplaceAllStringFunc(line, func(m string) string {
		return st.Render(st.Match, m)
	})
}

// RenderMarkdown renders markdown for the terminal. When styled is false
// the notty style is used so the output carries no escape codes.
func RenderMarkdown(md string, width int, styled bool) string {
	if md == "" {
		return ""
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if styled {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(rendered, "\n ")
}

// truncate shortens s to fit width display cells.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

// ListTable renders entries as a numbered table.
func (st Styles) ListTable(entries []Entry) string {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			truncate(e.Agent(), 20),
			e.ModTime.Format("2006-01-02"),
			FormatSize(e.Size),
			truncate(e.RelPath, maxPathWidth),
		})
	}
	return st.table([]string{"#", "Agent", "Date", "Size", "File"}, rows)
}

// SearchTable renders search matches as a numbered table.
func (st Styles) SearchTable(matches []Match) string {
	rows := make([][]string, 0, len(matches))
	for i, m := range matches {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			truncate(m.Entry.RelPath, maxPathWidth),
			strconv.Itoa(m.Count),
		})
	}
	return st.table([]string{"#", "File", "Matches"}, rows)
}

func (st Styles) table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...)

	if !st.plain {
		t = t.BorderStyle(st.Border).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return st.Header.Padding(0, 1)
				}
				return lipgloss.NewStyle().Padding(0, 1)
			})
	} else {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	}
	return t.Render()
}
