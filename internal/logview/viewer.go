package logview

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/tinyhook/tinyhook/internal/debug"
)

// DefaultWidth is the render width when the terminal size is unknown.
const DefaultWidth = 100

const prompt = "log-viewer> "

// commands lists the REPL verbs, used for suggestions.
var commands = []string{"list", "ls", "view", "filter", "search", "refresh", "clear", "cls", "help", "exit", "quit"}

// Picker chooses a file interactively and returns its 1-based number.
type Picker func(entries []Entry) (int, error)

// Options configures a Viewer.
type Options struct {
	// Dir is the log directory to browse.
	Dir string
	In  io.Reader
	Out io.Writer
	// Color enables ANSI styling and styled markdown.
	Color bool
	// Width is the render width; zero means DefaultWidth.
	Width int
	// Pick is used by "view" without a number. Nil disables it.
	Pick Picker
}

// Viewer is a read-only browser over a log directory.
type Viewer struct {
	dir   string
	in    io.Reader
	out   io.Writer
	color bool
	width int
	pick  Picker
	st    Styles

	files []Entry
}

// New creates a Viewer. Call Refresh or Run to scan the directory.
func New(opts Options) *Viewer {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	return &Viewer{
		dir:   opts.Dir,
		in:    opts.In,
		out:   opts.Out,
		color: opts.Color,
		width: opts.Width,
		pick:  opts.Pick,
		st:    NewStyles(opts.Out, !opts.Color),
	}
}

// Files returns the cached scan results.
func (v *Viewer) Files() []Entry {
	return v.files
}

// Refresh rescans the log directory. On error the cache is emptied.
func (v *Viewer) Refresh() error {
	files, err := Scan(v.dir)
	if err != nil {
		v.files = nil
		return err
	}
	v.files = files
	return nil
}

// Run shows the banner, scans and then reads commands until exit, EOF or
// context cancellation.
func (v *Viewer) Run(ctx context.Context) error {
	v.banner()
	v.refresh()
	fmt.Fprintln(v.out, v.st.Render(v.st.Muted, "Type 'help' for commands, 'exit' to quit"))
	fmt.Fprintln(v.out)

	scanner := bufio.NewScanner(v.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(v.out, v.st.Render(v.st.Title, prompt))
		if !scanner.Scan() {
			fmt.Fprintln(v.out)
			return scanner.Err()
		}
		if quit := v.Execute(scanner.Text()); quit {
			fmt.Fprintln(v.out)
			fmt.Fprintln(v.out, v.st.Render(v.st.Success, "Thanks for using TinyHook Log Viewer!"))
			return nil
		}
	}
}

// Execute runs one REPL line and reports whether the viewer should exit.
func (v *Viewer) Execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	command := strings.ToLower(fields[0])
	args := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
	debug.Debug("[logview] command=%q args=%q", command, args)

	switch command {
	case "exit", "quit", "q":
		return true
	case "help", "?":
		v.help()
	case "list", "ls":
		v.List("")
	case "refresh":
		v.refresh()
	case "view":
		v.view(args)
	case "filter":
		if args == "" {
			v.errorf("Usage: filter <term>")
			return false
		}
		v.List(args)
	case "search":
		if args == "" {
			v.errorf("Usage: search <query>")
			return false
		}
		v.Search(unquote(args))
	case "clear", "cls":
		fmt.Fprint(v.out, "\033[H\033[2J")
		v.banner()
	default:
		v.errorf("Unknown command: %s", command)
		if matches := fuzzy.Find(command, commands); len(matches) > 0 {
			fmt.Fprintln(v.out, v.st.Render(v.st.Muted, fmt.Sprintf("Did you mean: %s?", matches[0].Str)))
		}
		fmt.Fprintln(v.out, v.st.Render(v.st.Muted, "Type 'help' to see available commands"))
		fmt.Fprintln(v.out)
	}
	return false
}

// List prints the cached files, optionally filtered by term.
func (v *Viewer) List(term string) {
	files := v.files
	if term != "" {
		files = Filter(files, term)
		fmt.Fprintf(v.out, "Filtered results for: %s\n\n", v.st.Render(v.st.Title, term))
	}
	if len(files) == 0 {
		fmt.Fprintln(v.out, v.st.Render(v.st.Warning, "No log files found."))
		return
	}

	fmt.Fprintln(v.out, v.st.Render(v.st.Header, fmt.Sprintf("Agent Logs (%d files)", len(files))))
	fmt.Fprintln(v.out, v.st.ListTable(files))
	fmt.Fprintln(v.out)
}

// View displays file number n (1-based) from the cached scan.
func (v *Viewer) View(n int) error {
	if n < 1 || n > len(v.files) {
		return newViewError(InvalidIndex, "", fmt.Sprintf("Invalid file number. Use 1-%d", len(v.files)), nil)
	}
	e := v.files[n-1]

	data, err := os.ReadFile(e.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return newViewError(ReadFailed, e.Path, "file not found", nil)
		}
		return newViewError(ReadFailed, e.Path, "failed to read file", err)
	}
	content := string(data)

	header := strings.Join([]string{
		"File:     " + e.RelPath,
		"Size:     " + FormatSize(int64(len(data))),
		"Modified: " + e.ModTime.Format("2006-01-02 15:04:05"),
		"Lines:    " + strconv.Itoa(countLines(content)),
	}, "\n")
	box := lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(0, 1)
	if !v.st.plain {
		box = box.BorderForeground(lipgloss.Color("6"))
	}
	fmt.Fprintln(v.out, v.st.Render(v.st.Title, "Log File Details"))
	fmt.Fprintln(v.out, box.Render(header))
	fmt.Fprintln(v.out)

	if e.IsMarkdown() {
		fmt.Fprintln(v.out, RenderMarkdown(content, v.width, v.color))
	} else {
		fmt.Fprintln(v.out, v.st.Colorize(strings.TrimRight(content, "\n")))
	}
	fmt.Fprintln(v.out)
	return nil
}

// Search prints per-file match counts and a preview of the first match.
func (v *Viewer) Search(query string) {
	res := Search(v.files, query)
	if len(res.Matches) == 0 {
		fmt.Fprintf(v.out, "%s %s\n", v.st.Render(v.st.Warning, "No results found for:"), query)
		return
	}

	fmt.Fprintln(v.out, v.st.Render(v.st.Header, fmt.Sprintf("Search Results for '%s' (%d files)", query, len(res.Matches))))
	fmt.Fprintln(v.out, v.st.SearchTable(res.Matches))
	fmt.Fprintln(v.out)

	if res.Preview == nil {
		return
	}
	fmt.Fprintf(v.out, "Preview of first match (%s):\n\n", res.Preview.Entry.RelPath)
	for _, l := range res.Preview.Lines {
		if l.Hit {
			num := v.st.Render(v.st.Success, fmt.Sprintf("%4d", l.Number))
			fmt.Fprintf(v.out, "%s → %s\n", num, v.st.Highlight(l.Text, query))
		} else {
			num := v.st.Render(v.st.Muted, fmt.Sprintf("%4d", l.Number))
			fmt.Fprintf(v.out, "%s   %s\n", num, l.Text)
		}
	}
	fmt.Fprintln(v.out)
}

func (v *Viewer) view(args string) {
	if args == "" {
		if v.pick == nil || len(v.files) == 0 {
			v.errorf("Usage: view <file_number>")
			return
		}
		n, err := v.pick(v.files)
		if err != nil {
			v.errorf("%v", err)
			return
		}
		args = strconv.Itoa(n)
	}

	n, err := strconv.Atoi(args)
	if err != nil {
		v.errorf("File number must be an integer")
		return
	}
	if err := v.View(n); err != nil {
		v.errorf("%v", err)
	}
}

func (v *Viewer) refresh() {
	if err := v.Refresh(); err != nil {
		v.errorf("%v", err)
		return
	}
	fmt.Fprintf(v.out, "%s Found %d log files\n\n", v.st.Render(v.st.Success, "✓"), len(v.files))
}

func (v *Viewer) banner() {
	title := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 4)
	if !v.st.plain {
		title = title.BorderForeground(lipgloss.Color("6")).Bold(true)
	}
	fmt.Fprintln(v.out, title.Render("TinyHook Agent Log Viewer"))
	fmt.Fprintln(v.out, v.st.Render(v.st.Muted, "Logs Directory: "+v.dir))
	fmt.Fprintln(v.out)
}

func (v *Viewer) help() {
	fmt.Fprintln(v.out, v.st.Render(v.st.Title, "Available Commands:"))
	fmt.Fprint(v.out, `
  list | ls          List all available log files
  view <n>           View log file by number
  filter <term>      Filter log list by agent name or date
  search <query>     Search for text across all logs
  refresh            Refresh log files cache
  clear | cls        Clear the screen
  help | ?           Show this help message
  exit | quit | q    Exit the log viewer

Examples:

  view 1                   View first log file from list
  filter file-organizer    Show only file-organizer logs
  filter 2025-11-09        Show logs from a specific date
  search "package manager" Search for a phrase (case-insensitive)

`)
}

func (v *Viewer) errorf(format string, args ...interface{}) {
	fmt.Fprintf(v.out, "%s %s\n", v.st.Render(v.st.Error, "ERROR:"), fmt.Sprintf(format, args...))
}

// unquote strips one pair of surrounding double quotes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}
