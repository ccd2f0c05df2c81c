package logview

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/tinyhook/tinyhook/internal/debug"
)

// logExtensions are the file types picked up by Scan.
var logExtensions = map[string]bool{
	".md":  true,
	".txt": true,
	".log": true,
}

// Entry describes one log file found under the log directory.
type Entry struct {
	// Path is the file path including the log directory.
	Path string
	// RelPath is the path relative to the log directory, slash separated.
	RelPath string
	// Name is the base file name.
	Name    string
	Size    int64
	ModTime time.Time
}

// Agent returns the agent that wrote the log, taken from the file name
// prefix before the first underscore.
func (e Entry) Agent() string {
	if i := strings.Index(e.Name, "_"); i > 0 {
		return e.Name[:i]
	}
	return "unknown"
}

// IsMarkdown reports whether the entry should be rendered as markdown.
func (e Entry) IsMarkdown() bool {
	return strings.EqualFold(filepath.Ext(e.Name), ".md")
}

// Scan recursively collects log files under dir, newest first.
// It never creates dir.
func Scan(dir string) ([]Entry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newViewError(DirNotFound, dir, "logs directory not found", nil)
		}
		return nil, newViewError(ReadFailed, dir, "failed to stat logs directory", err)
	}
	if !info.IsDir() {
		return nil, newViewError(DirNotFound, dir, "logs path is not a directory", nil)
	}

	var entries []Entry
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subdirectories are skipped, not fatal.
			debug.Debug("[logview] skipping %s: %v", path, err)
			if d != nil && d.IsDir() && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !logExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			debug.Debug("[logview] skipping %s: %v", path, err)
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		entries = append(entries, Entry{
			Path:    path,
			RelPath: filepath.ToSlash(rel),
			Name:    d.Name(),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, newViewError(ReadFailed, dir, "failed to scan logs directory", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].ModTime.Equal(entries[j].ModTime) {
			return entries[i].ModTime.After(entries[j].ModTime)
		}
		return entries[i].RelPath < entries[j].RelPath
	})

	debug.Debug("[logview] found %d log files under %s", len(entries), dir)
	return entries, nil
}

// Filter returns the entries whose name or relative path contains term,
// ignoring case. An empty term matches everything.
func Filter(entries []Entry, term string) []Entry {
	if term == "" {
		return entries
	}

	fold := cases.Fold()
	needle := fold.String(term)

	var out []Entry
	for _, e := range entries {
		if strings.Contains(fold.String(e.Name), needle) || strings.Contains(fold.String(e.RelPath), needle) {
			out = append(out, e)
		}
	}
	return out
}
