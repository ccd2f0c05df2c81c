package logview

import (
	"os"
	"regexp"
	"strings"

	"github.com/tinyhook/tinyhook/internal/debug"
)

// previewContext is the number of lines shown either side of a preview hit.
const previewContext = 3

// Match is a file containing the search query.
type Match struct {
	Entry Entry
	// Count is the number of case-insensitive occurrences in the file.
	Count int
}

// PreviewLine is one line of a search preview.
type PreviewLine struct {
	// Number is the 1-based line number.
	Number int
	Text   string
	// Hit marks the line containing the first occurrence.
	Hit bool
}

// Preview shows the first occurrence of the query with surrounding lines.
type Preview struct {
	Entry Entry
	Lines []PreviewLine
}

// SearchResult holds every matching file and a preview of the first one.
type SearchResult struct {
	Query   string
	Matches []Match
	Preview *Preview
}

// queryPattern compiles a case-insensitive literal pattern for query.
func queryPattern(query string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
}

// Search looks for query in every entry, preserving entry order.
// Files that cannot be read are skipped.
func Search(entries []Entry, query string) *SearchResult {
	result := &SearchResult{Query: query}
	if query == "" {
		return result
	}

	re := queryPattern(query)
	for _, e := range entries {
		data, err := os.ReadFile(e.Path)
		if err != nil {
			debug.Debug("[logview] search skipping %s: %v", e.Path, err)
			continue
		}
		content := string(data)

		locs := re.FindAllStringIndex(content, -1)
		if len(locs) == 0 {
			continue
		}
		result.Matches = append(result.Matches, Match{Entry: e, Count: len(locs)})

		if result.Preview == nil {
			result.Preview = buildPreview(e, content, re)
		}
	}
	return result
}

func buildPreview(e Entry, content string, re *regexp.Regexp) *Preview {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if !re.MatchString(line) {
			continue
		}
		start := max(0, i-previewContext)
		end := min(len(lines), i+previewContext+1)

		p := &Preview{Entry: e}
		for j := start; j < end; j++ {
			p.Lines = append(p.Lines, PreviewLine{Number: j + 1, Text: lines[j], Hit: j == i})
		}
		return p
	}
	return nil
}
