// Package debug emits timestamped diagnostics when --debug is set.
// Output goes to stderr so it never mixes with command output.
package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var (
	enabled atomic.Bool
	noColor atomic.Bool

	outMu sync.Mutex
	out   io.Writer = os.Stderr
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
)

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	enabled.Store(enable)
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	return enabled.Load()
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	noColor.Store(disable)
}

// SetOutput redirects debug output. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

// emit writes one line prefixed with the debug tag and timestamp.
// highlight, when set, is rendered in cyan ahead of body.
func emit(highlight, body string) {
	timestamp := time.Now().Format("15:04:05.000")

	outMu.Lock()
	defer outMu.Unlock()

	if noColor.Load() {
		fmt.Fprintf(out, "[DEBUG] %s %s%s\n", timestamp, highlight, body)
		return
	}
	fmt.Fprintf(out, "%s[DEBUG]%s %s%s%s %s%s%s%s\n",
		colorCyan, colorReset, colorGray, timestamp, colorReset,
		colorCyan, highlight, colorReset, body)
}

// Debug prints a debug message with timestamp
func Debug(format string, args ...interface{}) {
	if !IsEnabled() {
		return
	}
	emit("", fmt.Sprintf(format, args...))
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	if !IsEnabled() {
		return
	}
	emit("=== "+section+" ===", "")
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	if !IsEnabled() {
		return
	}
	emit(key, fmt.Sprintf(" = %v", value))
}

// DebugJSON prints structured data as JSON for debugging
func DebugJSON(key string, v interface{}) {
	if !IsEnabled() {
		return
	}

	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Debug("Failed to marshal %s to JSON: %v", key, err)
		return
	}
	emit(key, ":\n"+string(jsonBytes))
}
