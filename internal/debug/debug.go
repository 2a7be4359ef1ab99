// Package debug provides the process-wide debug logger used by every mdocs stage.
// Output goes to stderr (or the writer set with SetOutput) and is silent unless
// debug mode is enabled via --debug or MDOCS_DEBUG.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	enabled bool
	noColor bool
	out     io.Writer = os.Stderr
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
)

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
}

// SetOutput redirects debug output. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

// Debug prints a debug message with timestamp
func Debug(format string, args ...interface{}) {
	emit(fmt.Sprintf(format, args...), false)
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	emit("=== "+section+" ===", true)
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	emit(fmt.Sprintf("%s = %v", key, value), false)
}

func emit(msg string, highlight bool) {
	mu.RLock()
	on, useColor, w := enabled, !noColor, out
	mu.RUnlock()
	if !on {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	if !useColor {
		fmt.Fprintf(w, "[DEBUG] %s %s\n", timestamp, msg)
		return
	}
	if highlight {
		msg = colorCyan + msg + colorReset
	}
	fmt.Fprintf(w, "%s[DEBUG]%s %s%s%s %s\n",
		colorCyan, colorReset, colorGray, timestamp, colorReset, msg)
}
