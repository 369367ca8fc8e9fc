package debug

import (
	"io"
	"log"
	"os"
)

// Logger is a debug-gated logger with its own output handle. It is
// passed explicitly to the components that want it; nothing here
// touches the process-wide log state.
type Logger struct {
	enabled bool
	out     *log.Logger
}

func NewLogger(enabled bool) *Logger {
	l := &Logger{enabled: enabled}
	if enabled {
		var w io.Writer = os.Stderr
		if logFile, err := os.OpenFile("debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666); err == nil {
			w = logFile
		}
		l.out = log.New(w, "", log.LstdFlags)
		l.Printf("=== DEBUG MODE ENABLED ===")
	}
	return l
}

// NewWriterLogger logs to the given writer; used by tests.
func NewWriterLogger(w io.Writer) *Logger {
	return &Logger{enabled: true, out: log.New(w, "", 0)}
}

func (d *Logger) Enabled() bool {
	return d != nil && d.enabled
}

func (d *Logger) Printf(format string, args ...interface{}) {
	if d.Enabled() {
		d.out.Printf(format, args...)
	}
}

func (d *Logger) Println(args ...interface{}) {
	if d.Enabled() {
		d.out.Println(args...)
	}
}
