package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ETLLogger is the leveled logger shared by every pipeline phase.
// Messages go to a dated log file (when a log directory is configured)
// and are mirrored to standard output.
type ETLLogger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	isVerbose   bool
}

// NewETLLogger creates a logger. logDir may be empty, in which case only
// standard output is used. A log file that cannot be opened degrades to
// stdout-only logging rather than failing the run.
func NewETLLogger(logDir string, verbose bool) *ETLLogger {
	var out io.Writer = io.Discard

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o755); err == nil {
			name := fmt.Sprintf("etl_log_%s.log", time.Now().Format("2006-01-02"))
			file, err := os.OpenFile(filepath.Join(logDir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o666)
			if err == nil {
				out = file
			} else {
				log.Printf("WARN: could not open log file: %v", err)
			}
		}
	}

	return &ETLLogger{
		infoLogger:  log.New(out, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile),
		errorLogger: log.New(out, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile),
		debugLogger: log.New(out, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile),
		isVerbose:   verbose,
	}
}

// Info logs an informational message.
func (l *ETLLogger) Info(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.infoLogger.Println(msg)
	log.Println("INFO:", msg)
}

// Error logs an error message.
func (l *ETLLogger) Error(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.errorLogger.Println(msg)
	log.Println("ERROR:", msg)
}

// Warn logs a warning. Warnings mark non-fatal skips: unreadable subtrees,
// malformed documents, missing source paths.
func (l *ETLLogger) Warn(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.errorLogger.Println("WARN:", msg)
	log.Println("WARN:", msg)
}

// Debug logs a debug message. Suppressed unless verbose mode is enabled.
func (l *ETLLogger) Debug(format string, v ...interface{}) {
	if !l.isVerbose {
		return
	}
	msg := fmt.Sprintf(format, v...)
	l.debugLogger.Println(msg)
	log.Println("DEBUG:", msg)
}

// LogPhaseStart logs the beginning of a pipeline phase.
func (l *ETLLogger) LogPhaseStart(phase string) {
	l.Info("Starting %s phase", phase)
}

// LogPhaseComplete logs the end of a pipeline phase with its duration.
func (l *ETLLogger) LogPhaseComplete(phase string, duration time.Duration) {
	l.Info("%s phase completed in %v", phase, duration)
}
