package auditlog

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

const timeFormat = "2006-01-02 15:04:05"

// Logger appends one "[timestamp] message" line per event to a text file.
// Write failures never propagate to the caller; they are only reported on
// the process log so a broken log path cannot abort request handling.
type Logger struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Logger {
	return &Logger{path: path}
}

func (l *Logger) Log(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("auditlog: open %s: %v", l.path, err)
		return
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "[%s] %s\n", time.Now().Format(timeFormat), message); err != nil {
		log.Printf("auditlog: write %s: %v", l.path, err)
	}
}
