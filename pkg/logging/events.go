package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"wutonggo/pkg/model"
)

// eventLogPath is the path to the transcript event log. Empty disables it.
var eventLogPath string

// eventLogMu protects concurrent appends to the event log.
var eventLogMu sync.Mutex

// SetEventLogPath configures where transcript entries are appended as JSON
// lines. Pass "" to disable event logging (the default, used by tests).
func SetEventLogPath(path string) {
	eventLogMu.Lock()
	defer eventLogMu.Unlock()
	eventLogPath = path
}

// LogEvent appends one transcript entry to the event log. Failures are
// logged and otherwise ignored; the transcript itself is the source of truth.
func LogEvent(entry model.TranscriptEntry) {
	eventLogMu.Lock()
	defer eventLogMu.Unlock()
	if eventLogPath == "" {
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		slog.Error("Logging: Failed to marshal transcript entry", "error", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(eventLogPath), 0o755); err != nil {
		slog.Error("Logging: Failed to create event log directory", "error", err)
		return
	}
	f, err := os.OpenFile(eventLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		slog.Error("Logging: Failed to open event log", "error", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		slog.Error("Logging: Failed to write event log", "error", err)
	}
}
