// Package events provides per-run event logging for conf2wiki.
// Events are stored in append-only JSONL files.
package events

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event represents a single event in events.jsonl.
// This is the public contract for the events file format.
type Event struct {
	SchemaVersion string         `json:"schema_version"`
	Timestamp     string         `json:"timestamp"` // RFC3339
	RunID         string         `json:"run_id"`
	Event         string         `json:"event"` // "export_started", "page_created", ...
	Data          map[string]any `json:"data,omitempty"`
}

// NewRunID returns a fresh identifier shared by all events of one run.
func NewRunID() string {
	return uuid.NewString()
}

// Log appends events for one run to a JSONL file. Appends are
// mutex-serialized because sync pool workers emit events concurrently.
type Log struct {
	mu    sync.Mutex
	path  string
	runID string
	now   func() time.Time
}

// NewLog returns a Log writing to path for the given run.
func NewLog(path, runID string) *Log {
	return &Log{path: path, runID: runID, now: time.Now}
}

// Append writes a single event line.
//
// Best-effort: errors are returned but callers typically ignore them
// and continue with the main operation.
func (l *Log) Append(event string, data map[string]any) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := Event{
		SchemaVersion: "1.0",
		Timestamp:     l.now().UTC().Format(time.RFC3339),
		RunID:         l.runID,
		Event:         event,
		Data:          data,
	}
	return appendLine(l.path, e)
}

func appendLine(path string, e Event) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = f.Write(data)
	return err
}

// ExportStartedData returns the data map for an export_started event.
func ExportStartedData(dryRun bool) map[string]any {
	return map[string]any{"dry_run": dryRun}
}

// ExportFinishedData returns the data map for an export_finished event.
func ExportFinishedData(exported, filtered, failed int) map[string]any {
	return map[string]any{
		"exported": exported,
		"filtered": filtered,
		"failed":   failed,
	}
}

// UploadStartedData returns the data map for an upload_started event.
func UploadStartedData(files int, dryRun bool) map[string]any {
	return map[string]any{
		"files":   files,
		"dry_run": dryRun,
	}
}

// PageResultData returns the data map for page_created / page_updated /
// page_failed events.
func PageResultData(file, path string, pageID int, reason string) map[string]any {
	data := map[string]any{
		"file": file,
		"path": path,
	}
	if pageID != 0 {
		data["page_id"] = pageID
	}
	if reason != "" {
		data["reason"] = reason
	}
	return data
}

// UploadFinishedData returns the data map for an upload_finished event.
func UploadFinishedData(created, updated, failed int) map[string]any {
	return map[string]any{
		"created": created,
		"updated": updated,
		"failed":  failed,
	}
}
