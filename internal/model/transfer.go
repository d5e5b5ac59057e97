package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// TransferKind tells how the source is read
type TransferKind string

const (
	TransferHTTP TransferKind = "http"
	TransferCopy TransferKind = "copy"
)

// TransferTask represents a single file transfer
type TransferTask struct {
	ID          string
	Source      string // URL or local path
	Destination string // path of the written file
	Kind        TransferKind
	Status      TaskStatus
	Percent     int       // 0 to 100
	BytesDone   int64     // bytes written so far
	BytesTotal  int64     // -1 if unknown
	Speed       string    // human readable speed (e.g., "1.2MB/s")
	ETASec      int       // ETA in seconds, -1 if unknown
	LastError   string    // last error message if any
	StartedAt   time.Time // when the transfer started
	FinishedAt  time.Time // when the transfer finished
}

// Progress returns the completed fraction from 0.0 to 1.0
func (tt *TransferTask) Progress() float64 {
	if tt.Status == TaskStatusCompleted {
		return 1
	}
	if tt.BytesTotal <= 0 {
		return float64(tt.Percent) / MaxPercent
	}
	p := float64(tt.BytesDone) / float64(tt.BytesTotal)
	if p > 1 {
		return 1
	}
	return p
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (tt *TransferTask) GetETAString() string {
	if tt.ETASec <= 0 {
		return "—"
	}

	hours := tt.ETASec / 3600
	minutes := (tt.ETASec % 3600) / 60
	seconds := tt.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayTitle returns the destination file name, the source file name,
// or the raw source in order of preference
func (tt *TransferTask) GetDisplayTitle() string {
	if tt.Destination != "" {
		return filepath.Base(tt.Destination)
	}

	source := strings.TrimSpace(tt.Source)
	if source == "" {
		return ""
	}

	// URLs keep their query string out of the title
	trimmed := source
	if idx := strings.IndexAny(trimmed, "?#"); idx > 0 {
		trimmed = trimmed[:idx]
	}
	trimmed = strings.TrimRight(trimmed, "/\\")
	parts := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) > 0 && !strings.HasSuffix(parts[len(parts)-1], ":") {
		return parts[len(parts)-1]
	}
	return source
}
