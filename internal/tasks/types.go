package tasks

import (
	"context"
	"time"

	"github.com/darmiel/voxauth/internal/logging"
)

// TaskFunc is the unit of work.
// Output written to logger is kept with the task until its next run.
type TaskFunc func(ctx context.Context, logger logging.InternalLogger) error

type TaskStatus struct {
	Name       string    `json:"name,omitempty"`
	Running    bool      `json:"running,omitempty"`
	Runs       int       `json:"runs"`
	LastRun    time.Time `json:"last_run"`
	LastResult string    `json:"last_result,omitempty"`
	NextRun    time.Time `json:"next_run"`
}

type LogEntry struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level,omitempty"`
	Message string    `json:"message,omitempty"`
}
