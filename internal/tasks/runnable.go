package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const MaxLogsPerTask = 1000

type RunnableTask struct {
	Name     string
	Interval time.Duration
	Timeout  time.Duration
	Handler  TaskFunc

	registeredAt time.Time

	mu         sync.RWMutex
	running    bool
	runs       int
	lastRun    time.Time
	lastResult string
	logs       []LogEntry
}

// Run executes the handler once. Overlapping runs are skipped.
func (t *RunnableTask) Run(ctx context.Context) {
	l := log.With().Str("task", t.Name).Logger()

	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		l.Warn().Msg("task is already running, skipping execution")
		return
	}
	t.running = true
	t.logs = make([]LogEntry, 0)
	t.mu.Unlock()

	logger := newRunLogger(t, l)
	logger.Info("starting task execution")

	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	start := time.Now()
	err := t.Handler(ctx, logger)
	duration := time.Since(start)

	t.mu.Lock()
	t.running = false
	t.runs++
	t.lastRun = start
	if err != nil {
		t.lastResult = fmt.Sprintf("failed: %v", err)
	} else {
		t.lastResult = "success"
	}
	t.mu.Unlock()

	if err != nil {
		logger.Error("task failed after %s: %v", duration, err)
	} else {
		logger.Info("task completed successfully in %s", duration)
	}
}

func (t *RunnableTask) Status() TaskStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var next time.Time
	if t.Interval > 0 {
		if !t.lastRun.IsZero() {
			next = t.lastRun.Add(t.Interval)
		} else {
			next = t.registeredAt.Add(t.Interval)
		}
	}

	return TaskStatus{
		Name:       t.Name,
		Running:    t.running,
		Runs:       t.runs,
		LastRun:    t.lastRun,
		LastResult: t.lastResult,
		NextRun:    next,
	}
}

func (t *RunnableTask) Logs() []LogEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cpy := make([]LogEntry, len(t.logs))
	copy(cpy, t.logs)
	return cpy
}

func (t *RunnableTask) appendLog(level, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.logs = append(t.logs, LogEntry{
		Time:    time.Now(),
		Level:   level,
		Message: msg,
	})
	if len(t.logs) > MaxLogsPerTask {
		t.logs = t.logs[1:]
	}
}
