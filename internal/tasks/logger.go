package tasks

import (
	"github.com/rs/zerolog"

	"github.com/darmiel/voxauth/internal/logging"
)

// newRunLogger logs to zerolog first, then to the task's run log.
func newRunLogger(task *RunnableTask, zl zerolog.Logger) logging.InternalLogger {
	return logging.NewLineLogger(logging.ZerologSink(zl), task.appendLog)
}
