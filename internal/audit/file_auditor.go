package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/darmiel/voxauth/internal/core"
)

var _ core.Auditor = (*FileAuditor)(nil)

var errAuditorClosed = errors.New("audit log is closed")

// FileAuditor appends entries to a file as JSON lines. Each entry is a single write.
type FileAuditor struct {
	mu   sync.Mutex
	path string
	file *os.File
}

func NewFileAuditor(path string) (*FileAuditor, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening audit log '%s': %w", path, err)
	}
	return &FileAuditor{path: path, file: file}, nil
}

func (a *FileAuditor) Log(entry core.AuditEntry) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding audit entry: %w", err)
	}
	line = append(line, '\n')

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return errAuditorClosed
	}
	if _, err := a.file.Write(line); err != nil {
		return fmt.Errorf("writing audit log '%s': %w", a.path, err)
	}
	return nil
}

// Close syncs and closes the file. Later calls to Log fail.
func (a *FileAuditor) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return nil
	}
	syncErr := a.file.Sync()
	closeErr := a.file.Close()
	a.file = nil
	return errors.Join(syncErr, closeErr)
}
