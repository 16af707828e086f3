package tasks

import (
	"context"
	"sort"
	"sync"
	"time"
)

const DefaultTimeout = 5 * time.Minute

// Manager runs named tasks on fixed intervals until its context is cancelled.
type Manager struct {
	mu    sync.RWMutex
	tasks map[string]*RunnableTask

	ctx context.Context
	wg  sync.WaitGroup
}

// NewManager creates a manager whose schedulers stop when ctx is done.
func NewManager(ctx context.Context) *Manager {
	return &Manager{
		tasks: make(map[string]*RunnableTask),
		ctx:   ctx,
	}
}

// Register adds a task. A positive interval schedules it immediately.
func (m *Manager) Register(name string, interval time.Duration, fn TaskFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[name]; ok {
		return TaskExistsError{Name: name}
	}
	task := &RunnableTask{
		Name:         name,
		Interval:     interval,
		Timeout:      DefaultTimeout,
		Handler:      fn,
		registeredAt: time.Now(),
	}
	m.tasks[name] = task

	if interval > 0 {
		m.wg.Add(1)
		go m.schedule(task)
	}
	return nil
}

// Trigger runs the task once in the background.
func (m *Manager) Trigger(name string) error {
	task, err := m.get(name)
	if err != nil {
		return err
	}
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		task.Run(m.ctx)
	}()
	return nil
}

func (m *Manager) ListStatus() []TaskStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]TaskStatus, 0, len(m.tasks))
	for _, task := range m.tasks {
		list = append(list, task.Status())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

func (m *Manager) GetLogs(name string) ([]LogEntry, error) {
	task, err := m.get(name)
	if err != nil {
		return nil, err
	}
	return task.Logs(), nil
}

// Wait blocks until every scheduler and triggered run has returned.
func (m *Manager) Wait() {
	m.wg.Wait()
}

func (m *Manager) get(name string) (*RunnableTask, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	task, ok := m.tasks[name]
	if !ok {
		return nil, TaskNotFoundError{Name: name}
	}
	return task, nil
}

func (m *Manager) schedule(task *RunnableTask) {
	defer m.wg.Done()

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			task.Run(m.ctx)
		}
	}
}
