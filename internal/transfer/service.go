package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/ytget/transfer-panel/internal/config"
	"github.com/ytget/transfer-panel/internal/logging"
	"github.com/ytget/transfer-panel/internal/model"
	"github.com/ytget/transfer-panel/internal/platform"
)

// TaskIDPrefix prefixes every generated task id.
const TaskIDPrefix = "transfer-"

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logging.OrNop(logger) }
}

// WithHTTPClient replaces the client used for HTTP sources.
func WithHTTPClient(client *retryablehttp.Client) Option {
	return func(s *Service) {
		if client != nil {
			s.sources[model.TransferHTTP] = httpSource{client: client}
		}
	}
}

// WithMetrics feeds transfer counters into m.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithProgressInterval sets the minimum gap between progress reports of a
// single task. Zero or less reports every write.
func WithProgressInterval(d time.Duration) Option {
	return func(s *Service) { s.progressInterval = d }
}

type taskEntry struct {
	task   *model.TransferTask
	cancel context.CancelFunc
}

// Service handles transfer operations
type Service struct {
	tasks       map[string]*taskEntry
	order       []string // insertion order
	pending     []string // FIFO queue of tasks waiting for a slot
	tasksMutex  sync.RWMutex
	maxParallel int
	activeCount int
	destDir     string

	notifyMutex sync.Mutex
	onUpdate    func(*model.TransferTask) // callback for UI updates

	logger           *zap.Logger
	metrics          *Metrics
	sources          map[model.TransferKind]source
	progressInterval time.Duration
	wg               sync.WaitGroup
}

// NewService creates a new transfer service
func NewService(destDir string, maxParallel int, opts ...Option) *Service {
	s := &Service{
		tasks:            make(map[string]*taskEntry),
		maxParallel:      max(maxParallel, 1),
		destDir:          destDir,
		logger:           zap.NewNop(),
		progressInterval: DefaultProgressInterval,
	}
	s.sources = map[model.TransferKind]source{
		model.TransferCopy: fileSource{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if _, ok := s.sources[model.TransferHTTP]; !ok {
		s.sources[model.TransferHTTP] = httpSource{client: NewHTTPClient(config.DefaultEnv().HTTP, s.logger)}
	}
	return s
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.TransferTask)) {
	s.notifyMutex.Lock()
	defer s.notifyMutex.Unlock()
	s.onUpdate = callback
}

// AddTask queues a transfer of source into the destination directory
func (s *Service) AddTask(source string) (*model.TransferTask, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrEmptySource
	}

	s.tasksMutex.Lock()
	for _, e := range s.tasks {
		if e.task.Source == source && !e.task.Status.IsFinished() {
			s.tasksMutex.Unlock()
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSource, source)
		}
	}

	task := &model.TransferTask{
		ID:         generateTaskID(),
		Source:     source,
		Kind:       kindOf(source),
		Status:     model.TaskStatusPending,
		BytesTotal: -1,
		ETASec:     -1,
		StartedAt:  time.Now(),
	}
	s.tasks[task.ID] = &taskEntry{task: task}
	s.order = append(s.order, task.ID)
	s.pending = append(s.pending, task.ID)
	s.metrics.queued(len(s.pending))
	snapshot := *task
	s.tasksMutex.Unlock()

	s.logger.Info("transfer queued",
		zap.String("id", task.ID),
		zap.String("source", source),
		zap.String("kind", string(task.Kind)))

	s.notifyUpdate(task.ID)
	s.startPending()
	return &snapshot, nil
}

// GetTask returns a snapshot of a task by ID
func (s *Service) GetTask(id string) (*model.TransferTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	e, exists := s.tasks[id]
	if !exists {
		return nil, false
	}
	snapshot := *e.task
	return &snapshot, true
}

// GetAllTasks returns snapshots of all tasks in the order they were added
func (s *Service) GetAllTasks() []*model.TransferTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.TransferTask, 0, len(s.order))
	for _, id := range s.order {
		snapshot := *s.tasks[id].task
		tasks = append(tasks, &snapshot)
	}
	return tasks
}

// StopTask stops a pending or running task
func (s *Service) StopTask(id string) error {
	s.tasksMutex.Lock()
	e, exists := s.tasks[id]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	switch {
	case e.task.Status == model.TaskStatusPending:
		s.dequeueLocked(id)
		s.metrics.queued(len(s.pending))
		e.task.Status = model.TaskStatusStopped
		e.task.FinishedAt = time.Now()
	case e.task.Status.IsActive():
		// The task goroutine records the final status once the copy unwinds.
		e.task.Status = model.TaskStatusStopping
		if e.cancel != nil {
			e.cancel()
		}
	default:
		status := e.task.Status
		s.tasksMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskNotActive, status)
	}
	s.tasksMutex.Unlock()

	s.logger.Info("transfer stop requested", zap.String("id", id))
	s.notifyUpdate(id)
	return nil
}

// RemoveTask forgets a task, cancelling it first if it is still running
func (s *Service) RemoveTask(id string) error {
	s.tasksMutex.Lock()
	e, exists := s.tasks[id]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	if e.cancel != nil {
		e.cancel()
	}
	s.dequeueLocked(id)
	s.metrics.queued(len(s.pending))
	delete(s.tasks, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.tasksMutex.Unlock()

	s.logger.Debug("transfer removed", zap.String("id", id))
	return nil
}

// SetMaxParallel sets the maximum number of concurrent transfers
func (s *Service) SetMaxParallel(max int) {
	if max < 1 {
		max = 1
	}
	s.tasksMutex.Lock()
	s.maxParallel = max
	s.tasksMutex.Unlock()

	s.startPending()
}

// SetDestinationDir sets the directory new transfers write into
func (s *Service) SetDestinationDir(dir string) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.destDir = dir
}

// Wait blocks until every started transfer has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// Close stops all unfinished transfers and waits for them.
func (s *Service) Close() {
	s.tasksMutex.Lock()
	for _, id := range s.pending {
		e := s.tasks[id]
		e.task.Status = model.TaskStatusStopped
		e.task.FinishedAt = time.Now()
	}
	s.pending = nil
	s.metrics.queued(0)
	for _, e := range s.tasks {
		if e.cancel != nil {
			e.cancel()
		}
	}
	s.tasksMutex.Unlock()

	s.wg.Wait()
}

// startPending starts queued tasks while there is capacity
func (s *Service) startPending() {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	for s.activeCount < s.maxParallel && len(s.pending) > 0 {
		id := s.pending[0]
		s.pending = s.pending[1:]
		e := s.tasks[id]

		ctx, cancel := context.WithCancel(context.Background())
		e.cancel = cancel
		e.task.Status = model.TaskStatusStarting
		s.activeCount++
		s.metrics.started()
		s.metrics.queued(len(s.pending))

		s.wg.Add(1)
		go s.runTask(ctx, e, s.destDir)
	}
}

func (s *Service) dequeueLocked(id string) {
	for i, pid := range s.pending {
		if pid == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// runTask transfers one task and records its final status
func (s *Service) runTask(ctx context.Context, e *taskEntry, destDir string) {
	defer s.wg.Done()

	id := e.task.ID
	begin := time.Now()
	s.notifyUpdate(id)

	dest, err := s.transfer(ctx, e, destDir)
	stopped := err != nil && (errors.Is(err, context.Canceled) || ctx.Err() != nil)

	s.tasksMutex.Lock()
	e.cancel()
	e.cancel = nil
	s.activeCount--
	task := e.task
	task.FinishedAt = time.Now()
	switch {
	case err == nil:
		task.Status = model.TaskStatusCompleted
		task.Percent = model.MaxPercent
		task.ETASec = -1
		if task.BytesTotal < 0 {
			task.BytesTotal = task.BytesDone
		}
	case stopped:
		task.Status = model.TaskStatusStopped
	default:
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	}
	status := task.Status
	s.metrics.finished(status, task.BytesDone, task.FinishedAt.Sub(begin))
	s.tasksMutex.Unlock()

	switch status {
	case model.TaskStatusCompleted:
		s.logger.Info("transfer completed", zap.String("id", id), zap.String("destination", dest))
	case model.TaskStatusStopped:
		s.logger.Info("transfer stopped", zap.String("id", id))
	default:
		s.logger.Warn("transfer failed", zap.String("id", id), zap.Error(err))
	}

	s.notifyUpdate(id)
	s.startPending()
}

// transfer copies the task's source into destDir and returns the written path
func (s *Service) transfer(ctx context.Context, e *taskEntry, destDir string) (string, error) {
	s.tasksMutex.RLock()
	src, kind := e.task.Source, e.task.Kind
	s.tasksMutex.RUnlock()

	p, err := s.sources[kind].open(ctx, src)
	if err != nil {
		return "", err
	}
	defer p.body.Close()

	if err := detectExtension(p); err != nil {
		return "", err
	}

	if err := platform.CreateDirectoryIfNotExists(destDir); err != nil {
		s.logger.Error("failed to create destination directory", zap.String("dir", destDir), zap.Error(err))
		return "", fmt.Errorf("create destination: %w", err)
	}

	s.tasksMutex.Lock()
	dest, err := platform.UniquePath(destDir, p.name)
	if err != nil {
		s.tasksMutex.Unlock()
		return "", err
	}
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		s.tasksMutex.Unlock()
		return "", fmt.Errorf("create destination file: %w", err)
	}
	started := time.Now()
	e.task.Destination = dest
	e.task.BytesTotal = p.size
	if e.task.Status == model.TaskStatusStarting {
		e.task.Status = model.TaskStatusRunning
	}
	s.tasksMutex.Unlock()
	s.notifyUpdate(e.task.ID)

	pw := newProgressWriter(s.progressInterval, func(done int64) {
		s.tasksMutex.Lock()
		applyProgress(e.task, done, p.size, time.Since(started))
		s.tasksMutex.Unlock()
		s.notifyUpdate(e.task.ID)
	})

	_, copyErr := io.Copy(out, io.TeeReader(contextReader{ctx: ctx, r: p.body}, pw))
	closeErr := out.Close()
	if copyErr == nil && ctx.Err() != nil {
		copyErr = ctx.Err()
	}
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		if rmErr := os.Remove(dest); rmErr != nil {
			s.logger.Error("failed to remove partial file", zap.String("path", dest), zap.Error(rmErr))
		}
		return "", copyErr
	}

	s.tasksMutex.Lock()
	applyProgress(e.task, pw.done, p.size, time.Since(started))
	s.tasksMutex.Unlock()
	return dest, nil
}

// notifyUpdate delivers the current snapshot of a task. Holding notifyMutex
// across snapshot and delivery keeps callbacks in state order.
func (s *Service) notifyUpdate(id string) {
	s.notifyMutex.Lock()
	defer s.notifyMutex.Unlock()

	if s.onUpdate == nil {
		return
	}
	snapshot, ok := s.GetTask(id)
	if !ok {
		return
	}
	s.onUpdate(snapshot)
}

// generateTaskID generates a unique, time-ordered task ID
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return TaskIDPrefix + id.String()
}
