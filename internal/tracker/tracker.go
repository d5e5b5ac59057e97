package tracker

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ytget/transfer-panel/internal/logging"
	"github.com/ytget/transfer-panel/internal/model"
	"github.com/ytget/transfer-panel/internal/panel"
	"github.com/ytget/transfer-panel/internal/transfer"
)

// DefaultLinger is how long a completed item stays visible.
const DefaultLinger = 3 * time.Second

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the tracker logger.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Tracker) { t.logger = logging.OrNop(logger) }
}

// WithLinger sets how long completed items stay before removal.
func WithLinger(d time.Duration) Option {
	return func(t *Tracker) { t.linger = max(d, 0) }
}

// WithClock replaces the timer source used for linger removal.
func WithClock(clock panel.Clock) Option {
	return func(t *Tracker) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// WithStatusLabel sets how task statuses are written into item text.
func WithStatusLabel(label func(model.TaskStatus) string) Option {
	return func(t *Tracker) {
		if label != nil {
			t.label = label
		}
	}
}

// WithRevealer sets the function used to show completed files.
func WithRevealer(reveal func(path string) error) Option {
	return func(t *Tracker) { t.reveal = reveal }
}

// WithRevealOnComplete enables revealing each completed file.
func WithRevealOnComplete(enabled bool) Option {
	return func(t *Tracker) { t.revealOnComplete = enabled }
}

type tracked struct {
	status model.TaskStatus
	expiry panel.Timer
}

// Tracker keeps a panel in step with a transfer service.
type Tracker struct {
	mu sync.Mutex

	panel  *panel.Panel
	svc    transfer.Transferrer
	logger *zap.Logger
	clock  panel.Clock
	label  func(model.TaskStatus) string

	linger           time.Duration
	reveal           func(path string) error
	revealOnComplete bool

	items     map[string]*tracked
	dismissed map[string]struct{} // dismissed but not yet removed from the service
}

// New creates a tracker and registers it as the service's update callback.
func New(p *panel.Panel, svc transfer.Transferrer, opts ...Option) *Tracker {
	t := &Tracker{
		panel:     p,
		svc:       svc,
		logger:    zap.NewNop(),
		clock:     panel.RealClock(),
		label:     model.TaskStatus.String,
		linger:    DefaultLinger,
		items:     make(map[string]*tracked),
		dismissed: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	svc.SetUpdateCallback(t.handle)
	return t
}

// Add queues a new transfer.
func (t *Tracker) Add(source string) (*model.TransferTask, error) {
	task, err := t.svc.AddTask(source)
	if err != nil {
		t.logger.Warn("transfer rejected", zap.String("source", source), zap.Error(err))
		return nil, err
	}
	return task, nil
}

// Cancel stops a pending or running transfer. Its item goes away once the
// service reports the stop.
func (t *Tracker) Cancel(id string) error {
	return t.svc.StopTask(id)
}

// Dismiss removes an item now and forgets its task, cancelling it if needed.
func (t *Tracker) Dismiss(id string) {
	t.mu.Lock()
	t.dismissed[id] = struct{}{}
	t.forgetLocked(id)
	t.mu.Unlock()

	if err := t.svc.RemoveTask(id); err != nil {
		t.logger.Debug("dismissed task already gone", zap.String("id", id), zap.Error(err))
	}

	// The service no longer knows the task, so late snapshots fail the
	// GetTask check in handle.
	t.mu.Lock()
	delete(t.dismissed, id)
	t.mu.Unlock()
}

// SetLinger changes the linger period for items completed from now on.
func (t *Tracker) SetLinger(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.linger = max(d, 0)
}

// SetRevealOnComplete toggles revealing completed files.
func (t *Tracker) SetRevealOnComplete(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.revealOnComplete = enabled
}

// Close stops pending linger timers.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, tr := range t.items {
		if tr.expiry != nil {
			tr.expiry.Stop()
			tr.expiry = nil
		}
	}
}

func (t *Tracker) handle(task *model.TransferTask) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, gone := t.dismissed[task.ID]; gone {
		return
	}

	tr, known := t.items[task.ID]
	if !known {
		if task.Status == model.TaskStatusStopped {
			return
		}
		if _, live := t.svc.GetTask(task.ID); !live {
			return
		}
		if _, err := t.panel.AddItem(task.ID); err != nil {
			t.logger.Warn("failed to add panel item", zap.String("id", task.ID), zap.Error(err))
			return
		}
		tr = &tracked{}
		t.items[task.ID] = tr
		t.logger.Debug("tracking transfer", zap.String("id", task.ID))
	}

	prev := tr.status
	tr.status = task.Status
	title := task.GetDisplayTitle()

	switch task.Status {
	case model.TaskStatusRunning:
		t.panel.SetItemProgress(task.ID, task.Percent)
		t.panel.SetItemText(task.ID, title, t.runningText(task))

	case model.TaskStatusCompleted:
		if prev == model.TaskStatusCompleted {
			return
		}
		t.panel.SetItemProgress(task.ID, model.MaxPercent)
		t.panel.SetItemStatus(task.ID, model.ItemStatusDone)
		t.panel.SetItemText(task.ID, title, t.label(task.Status))
		t.scheduleExpiryLocked(task.ID, tr)
		if t.revealOnComplete && t.reveal != nil && task.Destination != "" {
			go t.revealFile(task.Destination)
		}

	case model.TaskStatusError:
		t.panel.SetItemStatus(task.ID, model.ItemStatusError)
		t.panel.SetItemText(task.ID, title, task.LastError)

	case model.TaskStatusStopped:
		t.forgetLocked(task.ID)
		t.release(task.ID)

	default:
		t.panel.SetItemText(task.ID, title, t.label(task.Status))
	}
}

// revealFile may block until the file manager exits, so it runs on its own
// goroutine.
func (t *Tracker) revealFile(path string) {
	if err := t.reveal(path); err != nil {
		t.logger.Error("failed to reveal file", zap.String("path", path), zap.Error(err))
	}
}

func (t *Tracker) runningText(task *model.TransferTask) string {
	if task.Speed == "" {
		return t.label(task.Status)
	}
	return task.Speed + " · " + task.GetETAString()
}

func (t *Tracker) scheduleExpiryLocked(id string, tr *tracked) {
	if t.linger == 0 {
		t.forgetLocked(id)
		t.release(id)
		return
	}
	tr.expiry = t.clock.AfterFunc(t.linger, func() { t.expire(id, tr) })
}

// expire retires a completed item unless it was dismissed meanwhile.
func (t *Tracker) expire(id string, tr *tracked) {
	t.mu.Lock()
	if t.items[id] != tr {
		t.mu.Unlock()
		return
	}
	t.forgetLocked(id)
	t.mu.Unlock()

	t.release(id)
}

// release drops a finished task from the service.
func (t *Tracker) release(id string) {
	if err := t.svc.RemoveTask(id); err != nil {
		t.logger.Debug("finished task already gone", zap.String("id", id), zap.Error(err))
	}
}

func (t *Tracker) forgetLocked(id string) {
	if tr, ok := t.items[id]; ok && tr.expiry != nil {
		tr.expiry.Stop()
	}
	delete(t.items, id)
	if item := t.panel.FindByID(id); item != nil {
		t.panel.RemoveItem(item)
	}
}
