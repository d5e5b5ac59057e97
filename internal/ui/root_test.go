package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/transfer-panel/internal/config"
	"github.com/ytget/transfer-panel/internal/model"
	"github.com/ytget/transfer-panel/internal/panel"
	"github.com/ytget/transfer-panel/internal/tracker"
	"github.com/ytget/transfer-panel/internal/transfer"
)

// stubService is an in-memory transfer.Transferrer.
type stubService struct {
	mu          sync.Mutex
	callback    func(*model.TransferTask)
	tasks       map[string]*model.TransferTask
	added       []string
	addErr      error
	stopErr     error
	maxParallel int
	destDir     string
}

func newStubService() *stubService {
	return &stubService{tasks: make(map[string]*model.TransferTask)}
}

func (s *stubService) SetUpdateCallback(cb func(*model.TransferTask)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callback = cb
}

func (s *stubService) AddTask(source string) (*model.TransferTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addErr != nil {
		return nil, s.addErr
	}
	s.added = append(s.added, source)
	task := &model.TransferTask{ID: fmt.Sprintf("transfer-%d", len(s.added)), Source: source}
	s.tasks[task.ID] = task
	return task, nil
}

func (s *stubService) GetTask(id string) (*model.TransferTask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	return task, ok
}

// push stores a snapshot and delivers it the way the service does.
func (s *stubService) push(task model.TransferTask) {
	s.mu.Lock()
	s.tasks[task.ID] = &task
	cb := s.callback
	s.mu.Unlock()
	cb(&task)
}

func (s *stubService) GetAllTasks() []*model.TransferTask { return nil }

func (s *stubService) StopTask(string) error { return s.stopErr }

func (s *stubService) RemoveTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, id)
	return nil
}

func (s *stubService) SetMaxParallel(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxParallel = n
}

func (s *stubService) SetDestinationDir(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destDir = dir
}

type rootFixture struct {
	ui       *RootUI
	svc      *stubService
	panel    *panel.Panel
	settings *config.Settings
}

func newTestRoot(t *testing.T) *rootFixture {
	t.Helper()
	a := test.NewApp()
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)

	settings := config.NewSettings(a)
	loc := NewLocalization()
	p := panel.New()
	svc := newStubService()
	tr := tracker.New(p, svc, tracker.WithStatusLabel(loc.StatusLabel), tracker.WithLinger(time.Hour))
	t.Cleanup(tr.Close)

	ui := NewRootUI(w, settings, loc, p, tr, svc, nil)
	t.Cleanup(ui.Close)
	return &rootFixture{ui: ui, svc: svc, panel: p, settings: settings}
}

func TestValidateSource(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0o644))

	tests := []struct {
		input string
		ok    bool
	}{
		{"", true},
		{"https://example.com/file.zip", true},
		{"HTTP://example.com/file.zip", true},
		{"https://", false},
		{"ftp://example.com/file.zip", false},
		{file, true},
		{"file://" + file, true},
		{dir, false},
		{filepath.Join(dir, "missing.txt"), false},
	}

	for _, test := range tests {
		err := validateSource(test.input)
		if test.ok {
			assert.NoError(t, err, test.input)
		} else {
			assert.Error(t, err, test.input)
		}
	}
}

func TestRootUI_AddEmptySource(t *testing.T) {
	f := newTestRoot(t)

	f.ui.onAddClick()

	assert.Equal(t, "Please enter a URL or a file path", f.ui.notificationLabel.Text)
	assert.True(t, f.ui.notificationContainer.Visible())
	assert.Empty(t, f.svc.added)
}

func TestRootUI_AddInvalidSource(t *testing.T) {
	f := newTestRoot(t)
	f.ui.sourceEntry.SetText("ftp://example.com/x")

	f.ui.onAddClick()

	assert.Contains(t, f.ui.notificationLabel.Text, "Invalid source")
	assert.Empty(t, f.svc.added)
}

func TestRootUI_AddValidSource(t *testing.T) {
	f := newTestRoot(t)
	src := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("a"), 0o644))

	f.ui.sourceEntry.SetText(src)
	test.Tap(f.ui.addBtn)

	assert.Equal(t, []string{src}, f.svc.added)
	assert.Empty(t, f.ui.sourceEntry.Text)
	assert.Equal(t, "Transfer added to queue", f.ui.notificationLabel.Text)
}

func TestRootUI_AddDuplicateSource(t *testing.T) {
	f := newTestRoot(t)
	f.svc.addErr = fmt.Errorf("%w: x", transfer.ErrDuplicateSource)
	f.ui.sourceEntry.SetText("https://example.com/x.zip")

	f.ui.onAddClick()

	assert.Equal(t, "Already in queue", f.ui.notificationLabel.Text)
	assert.Equal(t, "https://example.com/x.zip", f.ui.sourceEntry.Text)
}

func TestRootUI_CancelError(t *testing.T) {
	f := newTestRoot(t)
	f.svc.stopErr = transfer.ErrTaskNotActive

	f.ui.onCancelItem("transfer-1")

	assert.Contains(t, f.ui.notificationLabel.Text, "Error stopping transfer")
}

func TestRootUI_RevealItem(t *testing.T) {
	f := newTestRoot(t)
	f.svc.tasks["t"] = &model.TransferTask{ID: "t", Destination: "/tmp/t.bin"}

	var revealed []string
	f.ui.reveal = func(path string) error {
		revealed = append(revealed, path)
		return errors.New("no file manager")
	}

	f.ui.onRevealItem("t")
	f.ui.onRevealItem("missing")

	assert.Equal(t, []string{"/tmp/t.bin"}, revealed)
	assert.Contains(t, f.ui.notificationLabel.Text, "Error opening file")
}

func TestRootUI_ApplySettings(t *testing.T) {
	f := newTestRoot(t)
	f.settings.SetMaxParallelTransfers(5)
	f.settings.SetTransferDirectory("/tmp/elsewhere")
	f.settings.SetLanguage("ru")

	f.ui.applySettings()

	assert.Equal(t, 5, f.svc.maxParallel)
	assert.Equal(t, "/tmp/elsewhere", f.svc.destDir)
	assert.Equal(t, "Добавить", f.ui.addBtn.Text)
	assert.Equal(t, "Настройки успешно сохранены!", f.ui.notificationLabel.Text)
}

func TestRootUI_TransfersShowInDisplay(t *testing.T) {
	f := newTestRoot(t)

	f.svc.push(model.TransferTask{ID: "a", Source: "/x/a.bin", Status: model.TaskStatusRunning, Percent: 20})
	f.svc.push(model.TransferTask{ID: "b", Source: "/x/b.bin", Status: model.TaskStatusRunning, Percent: 60})

	assert.Equal(t, []string{"a", "b"}, f.ui.display.RowIDs())
	assert.Equal(t, "40% complete", f.ui.display.summary.Text())

	f.svc.push(model.TransferTask{ID: "a", Source: "/x/a.bin", Status: model.TaskStatusCompleted, Percent: 100})

	assert.Contains(t, f.ui.notified, "a")
	assert.False(t, f.ui.display.summary.Visible())
}
