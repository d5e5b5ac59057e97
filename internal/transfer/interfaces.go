package transfer

import (
	"github.com/ytget/transfer-panel/internal/model"
)

// Transferrer defines the interface for the transfer service.
type Transferrer interface {
	// SetUpdateCallback registers the receiver of task snapshots. The
	// callback must not call back into the service's mutating methods.
	SetUpdateCallback(func(*model.TransferTask))
	AddTask(source string) (*model.TransferTask, error)
	GetTask(id string) (*model.TransferTask, bool)
	GetAllTasks() []*model.TransferTask
	StopTask(id string) error
	RemoveTask(id string) error

	// SetMaxParallel sets the maximum number of concurrent transfers
	SetMaxParallel(max int)

	// SetDestinationDir sets the directory new transfers write into
	SetDestinationDir(dir string)
}

var _ Transferrer = (*Service)(nil)
