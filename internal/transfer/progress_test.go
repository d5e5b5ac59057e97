package transfer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ytget/transfer-panel/internal/model"
)

func TestProgressWriter_Throttles(t *testing.T) {
	var reports []int64
	w := newProgressWriter(time.Hour, func(done int64) { reports = append(reports, done) })

	for i := 0; i < 5; i++ {
		n, err := w.Write(make([]byte, 10))
		assert.NoError(t, err)
		assert.Equal(t, 10, n)
	}

	assert.Equal(t, []int64{10}, reports)
	assert.Equal(t, int64(50), w.done)
}

func TestProgressWriter_ZeroIntervalReportsEveryWrite(t *testing.T) {
	var reports []int64
	w := newProgressWriter(0, func(done int64) { reports = append(reports, done) })

	_, _ = w.Write(make([]byte, 3))
	_, _ = w.Write(make([]byte, 4))

	assert.Equal(t, []int64{3, 7}, reports)
}

func TestApplyProgress(t *testing.T) {
	task := &model.TransferTask{}

	applyProgress(task, 512*1024, 2*1024*1024, time.Second)

	assert.Equal(t, 25, task.Percent)
	assert.Equal(t, int64(512*1024), task.BytesDone)
	assert.Equal(t, int64(2*1024*1024), task.BytesTotal)
	assert.Equal(t, "512.0KB/s", task.Speed)
	assert.Equal(t, 3, task.ETASec)
}

func TestApplyProgress_UnknownTotal(t *testing.T) {
	task := &model.TransferTask{Percent: 7}

	applyProgress(task, 100, -1, 2*time.Second)

	assert.Equal(t, 7, task.Percent)
	assert.Equal(t, -1, task.ETASec)
	assert.Equal(t, "50B/s", task.Speed)
}

func TestFormatSpeed(t *testing.T) {
	tests := []struct {
		bps      float64
		expected string
	}{
		{0, "0B/s"},
		{900, "900B/s"},
		{1536, "1.5KB/s"},
		{3 * 1024 * 1024, "3.0MB/s"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, formatSpeed(test.bps))
	}
}
