package transfer

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/transfer-panel/internal/config"
	"github.com/ytget/transfer-panel/internal/model"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		source   string
		expected model.TransferKind
	}{
		{"https://example.com/a.zip", model.TransferHTTP},
		{"HTTP://example.com/a.zip", model.TransferHTTP},
		{"/home/user/a.zip", model.TransferCopy},
		{"file:///home/user/a.zip", model.TransferCopy},
		{`C:\data\a.zip`, model.TransferCopy},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, kindOf(test.source), test.source)
	}
}

func TestFileNameFromDisposition(t *testing.T) {
	tests := []struct {
		header   string
		expected string
	}{
		{`attachment; filename="report.pdf"`, "report.pdf"},
		{`attachment; filename="../../etc/passwd"`, "passwd"},
		{`inline`, ""},
		{``, ""},
		{`;;;`, ""},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, fileNameFromDisposition(test.header), test.header)
	}
}

func TestFileNameFromURLPath(t *testing.T) {
	assert.Equal(t, "a.zip", fileNameFromURLPath("/files/a.zip"))
	assert.Equal(t, "", fileNameFromURLPath("/"))
	assert.Equal(t, "", fileNameFromURLPath(""))
}

func TestNewHTTPClient_AppliesConfig(t *testing.T) {
	c := NewHTTPClient(config.HTTPEnv{
		RetryMax:     5,
		RetryWaitMin: 2 * time.Second,
		RetryWaitMax: 9 * time.Second,
		Timeout:      time.Minute,
	}, nil)

	assert.Equal(t, 5, c.RetryMax)
	assert.Equal(t, 2*time.Second, c.RetryWaitMin)
	assert.Equal(t, 9*time.Second, c.RetryWaitMax)
	assert.Equal(t, time.Minute, c.HTTPClient.Timeout)
	assert.IsType(t, leveledLogger{}, c.Logger)
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestDetectExtension(t *testing.T) {
	tests := []struct {
		name     string
		body     []byte
		expected string
	}{
		{"image", pngHeader, "image.png"},
		{"notes", []byte("plain words\n"), "notes.txt"},
		{"report.pdf", pngHeader, "report.pdf"},
		{"", pngHeader, "transfer.png"},
		{"", nil, "transfer.bin"},
		{"empty", nil, "empty"},
	}

	for _, test := range tests {
		p := &payload{body: io.NopCloser(bytes.NewReader(test.body)), name: test.name}

		require.NoError(t, detectExtension(p))
		assert.Equal(t, test.expected, p.name, "name %q", test.name)

		// Sniffed bytes are still delivered.
		rest, err := io.ReadAll(p.body)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(test.body, rest))
	}
}
