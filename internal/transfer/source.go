package transfer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/ytget/transfer-panel/internal/config"
	"github.com/ytget/transfer-panel/internal/logging"
	"github.com/ytget/transfer-panel/internal/model"
)

const fileScheme = "file://"

// sniffLen caps how much of a body is inspected to guess a missing extension.
const sniffLen = 3072

const fallbackName = "transfer"

// payload is an opened source ready to be copied.
type payload struct {
	body io.ReadCloser
	size int64 // -1 when unknown
	name string
}

type readCloser struct {
	io.Reader
	io.Closer
}

type source interface {
	open(ctx context.Context, src string) (*payload, error)
}

// kindOf tells how a source string is read.
func kindOf(src string) model.TransferKind {
	lower := strings.ToLower(src)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return model.TransferHTTP
	}
	return model.TransferCopy
}

// NewHTTPClient builds the retrying client used for HTTP sources.
func NewHTTPClient(cfg config.HTTPEnv, logger *zap.Logger) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = cfg.RetryMax
	c.RetryWaitMin = cfg.RetryWaitMin
	c.RetryWaitMax = cfg.RetryWaitMax
	c.HTTPClient.Timeout = cfg.Timeout
	c.Logger = leveledLogger{logging.OrNop(logger).Sugar()}
	return c
}

type httpSource struct {
	client *retryablehttp.Client
}

func (h httpSource) open(ctx context.Context, src string) (*payload, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %s", src, resp.Status)
	}

	name := fileNameFromDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = fileNameFromURLPath(resp.Request.URL.Path)
	}
	return &payload{body: resp.Body, size: resp.ContentLength, name: name}, nil
}

type fileSource struct{}

func (fileSource) open(_ context.Context, src string) (*payload, error) {
	p := strings.TrimPrefix(src, fileScheme)

	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("source is a directory: %s", p)
	}
	return &payload{body: f, size: info.Size(), name: filepath.Base(p)}, nil
}

// detectExtension gives names without an extension one guessed from the
// first bytes of the body. The inspected bytes are put back in front of the
// body.
func detectExtension(p *payload) error {
	if p.name != "" && filepath.Ext(p.name) != "" {
		return nil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadAtLeast(p.body, head, 1)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read source: %w", err)
	}
	head = head[:n]

	ext := ""
	if n > 0 {
		ext = mimetype.Detect(head).Extension()
	}
	if p.name == "" {
		p.name = fallbackName
		if ext == "" {
			ext = ".bin"
		}
	}
	p.name += ext
	p.body = readCloser{Reader: io.MultiReader(bytes.NewReader(head), p.body), Closer: p.body}
	return nil
}

func fileNameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	name := params["filename"]
	if name == "" {
		return ""
	}
	return filepath.Base(name)
}

func fileNameFromURLPath(p string) string {
	base := path.Base(p)
	if base == "/" || base == "." {
		return ""
	}
	return base
}

// contextReader stops a copy once its context is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// leveledLogger adapts zap to retryablehttp.LeveledLogger.
type leveledLogger struct {
	s *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.s.Warnw(msg, keysAndValues...)
}
