// Package download fetches installer artifacts over HTTP.
package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/startquantum/internal/ports"
)

// ErrChecksumMismatch is returned when a downloaded file does not match its digest.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Error describes a failed download.
type Error struct {
	URL        string
	StatusCode int
	Err        error
}

// Error returns the formatted error message.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("download %s: unexpected HTTP status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPDownloader implements ports.Downloader with net/http.
type HTTPDownloader struct {
	client   *http.Client
	dir      string
	progress ports.ProgressFunc
}

// Option configures an HTTPDownloader.
type Option func(*HTTPDownloader)

// WithClient sets the HTTP client.
func WithClient(client *http.Client) Option {
	return func(d *HTTPDownloader) {
		d.client = client
	}
}

// WithDirectory sets where artifacts are stored (default: a fresh temp directory per download).
func WithDirectory(dir string) Option {
	return func(d *HTTPDownloader) {
		d.dir = dir
	}
}

// WithProgress sets a callback for progress updates.
func WithProgress(fn ports.ProgressFunc) Option {
	return func(d *HTTPDownloader) {
		d.progress = fn
	}
}

// NewHTTPDownloader creates a new HTTPDownloader.
func NewHTTPDownloader(opts ...Option) *HTTPDownloader {
	d := &HTTPDownloader{
		client: &http.Client{
			Timeout: 30 * time.Minute, // installers are large
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download fetches req.URL and returns the local file path.
// Partial files are removed when the download or verification fails.
func (d *HTTPDownloader) Download(ctx context.Context, req ports.DownloadRequest) (string, error) {
	name, err := fileName(req)
	if err != nil {
		return "", &Error{URL: req.URL, Err: err}
	}

	dir := ports.ExpandPath(d.dir)
	if dir == "" {
		dir, err = os.MkdirTemp("", "startquantum-")
		if err != nil {
			return "", &Error{URL: req.URL, Err: err}
		}
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &Error{URL: req.URL, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return "", &Error{URL: req.URL, Err: err}
	}

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return "", &Error{URL: req.URL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{URL: req.URL, StatusCode: resp.StatusCode}
	}

	dest := filepath.Join(dir, name)
	partial := dest + ".part"

	out, err := os.Create(partial)
	if err != nil {
		return "", &Error{URL: req.URL, Err: err}
	}

	hasher := sha256.New()
	counter := &progressWriter{
		progress: d.progress,
		current:  ports.Progress{Name: name, Total: resp.ContentLength},
	}
	counter.report()

	_, copyErr := io.Copy(io.MultiWriter(out, hasher, counter), resp.Body)
	closeErr := out.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = os.Remove(partial)
		return "", &Error{URL: req.URL, Err: copyErr}
	}

	if want := strings.ToLower(strings.TrimSpace(req.SHA256)); want != "" {
		got := hex.EncodeToString(hasher.Sum(nil))
		if got != want {
			_ = os.Remove(partial)
			return "", &Error{URL: req.URL, Err: fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, want, got)}
		}
	}

	if err := os.Rename(partial, dest); err != nil {
		_ = os.Remove(partial)
		return "", &Error{URL: req.URL, Err: err}
	}

	return dest, nil
}

// fileName picks the local name: the request's Name, else the URL's last path segment.
func fileName(req ports.DownloadRequest) (string, error) {
	if req.Name != "" {
		return filepath.Base(req.Name), nil
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		return "", err
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return "", fmt.Errorf("cannot derive a file name from %q", req.URL)
	}
	return base, nil
}

type progressWriter struct {
	progress ports.ProgressFunc
	current  ports.Progress
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.current.Received += int64(len(p))
	w.report()
	return len(p), nil
}

func (w *progressWriter) report() {
	if w.progress != nil {
		w.progress(w.current)
	}
}

// Ensure HTTPDownloader implements ports.Downloader.
var _ ports.Downloader = (*HTTPDownloader)(nil)
