package mocks

import (
	"context"
	"path"
	"sync"

	"github.com/felixgeelhaar/startquantum/internal/ports"
)

// Downloader is a test double for ports.Downloader. Downloads succeed
// with a path under Dir unless an error was set.
type Downloader struct {
	mu       sync.Mutex
	dir      string
	err      error
	requests []ports.DownloadRequest
}

// NewDownloader creates a Downloader that reports files under dir.
func NewDownloader(dir string) *Downloader {
	return &Downloader{dir: dir}
}

// WithError makes every download fail with err.
func (d *Downloader) WithError(err error) *Downloader {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = err
	return d
}

// Download records req and returns dir/req.Name.
func (d *Downloader) Download(_ context.Context, req ports.DownloadRequest) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.requests = append(d.requests, req)
	if d.err != nil {
		return "", d.err
	}
	name := req.Name
	if name == "" {
		name = path.Base(req.URL)
	}
	return path.Join(d.dir, name), nil
}

// Requests returns the recorded download requests.
func (d *Downloader) Requests() []ports.DownloadRequest {
	d.mu.Lock()
	defer d.mu.Unlock()

	requests := make([]ports.DownloadRequest, len(d.requests))
	copy(requests, d.requests)
	return requests
}

var _ ports.Downloader = (*Downloader)(nil)
