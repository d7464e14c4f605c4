package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/startquantum/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payload = "#!/bin/sh\necho installing conda\n"

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/Miniconda3-latest-Linux-x86_64.sh", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(payload))
	})
	mux.HandleFunc("/missing.exe", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestHTTPDownloader_Download(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	dir := t.TempDir()

	var updates []ports.Progress
	d := NewHTTPDownloader(
		WithClient(srv.Client()),
		WithDirectory(dir),
		WithProgress(func(p ports.Progress) { updates = append(updates, p) }),
	)

	path, err := d.Download(context.Background(), ports.DownloadRequest{
		URL:    srv.URL + "/Miniconda3-latest-Linux-x86_64.sh",
		SHA256: digest(payload),
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Miniconda3-latest-Linux-x86_64.sh"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, string(content))

	require.NotEmpty(t, updates)
	assert.Equal(t, int64(0), updates[0].Received)
	last := updates[len(updates)-1]
	assert.Equal(t, int64(len(payload)), last.Received)
	assert.Equal(t, "Miniconda3-latest-Linux-x86_64.sh", last.Name)
	assert.InDelta(t, 1.0, last.Fraction(), 0.0001)
}

func TestHTTPDownloader_CustomName(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	dir := t.TempDir()
	d := NewHTTPDownloader(WithClient(srv.Client()), WithDirectory(dir))

	path, err := d.Download(context.Background(), ports.DownloadRequest{
		URL:  srv.URL + "/Miniconda3-latest-Linux-x86_64.sh",
		Name: "conda-installer.sh",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "conda-installer.sh"), path)
}

func TestHTTPDownloader_TempDirectory(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	d := NewHTTPDownloader(WithClient(srv.Client()))

	path, err := d.Download(context.Background(), ports.DownloadRequest{
		URL: srv.URL + "/Miniconda3-latest-Linux-x86_64.sh",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(filepath.Dir(path)) })

	assert.FileExists(t, path)
}

func TestHTTPDownloader_RejectsNon2xx(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	dir := t.TempDir()
	d := NewHTTPDownloader(WithClient(srv.Client()), WithDirectory(dir))

	_, err := d.Download(context.Background(), ports.DownloadRequest{URL: srv.URL + "/missing.exe"})
	require.Error(t, err)

	var dlErr *Error
	require.True(t, errors.As(err, &dlErr))
	assert.Equal(t, http.StatusNotFound, dlErr.StatusCode)
	assert.Contains(t, err.Error(), "404")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHTTPDownloader_ChecksumMismatch(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	dir := t.TempDir()
	d := NewHTTPDownloader(WithClient(srv.Client()), WithDirectory(dir))

	_, err := d.Download(context.Background(), ports.DownloadRequest{
		URL:    srv.URL + "/Miniconda3-latest-Linux-x86_64.sh",
		SHA256: digest("something else"),
	})
	require.ErrorIs(t, err, ErrChecksumMismatch)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "partial file must be removed")
}

func TestHTTPDownloader_CancelledContext(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	d := NewHTTPDownloader(WithClient(srv.Client()), WithDirectory(t.TempDir()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Download(ctx, ports.DownloadRequest{URL: srv.URL + "/Miniconda3-latest-Linux-x86_64.sh"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     ports.DownloadRequest
		want    string
		wantErr bool
	}{
		{name: "from url", req: ports.DownloadRequest{URL: "https://repo.anaconda.com/archive/Anaconda3-2021.05-Windows-x86_64.exe"}, want: "Anaconda3-2021.05-Windows-x86_64.exe"},
		{name: "explicit", req: ports.DownloadRequest{URL: "https://code.visualstudio.com/sha/download?build=stable&os=win32-x64-user", Name: "vscode-user-setup.exe"}, want: "vscode-user-setup.exe"},
		{name: "explicit strips dirs", req: ports.DownloadRequest{URL: "https://x/y", Name: "../../evil.exe"}, want: "evil.exe"},
		{name: "no path", req: ports.DownloadRequest{URL: "https://example.com/"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := fileName(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
