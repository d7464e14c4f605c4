// Package host bundles the services installer steps use to inspect and
// change the machine they run on.
package host

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/startquantum/internal/domain/platform"
	"github.com/felixgeelhaar/startquantum/internal/ports"
	"github.com/felixgeelhaar/startquantum/internal/provider/commandutil"
	"github.com/felixgeelhaar/startquantum/internal/provider/pathutil"
)

// Host is shared by every provider of a session.
type Host struct {
	Platform   *platform.Platform
	Runner     ports.CommandRunner
	FS         ports.FileSystem
	Downloader ports.Downloader
	Prompter   ports.Prompter
	Locator    *pathutil.Locator
	Logger     ports.Logger
}

// Log returns the step logger carried by ctx, falling back to h.Logger.
func (h *Host) Log(ctx context.Context) ports.Logger {
	if logger := ports.LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return h.Logger
}

// RunInstaller downloads req and runs the downloaded file with args
// attached to the terminal.
func (h *Host) RunInstaller(ctx context.Context, req ports.DownloadRequest, args ...string) error {
	installer, err := h.Downloader.Download(ctx, req)
	if err != nil {
		return fmt.Errorf("download %s: %w", req.URL, err)
	}
	return commandutil.Interactive(ctx, h.Runner, installer, args...)
}
