package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/startquantum/internal/adapters/command"
	"github.com/felixgeelhaar/startquantum/internal/adapters/download"
	"github.com/felixgeelhaar/startquantum/internal/adapters/filesystem"
	"github.com/felixgeelhaar/startquantum/internal/adapters/logging"
	"github.com/felixgeelhaar/startquantum/internal/adapters/prompt"
	"github.com/felixgeelhaar/startquantum/internal/domain/config"
	"github.com/felixgeelhaar/startquantum/internal/domain/platform"
	"github.com/felixgeelhaar/startquantum/internal/ports"
	"github.com/felixgeelhaar/startquantum/internal/provider/host"
	"github.com/felixgeelhaar/startquantum/internal/provider/pathutil"
	"github.com/felixgeelhaar/startquantum/internal/tui"
)

// environment is everything a command needs to talk to this machine.
type environment struct {
	cfg     *config.Config
	host    *host.Host
	closers []io.Closer
}

// Close flushes and closes the log file, if one is open.
func (e *environment) Close() error {
	var errs []error
	for _, c := range e.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// newEnvironment loads the configuration and wires the real adapters.
func newEnvironment(cmd *cobra.Command) (*environment, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := loadConfig(cfgFile, wd)
	if err != nil {
		return nil, err
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}

	env := &environment{cfg: cfg}

	logger, closer := newLogger(cmd.OutOrStdout(), cfg.Log, verbose)
	if closer != nil {
		env.closers = append(env.closers, closer)
	}

	fs := filesystem.NewRealFileSystem()
	plat := platform.Detect()

	env.host = &host.Host{
		Platform:   plat,
		Runner:     command.NewRealRunner(command.WithStdio(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())),
		FS:         fs,
		Downloader: newDownloader(cmd.Context(), cmd.InOrStdin(), cmd.ErrOrStderr(), cfg.CacheDir, logger),
		Prompter:   newPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), yesFlag, logger),
		Locator:    pathutil.NewLocator(fs, pathutil.WithGOOS(string(plat.OS()))),
		Logger:     logger,
	}

	logger.Debug(cmd.Context(), "environment ready",
		ports.F("config", cfgFile),
		ports.F("cache_dir", cfg.CacheDir),
		ports.F("platform", plat.String()),
	)
	return env, nil
}

// loadConfig loads path, or the first config file found in dir when path
// is empty. No file at all means the built-in defaults.
func loadConfig(path, dir string) (*config.Config, error) {
	if path == "" {
		path = config.Discover(dir)
	}
	return config.NewLoader().Load(path)
}

// newLogger writes operator messages to out and, when cfg names a file, a
// JSON log through a rolling file. The returned closer is nil without a file.
func newLogger(out io.Writer, cfg config.LogConfig, verbose bool) (ports.Logger, io.Closer) {
	level := ports.LevelInfo
	if verbose {
		level = ports.LevelDebug
	}
	console := logging.NewConsoleLogger(
		logging.WithOutput(out),
		logging.WithLevel(level),
		logging.WithFields(verbose),
	)

	if cfg.File == "" {
		return console, nil
	}

	file := logging.NewRollingFile(logging.FileConfig{
		Path:       cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	})
	return logging.NewMulti(console, logging.NewZerologLogger(file, ports.ParseLevel(cfg.Level))), file
}

func newPrompter(in io.Reader, out io.Writer, yes bool, logger ports.Logger) ports.Prompter {
	if yes {
		return prompt.NewAutoPrompter(logger)
	}
	return prompt.NewLinePrompter(prompt.WithInput(in), prompt.WithOutput(out))
}

// newDownloader stores installers under the cache directory. Progress is
// drawn on a terminal and logged otherwise.
func newDownloader(ctx context.Context, in io.Reader, out io.Writer, cacheDir string, logger ports.Logger) ports.Downloader {
	dir := filepath.Join(cacheDir, "downloads")

	if isTerminal(out) {
		progress := tui.NewDownloadProgress(in, out)
		return progress.Wrap(download.NewHTTPDownloader(
			download.WithDirectory(dir),
			download.WithProgress(progress.Report),
		))
	}

	return download.NewHTTPDownloader(
		download.WithDirectory(dir),
		download.WithProgress(tui.LogProgress(ctx, logger)),
	)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
