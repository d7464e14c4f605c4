// Package hosttest builds host.Host values from test doubles.
package hosttest

import (
	"fmt"
	"os/exec"

	"github.com/felixgeelhaar/startquantum/internal/domain/platform"
	"github.com/felixgeelhaar/startquantum/internal/provider/host"
	"github.com/felixgeelhaar/startquantum/internal/provider/pathutil"
	"github.com/felixgeelhaar/startquantum/internal/testutil/mocks"
)

// Home is the home directory of every fixture host.
const Home = "/home/ada"

// Fixture holds the doubles behind a test host.
type Fixture struct {
	Platform   *platform.Platform
	Runner     *mocks.CommandRunner
	FS         *mocks.FileSystem
	Prompter   *mocks.Prompter
	Downloader *mocks.Downloader
	Logger     *mocks.Logger

	// Path maps command names to the path PATH lookup returns.
	Path map[string]string
	// Env holds the environment seen by the locator.
	Env map[string]string
}

// New creates a Fixture for a native host of the given OS. The prompter
// answers yes.
func New(goos platform.OS) *Fixture {
	return &Fixture{
		Platform:   platform.New(goos, "amd64", platform.EnvNative),
		Runner:     mocks.NewCommandRunner(),
		FS:         mocks.NewFileSystem(),
		Prompter:   mocks.AlwaysYes(),
		Downloader: mocks.NewDownloader("/tmp/startquantum"),
		Logger:     mocks.NewLogger(),
		Path:       make(map[string]string),
		Env:        make(map[string]string),
	}
}

// OnPath makes command resolvable on PATH at path.
func (f *Fixture) OnPath(command, path string) *Fixture {
	f.Path[command] = path
	return f
}

// Host wires the doubles into a host.Host. Changes to Path and Env made
// after the call are still observed.
func (f *Fixture) Host() *host.Host {
	locator := pathutil.NewLocator(f.FS,
		pathutil.WithGOOS(string(f.Platform.OS())),
		pathutil.WithHome(Home),
		pathutil.WithEnv(func(key string) string { return f.Env[key] }),
		pathutil.WithLookPath(func(name string) (string, error) {
			if p, ok := f.Path[name]; ok {
				return p, nil
			}
			return "", fmt.Errorf("%s: %w", name, exec.ErrNotFound)
		}),
	)

	return &host.Host{
		Platform:   f.Platform,
		Runner:     f.Runner,
		FS:         f.FS,
		Downloader: f.Downloader,
		Prompter:   f.Prompter,
		Locator:    locator,
		Logger:     f.Logger,
	}
}
