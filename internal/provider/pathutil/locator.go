// Package pathutil locates tool executables on the host.
package pathutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/felixgeelhaar/startquantum/internal/ports"
)

// ToolSpec describes where an executable may live.
type ToolSpec struct {
	// Commands are names looked up on PATH, in order (e.g. "code.cmd", "code").
	Commands []string

	// EnvVar names an environment variable holding the executable path (e.g. "CONDA_EXE").
	EnvVar string

	// WindowsPaths are Windows-specific fallbacks (supports ~ and $VAR).
	WindowsPaths []string

	// MacOSPaths are macOS-specific fallbacks.
	MacOSPaths []string

	// LinuxPaths are Linux-specific fallbacks.
	LinuxPaths []string
}

// Source reports how a tool was found.
type Source string

const (
	// SourceEnv means the tool came from its environment variable.
	SourceEnv Source = "env"
	// SourcePath means the tool was found on PATH.
	SourcePath Source = "path"
	// SourceFallback means the tool was found in a well-known install location.
	SourceFallback Source = "fallback"
)

// Location is a located executable.
type Location struct {
	Path   string
	Source Source
}

// Locator finds executables: env override, then PATH, then OS fallbacks.
type Locator struct {
	fs       ports.FileSystem
	homeDir  string
	goos     string
	getenv   func(string) string
	lookPath func(string) (string, error)
}

// LocatorOption configures a Locator.
type LocatorOption func(*Locator)

// WithHome sets the home directory used for ~ expansion.
func WithHome(home string) LocatorOption {
	return func(l *Locator) {
		l.homeDir = home
	}
}

// WithGOOS sets the operating system whose fallbacks are used.
func WithGOOS(goos string) LocatorOption {
	return func(l *Locator) {
		l.goos = goos
	}
}

// WithEnv sets the environment lookup.
func WithEnv(getenv func(string) string) LocatorOption {
	return func(l *Locator) {
		l.getenv = getenv
	}
}

// WithLookPath sets the PATH lookup.
func WithLookPath(lookPath func(string) (string, error)) LocatorOption {
	return func(l *Locator) {
		l.lookPath = lookPath
	}
}

// NewLocator creates a Locator that checks file existence through fs.
func NewLocator(fs ports.FileSystem, opts ...LocatorOption) *Locator {
	home, _ := os.UserHomeDir()
	l := &Locator{
		fs:       fs,
		homeDir:  home,
		goos:     runtime.GOOS,
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Find returns the path of the first matching executable.
func (l *Locator) Find(tool ToolSpec) (string, bool) {
	loc, ok := l.Locate(tool)
	return loc.Path, ok
}

// Locate is Find with the source of the match.
func (l *Locator) Locate(tool ToolSpec) (Location, bool) {
	// 1. Explicit environment variable override
	if tool.EnvVar != "" {
		if p := l.getenv(tool.EnvVar); p != "" && l.fs.Exists(p) && !l.fs.IsDir(p) {
			return Location{Path: p, Source: SourceEnv}, true
		}
	}

	// 2. PATH
	for _, name := range tool.Commands {
		if p, err := l.lookPath(name); err == nil && p != "" {
			return Location{Path: p, Source: SourcePath}, true
		}
	}

	// 3. Platform-specific install locations
	for _, p := range l.Fallbacks(tool) {
		if l.fs.Exists(p) && !l.fs.IsDir(p) {
			return Location{Path: p, Source: SourceFallback}, true
		}
	}

	return Location{}, false
}

// Fallbacks returns the expanded fallback candidates for the current OS.
func (l *Locator) Fallbacks(tool ToolSpec) []string {
	var raw []string
	switch l.goos {
	case "windows":
		raw = tool.WindowsPaths
	case "darwin":
		raw = tool.MacOSPaths
	case "linux":
		raw = tool.LinuxPaths
	}

	paths := make([]string, 0, len(raw))
	for _, p := range raw {
		if expanded := l.expandPath(p); expanded != "" {
			paths = append(paths, expanded)
		}
	}
	return paths
}

// expandPath expands ~ and environment variables in a path. Paths that
// reference an unset variable expand to "".
func (l *Locator) expandPath(path string) string {
	if len(path) == 0 {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		if l.homeDir == "" {
			return ""
		}
		path = filepath.Join(l.homeDir, path[1:])
	}

	missing := false
	path = os.Expand(path, func(key string) string {
		v := l.getenv(key)
		if v == "" {
			missing = true
		}
		return v
	})
	if missing {
		return ""
	}

	return path
}

// Expand expands ~ and environment variables the way fallback paths are
// expanded. It returns "" if path references an unset variable.
func (l *Locator) Expand(path string) string {
	return l.expandPath(path)
}
