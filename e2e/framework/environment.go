//go:build e2e

// Package framework runs the startquantum binary against a throwaway home
// directory with nothing on PATH.
package framework

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

// Environment is an isolated directory tree for one scenario.
type Environment struct {
	t          *testing.T
	rootDir    string
	workDir    string
	homeDir    string
	binDir     string
	binaryPath string
}

var (
	buildOnce  sync.Once
	binaryPath string
	buildErr   error
)

// findProjectRoot locates the project root directory.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// buildBinary builds the startquantum binary once per test run.
func buildBinary(t *testing.T) (string, error) {
	buildOnce.Do(func() {
		root, err := findProjectRoot()
		if err != nil {
			buildErr = err
			return
		}

		binaryPath = filepath.Join(os.TempDir(), "startquantum-e2e-test")

		cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/startquantum")
		cmd.Dir = root

		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			buildErr = fmt.Errorf("%w: %s", err, stderr.String())
		}
	})

	return binaryPath, buildErr
}

// NewEnvironment creates a new isolated test environment.
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()

	binary, err := buildBinary(t)
	if err != nil {
		t.Fatalf("Failed to build binary: %v", err)
	}

	rootDir := t.TempDir()
	env := &Environment{
		t:          t,
		rootDir:    rootDir,
		workDir:    filepath.Join(rootDir, "work"),
		homeDir:    filepath.Join(rootDir, "home"),
		binDir:     filepath.Join(rootDir, "bin"),
		binaryPath: binary,
	}

	for _, dir := range []string{env.workDir, env.homeDir, env.binDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	return env
}

// WorkDir is the directory commands run in.
func (e *Environment) WorkDir() string {
	return e.workDir
}

// HomeDir returns the path to the simulated home directory.
func (e *Environment) HomeDir() string {
	return e.homeDir
}

// BinDir is the only directory on PATH.
func (e *Environment) BinDir() string {
	return e.binDir
}

// CacheDir is the cache directory used by configs written with WriteConfig.
func (e *Environment) CacheDir() string {
	return filepath.Join(e.rootDir, "cache")
}

// RootDir returns the path to the test root directory.
func (e *Environment) RootDir() string {
	return e.rootDir
}

// BinaryPath returns the path to the built binary.
func (e *Environment) BinaryPath() string {
	return e.binaryPath
}

// WriteFile writes content to a file relative to the root directory.
func (e *Environment) WriteFile(path, content string) {
	e.t.Helper()

	fullPath := filepath.Join(e.rootDir, path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		e.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		e.t.Fatalf("Failed to write file %s: %v", fullPath, err)
	}
}

// WriteConfig writes startquantum.yaml into the work directory, where it
// is discovered without --config. The cache directory is set to CacheDir.
func (e *Environment) WriteConfig(content string) string {
	e.t.Helper()

	path := filepath.Join("work", "startquantum.yaml")
	e.WriteFile(path, fmt.Sprintf("cache_dir: %s\n%s", e.CacheDir(), content))
	return filepath.Join(e.rootDir, path)
}

// FileExists checks if a file exists relative to the root directory.
func (e *Environment) FileExists(path string) bool {
	_, err := os.Stat(filepath.Join(e.rootDir, path))
	return err == nil
}

// ReadFile reads a file relative to the root directory.
func (e *Environment) ReadFile(path string) string {
	e.t.Helper()

	content, err := os.ReadFile(filepath.Join(e.rootDir, path))
	if err != nil {
		e.t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
