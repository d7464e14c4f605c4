package mocks

import (
	"os"
	"strings"
	"sync"

	"github.com/felixgeelhaar/startquantum/internal/ports"
)

// FileSystem is a thread-safe test double for ports.FileSystem.
type FileSystem struct {
	mu    sync.RWMutex
	files map[string]bool
	dirs  map[string]bool
}

// NewFileSystem creates a new FileSystem mock.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string]bool),
		dirs:  make(map[string]bool),
	}
}

// AddFile adds a file to the mock filesystem.
func (fs *FileSystem) AddFile(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[path] = true
}

// AddDir adds a directory to the mock filesystem.
func (fs *FileSystem) AddDir(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.dirs[path] = true
}

// Exists checks if a file or directory exists.
func (fs *FileSystem) Exists(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.files[path] || fs.dirs[path]
}

// IsDir checks if path is a directory.
func (fs *FileSystem) IsDir(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.dirs[path]
}

// MkdirAll records a directory.
func (fs *FileSystem) MkdirAll(path string, _ os.FileMode) error {
	fs.AddDir(path)
	return nil
}

// Remove removes a file or directory and everything below it.
func (fs *FileSystem) Remove(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.files[path] && !fs.dirs[path] {
		return os.ErrNotExist
	}
	for p := range fs.files {
		if p == path || strings.HasPrefix(p, path+"/") {
			delete(fs.files, p)
		}
	}
	delete(fs.dirs, path)
	return nil
}

// Reset clears all files and directories.
func (fs *FileSystem) Reset() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files = make(map[string]bool)
	fs.dirs = make(map[string]bool)
}

// Ensure FileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*FileSystem)(nil)
