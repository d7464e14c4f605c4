package ports

import (
	"os"
	"path/filepath"
	"strings"
)

// FileSystem provides the file system queries used by detectors and installers.
type FileSystem interface {
	Exists(path string) bool
	IsDir(path string) bool
	MkdirAll(path string, perm os.FileMode) error
	Remove(path string) error
}

// ExpandPath expands a leading ~ to the user's home directory and
// $VAR or ${VAR} references to environment values.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		path = filepath.Join(home, path[1:])
	}
	if strings.Contains(path, "$") {
		path = os.ExpandEnv(path)
	}
	return path
}
