package config

import (
	"os"
	"path/filepath"
)

// FileNames are the config files looked up in the working directory, in order.
var FileNames = []string{"startquantum.yaml", "startquantum.yml", "startquantum.toml"}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "startquantum")
	}
	return filepath.Join(os.TempDir(), "startquantum")
}

// Discover returns the first config file that exists in dir, or "".
func Discover(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
