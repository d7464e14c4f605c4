package conda

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/felixgeelhaar/startquantum/internal/ports"
	"github.com/felixgeelhaar/startquantum/internal/provider/pathutil"
)

// ErrNoInstaller is returned when no installer is known for the host.
var ErrNoInstaller = errors.New("no conda installer for this platform")

const archiveURL = "https://repo.anaconda.com/archive/"

// installers maps os/arch to the Anaconda installer file name.
var installers = map[string]string{
	"windows/amd64": "Anaconda3-2021.05-Windows-x86_64.exe",
	"linux/amd64":   "Anaconda3-2021.05-Linux-x86_64.sh",
	"linux/arm64":   "Anaconda3-2021.05-Linux-aarch64.sh",
	"darwin/amd64":  "Anaconda3-2021.05-MacOSX-x86_64.sh",
}

// toolSpec describes where conda may live. The Windows fallbacks are the
// default locations of the per-user and all-users installers.
func (p *Provider) toolSpec() pathutil.ToolSpec {
	prefixed := filepath.Join(p.cfg.Prefix, "bin", "conda")
	return pathutil.ToolSpec{
		Commands: []string{"conda"},
		EnvVar:   "CONDA_EXE",
		WindowsPaths: []string{
			"~/Anaconda3/Scripts/conda.exe",
			"$APPDATA/Anaconda3/Scripts/conda.exe",
			"C:/Anaconda3/Scripts/conda.exe",
		},
		MacOSPaths: []string{prefixed},
		LinuxPaths: []string{prefixed},
	}
}

func (p *Provider) find() (string, bool) {
	return p.host.Locator.Find(p.toolSpec())
}

// installer returns the configured installer, or the default for the host.
func (p *Provider) installer() (ports.DownloadRequest, error) {
	if p.cfg.Installer.URL != "" {
		return ports.DownloadRequest{URL: p.cfg.Installer.URL, SHA256: p.cfg.Installer.SHA256}, nil
	}

	key := fmt.Sprintf("%s/%s", p.host.Platform.OS(), p.host.Platform.Arch())
	name, ok := installers[key]
	if !ok {
		return ports.DownloadRequest{}, fmt.Errorf("%w %s; set conda.installer.url", ErrNoInstaller, key)
	}
	return ports.DownloadRequest{URL: archiveURL + name, Name: name}, nil
}
