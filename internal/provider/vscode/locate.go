package vscode

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/startquantum/internal/domain/platform"
	"github.com/felixgeelhaar/startquantum/internal/ports"
	"github.com/felixgeelhaar/startquantum/internal/provider/pathutil"
)

// ErrManualInstall is returned where VS Code has to be installed with the
// platform's package manager.
var ErrManualInstall = errors.New("VS Code must be installed manually on this platform")

var userSetup = ports.DownloadRequest{
	URL:  "https://code.visualstudio.com/sha/download?build=stable&os=win32-x64-user",
	Name: "vscode-user-setup.exe",
}

func (p *Provider) toolSpec() pathutil.ToolSpec {
	commands := []string{"code"}
	if p.host.Platform.IsWindows() {
		commands = []string{"code.cmd", "code"}
	}
	return pathutil.ToolSpec{
		Commands: commands,
		WindowsPaths: []string{
			"$LOCALAPPDATA/Programs/Microsoft VS Code/bin/code.cmd",
			"$ProgramFiles/Microsoft VS Code/bin/code.cmd",
		},
		MacOSPaths: []string{
			"/Applications/Visual Studio Code.app/Contents/Resources/app/bin/code",
			"~/Applications/Visual Studio Code.app/Contents/Resources/app/bin/code",
		},
		LinuxPaths: []string{
			"/usr/share/code/bin/code",
			"/snap/bin/code",
		},
	}
}

func (p *Provider) find() (string, bool) {
	return p.host.Locator.Find(p.toolSpec())
}

// manualInstallHint names the package to install for hosts without an
// automated installer.
func manualInstallHint(plat *platform.Platform) string {
	distro := plat.Distro()
	switch {
	case plat.IsWSL():
		return "install VS Code on Windows from https://code.visualstudio.com/download and reopen this shell"
	case plat.IsMacOS():
		return "run `brew install --cask visual-studio-code` or download it from https://code.visualstudio.com/download"
	case distro.Is("debian"):
		return "install the .deb package from https://code.visualstudio.com/download or run `sudo snap install --classic code`"
	case distro.Is("fedora") || distro.Is("rhel"):
		return "install the .rpm package from https://code.visualstudio.com/download"
	default:
		return "install the code package for your distribution from https://code.visualstudio.com/download"
	}
}

func manualInstallError(plat *platform.Platform) error {
	return fmt.Errorf("%w: %s", ErrManualInstall, manualInstallHint(plat))
}
