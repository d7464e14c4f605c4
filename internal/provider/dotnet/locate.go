package dotnet

import (
	"github.com/felixgeelhaar/startquantum/internal/ports"
	"github.com/felixgeelhaar/startquantum/internal/provider/pathutil"
)

const (
	installScriptURL = "https://dot.net/v1/dotnet-install.sh"
	installPSURL     = "https://dot.net/v1/dotnet-install.ps1"
)

// windowsInstallers are the SDK installers known for a release channel.
var windowsInstallers = map[string]ports.DownloadRequest{
	"3.1": {
		URL:  "https://download.visualstudio.microsoft.com/download/pr/046165a4-10d4-4156-8e65-1d7b2cbd304e/a4c7b01f6bf7199669a45ab6a03803ac/dotnet-sdk-3.1.412-win-x64.exe",
		Name: "dotnet-sdk-3.1.412-win-x64.exe",
	},
}

var toolSpec = pathutil.ToolSpec{
	Commands: []string{"dotnet"},
	WindowsPaths: []string{
		"$ProgramFiles/dotnet/dotnet.exe",
		"~/.dotnet/dotnet.exe",
	},
	MacOSPaths: []string{
		"$DOTNET_ROOT/dotnet",
		"~/.dotnet/dotnet",
		"/usr/local/share/dotnet/dotnet",
	},
	LinuxPaths: []string{
		"$DOTNET_ROOT/dotnet",
		"~/.dotnet/dotnet",
		"/usr/share/dotnet/dotnet",
		"/usr/lib/dotnet/dotnet",
	},
}

func (p *Provider) find() (string, bool) {
	return p.host.Locator.Find(toolSpec)
}
