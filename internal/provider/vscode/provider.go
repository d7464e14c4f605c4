// Package vscode declares the steps that install VS Code and the
// extensions used for Python, Q# and C# development.
package vscode

import (
	"slices"

	"github.com/felixgeelhaar/startquantum/internal/domain/config"
	"github.com/felixgeelhaar/startquantum/internal/domain/step"
	"github.com/felixgeelhaar/startquantum/internal/provider/host"
)

// Step IDs.
var (
	StepVSCode     = step.MustNewID("vscode")
	StepExtensions = step.MustNewID("vscode:extensions")
)

// RemoteWSLExtensionID is the extension ID for VS Code Remote-WSL.
const RemoteWSLExtensionID = "ms-vscode-remote.remote-wsl"

// Provider declares the VS Code steps.
type Provider struct {
	host *host.Host
	cfg  config.VSCodeConfig
}

// NewProvider creates a new VS Code Provider.
func NewProvider(h *host.Host, cfg config.VSCodeConfig) *Provider {
	return &Provider{
		host: h,
		cfg:  cfg,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "vscode"
}

// Declarations returns the VS Code steps in dependency order.
func (p *Provider) Declarations() []step.Declaration {
	editor := step.DetectWith(p.check)
	return []step.Declaration{
		{
			ID:          StepVSCode,
			Name:        "VS Code",
			Description: "Installs a cross-platform development environment for use with many different languages, including Python, Q#, and JavaScript.",
			Install:     p.install,
			Check:       editor,
		},
		{
			ID:          StepExtensions,
			Name:        "Common extensions for VS Code",
			Description: "Installs VS Code extensions for working with Python, Q#, and C#.",
			Install:     p.installExtensions,
			Check:       editor.And(step.DetectWith(p.checkExtensions)),
			Requires:    []step.ID{StepVSCode},
		},
	}
}

// Extensions returns the extensions to install. Inside WSL the editor
// runs on Windows and needs Remote-WSL to open Linux folders.
func (p *Provider) Extensions() []string {
	extensions := slices.Clone(p.cfg.Extensions)
	if p.host.Platform.IsWSL() && !slices.Contains(extensions, RemoteWSLExtensionID) {
		extensions = append(extensions, RemoteWSLExtensionID)
	}
	return extensions
}
