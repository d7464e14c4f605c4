package dotnet

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/felixgeelhaar/startquantum/internal/domain/step"
	"github.com/felixgeelhaar/startquantum/internal/ports"
	"github.com/felixgeelhaar/startquantum/internal/provider/commandutil"
	"github.com/felixgeelhaar/startquantum/internal/provider/versionutil"
)

// checkSDK reports Installed when any SDK on the machine belongs to the
// configured release channel.
func (p *Provider) checkSDK(ctx context.Context) (step.InstallStatus, error) {
	dotnet, ok := p.find()
	if !ok {
		return step.StatusNotInstalled, nil
	}

	out, err := commandutil.Output(ctx, p.host.Runner, dotnet, "--list-sdks")
	if err != nil {
		return step.StatusUnknown, err
	}

	sdks := versionutil.FirstField(out)
	for _, sdk := range sdks {
		if versionutil.MatchesChannel(sdk, p.cfg.SDKVersion) {
			return step.StatusInstalled, nil
		}
	}

	if latest := versionutil.Latest(sdks); latest != "" {
		p.host.Log(ctx).Debug(ctx, fmt.Sprintf("Found .NET SDK %s, which is not from the %s channel.", latest, p.cfg.SDKVersion))
	}
	return step.StatusNotInstalled, nil
}

func (p *Provider) installSDK(ctx context.Context) error {
	log := p.host.Log(ctx)

	if p.host.Platform.IsWindows() {
		if req, ok := p.windowsInstaller(); ok {
			log.Info(ctx, fmt.Sprintf("Installing %s...", p.sdkName()))
			return p.host.RunInstaller(ctx, req, "/install", "/quiet", "/norestart")
		}
		return p.runInstallScript(ctx, installPSURL, "dotnet-install.ps1", func(script string) (string, []string) {
			return "powershell", []string{"-NoProfile", "-ExecutionPolicy", "Bypass", "-File", script, "-Channel", p.cfg.SDKVersion}
		})
	}

	return p.runInstallScript(ctx, installScriptURL, "dotnet-install.sh", func(script string) (string, []string) {
		return "bash", []string{script, "--channel", p.cfg.SDKVersion}
	})
}

func (p *Provider) windowsInstaller() (ports.DownloadRequest, bool) {
	if p.cfg.Installer.URL != "" {
		return ports.DownloadRequest{URL: p.cfg.Installer.URL, SHA256: p.cfg.Installer.SHA256}, true
	}
	req, ok := windowsInstallers[p.cfg.SDKVersion]
	return req, ok
}

// runInstallScript fetches Microsoft's install script, unless one is
// configured, and runs the command built by invoke.
func (p *Provider) runInstallScript(ctx context.Context, defaultURL, name string, invoke func(script string) (string, []string)) error {
	req := ports.DownloadRequest{URL: defaultURL, Name: name}
	if p.cfg.InstallScript.URL != "" {
		req = ports.DownloadRequest{
			URL:    p.cfg.InstallScript.URL,
			Name:   path.Base(p.cfg.InstallScript.URL),
			SHA256: p.cfg.InstallScript.SHA256,
		}
	}

	script, err := p.host.Downloader.Download(ctx, req)
	if err != nil {
		return fmt.Errorf("download %s: %w", req.URL, err)
	}

	p.host.Log(ctx).Info(ctx, fmt.Sprintf("Installing %s...", p.sdkName()))
	command, args := invoke(script)
	return commandutil.Interactive(ctx, p.host.Runner, command, args...)
}

// templateVerbs returns the `dotnet new` verbs that install and list
// template packages. SDKs before 7.0 only know the -i and -u forms.
func (p *Provider) templateVerbs(ctx context.Context, dotnet string) (install, list string) {
	out, err := commandutil.Output(ctx, p.host.Runner, dotnet, "--version")
	if err == nil && versionutil.AtLeast(strings.TrimSpace(out), "7.0") {
		return "install", "uninstall"
	}
	return "-i", "-u"
}

// checkTemplates looks for the package among installed template packages.
// Absence is reported as Unknown because the listing format differs
// between SDK releases.
func (p *Provider) checkTemplates(ctx context.Context) (step.InstallStatus, error) {
	dotnet, ok := p.find()
	if !ok {
		return step.StatusUnknown, nil
	}

	_, list := p.templateVerbs(ctx, dotnet)
	out, err := commandutil.Output(ctx, p.host.Runner, dotnet, "new", list)
	if err != nil {
		return step.StatusUnknown, err
	}
	if strings.Contains(strings.ToLower(out), strings.ToLower(p.cfg.TemplatesPackage)) {
		return step.StatusInstalled, nil
	}
	return step.StatusUnknown, nil
}

func (p *Provider) installTemplates(ctx context.Context) error {
	dotnet, ok := p.find()
	if !ok {
		return errors.New("could not find dotnet to install new project templates")
	}

	install, _ := p.templateVerbs(ctx, dotnet)
	return commandutil.Interactive(ctx, p.host.Runner, dotnet, "new", install, p.cfg.TemplatesPackage)
}
