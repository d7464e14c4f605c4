package vscode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/startquantum/internal/domain/step"
	"github.com/felixgeelhaar/startquantum/internal/provider/commandutil"
)

func (p *Provider) check(ctx context.Context) (step.InstallStatus, error) {
	log := p.host.Log(ctx)
	log.Debug(ctx, "Checking if code is installed.")

	if path, ok := p.find(); ok {
		log.Debug(ctx, fmt.Sprintf("Found code at '%s'.", path))
		return step.StatusInstalled, nil
	}
	return step.StatusNotInstalled, nil
}

func (p *Provider) install(ctx context.Context) error {
	if !p.host.Platform.IsWindows() {
		return manualInstallError(p.host.Platform)
	}

	req := userSetup
	if p.cfg.Installer.URL != "" {
		req.URL = p.cfg.Installer.URL
		req.SHA256 = p.cfg.Installer.SHA256
	}

	p.host.Log(ctx).Info(ctx, "Installing VS Code...")
	return p.host.RunInstaller(ctx, req, "/verysilent", "/norestart", "/mergetasks=!runcode")
}

// installed returns the set of extension IDs reported by the editor.
func (p *Provider) installed(ctx context.Context, code string) (map[string]bool, error) {
	out, err := commandutil.Output(ctx, p.host.Runner, code, "--list-extensions")
	if err != nil {
		return nil, err
	}

	ids := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		if id := strings.TrimSpace(line); id != "" {
			// Marketplace IDs are case-insensitive.
			ids[strings.ToLower(id)] = true
		}
	}
	return ids, nil
}

func (p *Provider) missing(ctx context.Context, code string) ([]string, error) {
	ids, err := p.installed(ctx, code)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, ext := range p.Extensions() {
		if !ids[strings.ToLower(ext)] {
			missing = append(missing, ext)
		}
	}
	return missing, nil
}

func (p *Provider) checkExtensions(ctx context.Context) (step.InstallStatus, error) {
	code, ok := p.find()
	if !ok {
		return step.StatusNotInstalled, nil
	}

	missing, err := p.missing(ctx, code)
	if err != nil {
		return step.StatusUnknown, err
	}
	if len(missing) > 0 {
		p.host.Log(ctx).Debug(ctx, fmt.Sprintf("Extensions not installed: %s", strings.Join(missing, ", ")))
		return step.StatusNotInstalled, nil
	}
	return step.StatusInstalled, nil
}

// installExtensions installs each missing extension and keeps going after
// a failure so one bad ID does not block the rest.
func (p *Provider) installExtensions(ctx context.Context) error {
	code, ok := p.find()
	if !ok {
		return errors.New("could not find code to install extensions")
	}

	pending, err := p.missing(ctx, code)
	if err != nil {
		pending = p.Extensions()
	}

	log := p.host.Log(ctx)
	var errs []error
	for _, ext := range pending {
		log.Info(ctx, fmt.Sprintf("Installing extension %s...", ext))
		if _, err := commandutil.Output(ctx, p.host.Runner, code, "--install-extension", ext); err != nil {
			errs = append(errs, fmt.Errorf("extension %s: %w", ext, err))
		}
	}
	return errors.Join(errs...)
}
