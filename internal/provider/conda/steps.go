package conda

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/startquantum/internal/domain/step"
	"github.com/felixgeelhaar/startquantum/internal/provider/commandutil"
	"github.com/felixgeelhaar/startquantum/internal/provider/pathutil"
	"github.com/felixgeelhaar/startquantum/internal/provider/versionutil"
)

const executionPolicyDetail = "By default, the security policy for PowerShell on Windows prevents adding conda to your profile. " +
	"If you select \"yes\" here, this installer will set the security policy to allow conda. " +
	"See https://docs.microsoft.com/powershell/module/microsoft.powershell.core/about/about_execution_policies?view=powershell-7.1"

var executionPolicyArgs = []string{"-NoProfile", "-Command", "Set-ExecutionPolicy", "-Scope", "CurrentUser", "RemoteSigned"}

func (p *Provider) check(ctx context.Context) (step.InstallStatus, error) {
	log := p.host.Log(ctx)
	log.Debug(ctx, "Checking if conda is installed.")

	if path, ok := p.find(); ok {
		log.Debug(ctx, fmt.Sprintf("Found conda at '%s'.", path))
		return step.StatusInstalled, nil
	}

	// The Windows installer does not always put conda on PATH.
	if p.host.Platform.IsWindows() {
		return step.StatusUnknown, nil
	}
	return step.StatusNotInstalled, nil
}

func (p *Provider) install(ctx context.Context) error {
	req, err := p.installer()
	if err != nil {
		return err
	}

	log := p.host.Log(ctx)
	if p.host.Platform.IsWindows() {
		log.Info(ctx, "Installing conda, please wait...")
		return p.host.RunInstaller(ctx, req, "/InstallationType=JustMe", "/S")
	}

	prefix := p.host.Locator.Expand(p.cfg.Prefix)
	if prefix == "" {
		return fmt.Errorf("cannot expand conda prefix %q", p.cfg.Prefix)
	}

	script, err := p.host.Downloader.Download(ctx, req)
	if err != nil {
		return fmt.Errorf("download %s: %w", req.URL, err)
	}

	log.Info(ctx, "Installing conda, please wait...")
	return commandutil.Interactive(ctx, p.host.Runner, "bash", script, "-b", "-p", prefix)
}

func (p *Provider) initShells(ctx context.Context) error {
	conda, ok := p.find()
	if !ok {
		return errors.New("could not find conda to configure for command-line use")
	}

	if err := commandutil.Interactive(ctx, p.host.Runner, conda, "init", "--all"); err != nil {
		return err
	}

	if !p.host.Platform.IsWindows() {
		return nil
	}
	return p.setExecutionPolicy(ctx)
}

func (p *Provider) setExecutionPolicy(ctx context.Context) error {
	log := p.host.Log(ctx)

	allow, err := p.host.Prompter.Confirm(ctx, "Set PowerShell execution policy to allow using conda?", executionPolicyDetail, true)
	if err != nil {
		return fmt.Errorf("execution policy prompt: %w", err)
	}
	if !allow {
		log.Info(ctx, "Leaving the PowerShell execution policy unchanged.")
		return nil
	}

	if err := commandutil.Interactive(ctx, p.host.Runner, "powershell", executionPolicyArgs...); err != nil {
		return err
	}
	if pwsh, ok := p.host.Locator.Find(pathutil.ToolSpec{Commands: []string{"pwsh"}}); ok {
		return commandutil.Interactive(ctx, p.host.Runner, pwsh, executionPolicyArgs...)
	}
	return nil
}

func (p *Provider) checkEnv(ctx context.Context) (step.InstallStatus, error) {
	conda, ok := p.find()
	if !ok {
		return step.StatusNotInstalled, nil
	}

	out, err := commandutil.Output(ctx, p.host.Runner, conda, "env", "list")
	if err != nil {
		return step.StatusUnknown, err
	}
	for _, name := range versionutil.FirstField(out) {
		if name == p.cfg.Environment {
			return step.StatusInstalled, nil
		}
	}
	return step.StatusNotInstalled, nil
}

func (p *Provider) createEnv(ctx context.Context) error {
	conda, ok := p.find()
	if !ok {
		return errors.New("could not find conda to install packages into new environment")
	}

	args := []string{"create", "--yes", "-n", p.cfg.Environment}
	for _, channel := range p.cfg.Channels {
		args = append(args, "-c", channel)
	}
	args = append(args, p.cfg.Packages...)

	if err := commandutil.Interactive(ctx, p.host.Runner, conda, args...); err != nil {
		return err
	}

	p.host.Log(ctx).Info(ctx, fmt.Sprintf("New conda environment created. To use, run `conda activate %s`.", p.cfg.Environment))
	return nil
}
