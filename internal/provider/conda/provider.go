// Package conda declares the steps that install Anaconda, hook it into the
// operator's shells and create the quantum development environment.
package conda

import (
	"github.com/felixgeelhaar/startquantum/internal/domain/config"
	"github.com/felixgeelhaar/startquantum/internal/domain/step"
	"github.com/felixgeelhaar/startquantum/internal/provider/host"
)

// Step IDs.
var (
	StepConda     = step.MustNewID("conda")
	StepShellInit = step.MustNewID("conda:shell-init")
	StepEnv       = step.MustNewID("conda:env")
)

// Provider declares the conda steps.
type Provider struct {
	host *host.Host
	cfg  config.CondaConfig
}

// NewProvider creates a new conda Provider.
func NewProvider(h *host.Host, cfg config.CondaConfig) *Provider {
	return &Provider{
		host: h,
		cfg:  cfg,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "conda"
}

// Declarations returns the conda steps in dependency order.
func (p *Provider) Declarations() []step.Declaration {
	return []step.Declaration{
		{
			ID:          StepConda,
			Name:        "Conda",
			Description: "Installs a scientific distribution of Python.",
			Install:     p.install,
			Check:       step.DetectWith(p.check),
		},
		{
			ID:          StepShellInit,
			Name:        "Conda command-line support",
			Description: "Configures conda for use with common command line shells, including bash and PowerShell.",
			Install:     p.initShells,
			Check:       step.NoDetector(),
			Requires:    []step.ID{StepConda},
		},
		{
			ID:          StepEnv,
			Name:        "Conda environment for quantum development",
			Description: "Creates a new conda environment with common packages for quantum development.",
			Install:     p.createEnv,
			Check:       step.DetectWith(p.checkEnv),
			Requires:    []step.ID{StepConda},
		},
	}
}
