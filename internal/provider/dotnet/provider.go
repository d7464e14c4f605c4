// Package dotnet declares the steps that install the .NET SDK and the
// quantum project templates.
package dotnet

import (
	"fmt"

	"github.com/felixgeelhaar/startquantum/internal/domain/config"
	"github.com/felixgeelhaar/startquantum/internal/domain/step"
	"github.com/felixgeelhaar/startquantum/internal/provider/host"
	"github.com/felixgeelhaar/startquantum/internal/provider/versionutil"
)

// Step IDs.
var (
	StepSDK       = step.MustNewID("dotnet:sdk")
	StepTemplates = step.MustNewID("dotnet:templates")
)

// Provider declares the .NET steps.
type Provider struct {
	host *host.Host
	cfg  config.DotnetConfig
}

// NewProvider creates a new .NET Provider.
func NewProvider(h *host.Host, cfg config.DotnetConfig) *Provider {
	return &Provider{
		host: h,
		cfg:  cfg,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "dotnet"
}

// Declarations returns the .NET steps in dependency order.
func (p *Provider) Declarations() []step.Declaration {
	return []step.Declaration{
		{
			ID:          StepSDK,
			Name:        p.sdkName(),
			Description: "Installs a cross-platform toolchain for writing classical and quantum applications.",
			Install:     p.installSDK,
			Check:       step.DetectWith(p.checkSDK),
		},
		{
			ID:          StepTemplates,
			Name:        "Quantum project templates",
			Description: "Installs new project templates for quantum libraries and applications.",
			Install:     p.installTemplates,
			Check:       step.DetectWith(p.checkTemplates),
			Requires:    []step.ID{StepSDK},
		},
	}
}

// sdkName follows Microsoft's naming: releases before 5.0 are ".NET Core".
func (p *Provider) sdkName() string {
	if versionutil.AtLeast(p.cfg.SDKVersion, "5") {
		return fmt.Sprintf(".NET SDK %s", p.cfg.SDKVersion)
	}
	return fmt.Sprintf(".NET Core SDK %s", p.cfg.SDKVersion)
}
