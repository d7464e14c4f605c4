package app

import (
	"fmt"

	"github.com/felixgeelhaar/startquantum/internal/domain/config"
	"github.com/felixgeelhaar/startquantum/internal/domain/step"
	"github.com/felixgeelhaar/startquantum/internal/provider/conda"
	"github.com/felixgeelhaar/startquantum/internal/provider/dotnet"
	"github.com/felixgeelhaar/startquantum/internal/provider/host"
	"github.com/felixgeelhaar/startquantum/internal/provider/vscode"
)

// Provider contributes installer steps to the graph.
type Provider interface {
	Name() string
	Declarations() []step.Declaration
}

// ProviderFactory builds the providers of a session.
type ProviderFactory func(h *host.Host, cfg *config.Config) []Provider

// Providers returns the built-in providers in the order their steps run.
func Providers(h *host.Host, cfg *config.Config) []Provider {
	return []Provider{
		conda.NewProvider(h, cfg.Conda),
		dotnet.NewProvider(h, cfg.Dotnet),
		vscode.NewProvider(h, cfg.VSCode),
	}
}

// BuildGraph declares the steps of every provider in order. A step for
// which skipped returns true keeps its place in the graph but detects as
// declined, so steps that require it veto themselves.
func BuildGraph(providers []Provider, skipped func(step.ID) bool) (*step.Graph, error) {
	graph := step.NewGraph()

	for _, p := range providers {
		for _, decl := range p.Declarations() {
			if skipped != nil && skipped(decl.ID) {
				decl.Check = step.Static(step.StatusDeclined)
			}
			if _, err := graph.Declare(decl); err != nil {
				return nil, fmt.Errorf("provider %s: %w", p.Name(), err)
			}
		}
	}

	return graph, nil
}

// StepIDs returns the IDs of every step in graph order.
func StepIDs(graph *step.Graph) []string {
	ids := make([]string, 0, graph.Len())
	for _, h := range graph.Handles() {
		def, _ := graph.Get(h)
		ids = append(ids, def.ID.String())
	}
	return ids
}
