// Package app assembles the installer steps and drives a bootstrap session.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/startquantum/internal/adapters/sessionlock"
	"github.com/felixgeelhaar/startquantum/internal/domain/config"
	"github.com/felixgeelhaar/startquantum/internal/domain/execution"
	"github.com/felixgeelhaar/startquantum/internal/domain/step"
	"github.com/felixgeelhaar/startquantum/internal/ports"
	"github.com/felixgeelhaar/startquantum/internal/provider/host"
)

// Bootstrapper runs the installer steps against a host.
type Bootstrapper struct {
	host      *host.Host
	out       io.Writer
	providers ProviderFactory
	lockWait  time.Duration
	newID     func() string
}

// Option configures a Bootstrapper.
type Option func(*Bootstrapper)

// WithOutput sets where reports are printed.
func WithOutput(w io.Writer) Option {
	return func(b *Bootstrapper) {
		b.out = w
	}
}

// WithProviders replaces the built-in providers.
func WithProviders(factory ProviderFactory) Option {
	return func(b *Bootstrapper) {
		b.providers = factory
	}
}

// WithLockWait sets how long Run waits for another session to release
// the session lock.
func WithLockWait(wait time.Duration) Option {
	return func(b *Bootstrapper) {
		b.lockWait = wait
	}
}

// WithSessionID fixes the session ID instead of generating one.
func WithSessionID(id string) Option {
	return func(b *Bootstrapper) {
		b.newID = func() string { return id }
	}
}

// New creates a Bootstrapper for h.
func New(h *host.Host, opts ...Option) *Bootstrapper {
	b := &Bootstrapper{
		host:      h,
		out:       os.Stdout,
		providers: Providers,
		newID:     func() string { return uuid.New().String() },
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// assembly is a graph together with the steps a run targets.
type assembly struct {
	host    *host.Host
	graph   *step.Graph
	targets []step.Handle
	skipped []step.Handle
}

// assemble builds the graph for cfg. A non-empty only selects the steps to
// run, and a selected step runs even when cfg skips it.
func (b *Bootstrapper) assemble(h *host.Host, cfg *config.Config, only []string) (*assembly, error) {
	selected := make(map[string]bool, len(only))
	for _, id := range only {
		selected[id] = true
	}
	skipped := func(id step.ID) bool {
		return cfg.Skipped(id.String()) && !selected[id.String()]
	}

	graph, err := BuildGraph(b.providers(h, cfg), skipped)
	if err != nil {
		return nil, err
	}

	a := &assembly{host: h, graph: graph}
	for _, handle := range graph.Handles() {
		def, _ := graph.Get(handle)
		if skipped(def.ID) {
			a.skipped = append(a.skipped, handle)
			continue
		}
		if len(only) == 0 {
			a.targets = append(a.targets, handle)
		}
	}

	seen := make(map[step.Handle]bool, len(only))
	for _, raw := range only {
		id, err := step.NewID(raw)
		if err != nil {
			return nil, config.NewUnknownStepError(raw, StepIDs(graph)).WithUnderlying(err)
		}
		handle, ok := graph.Lookup(id)
		if !ok {
			return nil, config.NewUnknownStepError(raw, StepIDs(graph))
		}
		if !seen[handle] {
			seen[handle] = true
			a.targets = append(a.targets, handle)
		}
	}

	return a, nil
}

// sessionHost returns a copy of the host whose logger carries the session ID.
func (b *Bootstrapper) sessionHost(sessionID string) *host.Host {
	h := *b.host
	h.Logger = b.host.Logger.With(ports.F("session", sessionID))
	return &h
}

// Run installs the steps of cfg, or only the listed steps and what they
// require, and prints the steps it installed. It returns an error when the
// session could not start or when a step failed; declined steps are not
// errors.
func (b *Bootstrapper) Run(ctx context.Context, cfg *config.Config, only []string) (*Report, error) {
	sessionID := b.newID()
	h := b.sessionHost(sessionID)
	logger := h.Logger

	lock, err := sessionlock.Acquire(ctx, cfg.CacheDir, b.lockWait)
	if err != nil {
		if errors.Is(err, sessionlock.ErrLocked) {
			return nil, config.NewSessionLockedError(filepath.Join(cfg.CacheDir, sessionlock.FileName), err)
		}
		return nil, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn(ctx, "failed to release session lock", ports.F("error", err.Error()))
		}
	}()

	a, err := b.assemble(h, cfg, only)
	if err != nil {
		return nil, err
	}

	for _, handle := range a.skipped {
		def, _ := a.graph.Get(handle)
		logger.Info(ctx, fmt.Sprintf("Skipping %s; it is disabled in the configuration.", def.DisplayName()),
			ports.F("step", def.ID.String()),
		)
	}

	logger.Debug(ctx, "session started",
		ports.F("steps", a.graph.Len()),
		ports.F("targets", len(a.targets)),
		ports.F("platform", h.Platform.String()),
	)

	session := execution.NewSession(a.graph, h.Prompter, logger)
	for _, handle := range a.targets {
		if err := ctx.Err(); err != nil {
			return newReport(sessionID, session), err
		}
		session.Run(ctx, handle)
	}

	report := newReport(sessionID, session)
	PrintCompletion(b.out, report)

	if failed := report.Failed(); len(failed) > 0 {
		return report, config.NewStepsFailedError(failed)
	}
	return report, nil
}

// Check detects the status of every step without installing anything.
// Skipped steps report as declined.
func (b *Bootstrapper) Check(ctx context.Context, cfg *config.Config) (*execution.Plan, error) {
	h := b.sessionHost(b.newID())

	a, err := b.assemble(h, cfg, nil)
	if err != nil {
		return nil, err
	}

	session := execution.NewSession(a.graph, h.Prompter, h.Logger)
	return execution.NewPlanner().Plan(ctx, session), nil
}

// Steps lists the steps a run would target, in run order, without
// detecting anything.
func (b *Bootstrapper) Steps(cfg *config.Config, only []string) ([]PlannedStep, error) {
	a, err := b.assemble(b.host, cfg, only)
	if err != nil {
		return nil, err
	}

	targeted := make(map[step.Handle]bool, len(a.targets))
	for _, handle := range a.targets {
		targeted[handle] = true
	}
	skipped := make(map[step.Handle]bool, len(a.skipped))
	for _, handle := range a.skipped {
		skipped[handle] = true
	}

	steps := make([]PlannedStep, 0, a.graph.Len())
	for _, handle := range a.graph.Handles() {
		def, _ := a.graph.Get(handle)
		planned := PlannedStep{
			ID:       def.ID.String(),
			Name:     def.DisplayName(),
			Targeted: targeted[handle],
			Skipped:  skipped[handle],
		}
		for _, dep := range def.DependsOn {
			depDef, _ := a.graph.Get(dep)
			planned.Requires = append(planned.Requires, depDef.ID.String())
		}
		steps = append(steps, planned)
	}

	return steps, nil
}

// PlannedStep describes one step of the graph for the plan command.
type PlannedStep struct {
	ID       string
	Name     string
	Requires []string
	Targeted bool
	Skipped  bool
}
