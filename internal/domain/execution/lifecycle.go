package execution

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/startquantum/internal/domain/step"
)

// Phase is a state of the run lifecycle machine.
type Phase string

const (
	phaseIdle       = "idle"
	phaseVetoed     = "vetoed"
	phaseSkipped    = "skipped"
	phaseResolving  = "resolving"
	phaseBlocked    = "blocked"
	phaseConfirming = "confirming"
	phaseDeclined   = "declined"
	phaseInstalling = "installing"
	phaseVerifying  = "verifying"
	phaseInstalled  = "installed"
	phaseFailed     = "failed"
	phaseSettled    = "settled"
)

// Lifecycle phases.
const (
	// PhaseIdle is the state before any decision was made.
	PhaseIdle Phase = phaseIdle
	// PhaseVetoed means a dependency was declined or failed.
	PhaseVetoed Phase = phaseVetoed
	// PhaseSkipped means the step was already installed.
	PhaseSkipped Phase = phaseSkipped
	// PhaseResolving means dependencies are being materialized.
	PhaseResolving Phase = phaseResolving
	// PhaseBlocked means a dependency could not be installed.
	PhaseBlocked Phase = phaseBlocked
	// PhaseConfirming means the operator is being asked.
	PhaseConfirming Phase = phaseConfirming
	// PhaseDeclined means the operator said no.
	PhaseDeclined Phase = phaseDeclined
	// PhaseInstalling means the install action is running.
	PhaseInstalling Phase = phaseInstalling
	// PhaseVerifying means the status is being rechecked.
	PhaseVerifying Phase = phaseVerifying
	// PhaseInstalled means the install was verified.
	PhaseInstalled Phase = phaseInstalled
	// PhaseFailed means installing or verifying failed.
	PhaseFailed Phase = phaseFailed
	// PhaseSettled means the install ran but the prior status allowed no verdict.
	PhaseSettled Phase = phaseSettled
)

// Lifecycle events.
const (
	EventVeto          = "VETO"
	EventSatisfied     = "SATISFIED"
	EventResolve       = "RESOLVE"
	EventBlock         = "BLOCK"
	EventConfirm       = "CONFIRM"
	EventDecline       = "DECLINE"
	EventInstall       = "INSTALL"
	EventInstallFailed = "INSTALL_FAILED"
	EventInstalled     = "INSTALLED"
	EventVerified      = "VERIFIED"
	EventUnverified    = "UNVERIFIED"
	EventSettle        = "SETTLE"
)

// IsTerminal returns true if no further transition leaves this phase.
func (p Phase) IsTerminal() bool {
	switch p {
	case PhaseVetoed, PhaseSkipped, PhaseBlocked, PhaseDeclined, PhaseInstalled, PhaseFailed, PhaseSettled:
		return true
	}
	return false
}

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// lifecycleContext is the statekit context for a single run.
type lifecycleContext struct {
	StepID      string
	Transitions int
}

// lifecycle tracks one Run of one step through the phase machine.
type lifecycle struct {
	interp *statekit.Interpreter[lifecycleContext]
	ctx    *lifecycleContext
}

// newLifecycle builds and starts the phase machine for id.
func newLifecycle(id step.ID) (*lifecycle, error) {
	lc := &lifecycle{ctx: &lifecycleContext{StepID: id.String()}}

	machine, err := statekit.NewMachine[lifecycleContext]("step-run:" + id.String()).
		WithInitial(phaseIdle).
		WithContext(*lc.ctx).
		WithAction("countTransition", func(_ *lifecycleContext, _ statekit.Event) {
			lc.ctx.Transitions++
		}).
		State(phaseIdle).
		On(EventVeto).Target(phaseVetoed).
		On(EventSatisfied).Target(phaseSkipped).
		On(EventResolve).Target(phaseResolving).Done().
		State(phaseResolving).
		OnEntry("countTransition").
		On(EventBlock).Target(phaseBlocked).
		On(EventConfirm).Target(phaseConfirming).Done().
		State(phaseConfirming).
		OnEntry("countTransition").
		On(EventDecline).Target(phaseDeclined).
		On(EventInstall).Target(phaseInstalling).Done().
		State(phaseInstalling).
		OnEntry("countTransition").
		On(EventInstallFailed).Target(phaseFailed).
		On(EventInstalled).Target(phaseVerifying).Done().
		State(phaseVerifying).
		OnEntry("countTransition").
		On(EventVerified).Target(phaseInstalled).
		On(EventUnverified).Target(phaseFailed).
		On(EventSettle).Target(phaseSettled).Done().
		State(phaseVetoed).OnEntry("countTransition").Done().
		State(phaseSkipped).OnEntry("countTransition").Done().
		State(phaseBlocked).OnEntry("countTransition").Done().
		State(phaseDeclined).OnEntry("countTransition").Done().
		State(phaseInstalled).OnEntry("countTransition").Done().
		State(phaseFailed).OnEntry("countTransition").Done().
		State(phaseSettled).OnEntry("countTransition").Done().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build run lifecycle for %s: %w", id, err)
	}

	lc.interp = statekit.NewInterpreter(machine)
	lc.interp.Start()
	return lc, nil
}

// send delivers an event. A nil lifecycle ignores events.
func (l *lifecycle) send(event string) {
	if l == nil {
		return
	}
	l.interp.Send(statekit.Event{Type: statekit.EventType(event)})
}

// phase returns the current phase.
func (l *lifecycle) phase() Phase {
	if l == nil {
		return ""
	}
	return Phase(l.interp.State().Value)
}

// transitions returns how many phases were entered after idle.
func (l *lifecycle) transitions() int {
	if l == nil {
		return 0
	}
	return l.ctx.Transitions
}

// stop halts the interpreter.
func (l *lifecycle) stop() {
	if l == nil {
		return
	}
	l.interp.Stop()
}
