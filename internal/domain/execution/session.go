package execution

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/startquantum/internal/domain/step"
	"github.com/felixgeelhaar/startquantum/internal/ports"
)

// Session runs steps from a Graph for one program invocation.
// It owns the memoized status of every step, the results of the steps it
// attempted and the ordered list of steps it installed.
// A Session is not safe for concurrent use.
type Session struct {
	graph    *step.Graph
	prompter ports.Prompter
	logger   ports.Logger
	now      func() time.Time

	statuses  map[step.Handle]step.InstallStatus
	results   map[step.Handle]StepResult
	attempted []step.Handle
	completed []step.Handle
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock overrides the time source used for durations.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession creates a Session over graph.
func NewSession(graph *step.Graph, prompter ports.Prompter, logger ports.Logger, opts ...SessionOption) *Session {
	s := &Session{
		graph:    graph,
		prompter: prompter,
		logger:   logger,
		now:      time.Now,
		statuses: make(map[step.Handle]step.InstallStatus),
		results:  make(map[step.Handle]StepResult),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Graph returns the graph this session runs.
func (s *Session) Graph() *step.Graph {
	return s.graph
}

// Status returns the memoized status of h, running its detector on first access.
// Detector errors resolve to StatusUnknown and are logged, never returned.
func (s *Session) Status(ctx context.Context, h step.Handle) step.InstallStatus {
	if status, ok := s.statuses[h]; ok {
		return status
	}

	def, ok := s.graph.Get(h)
	if !ok {
		s.logger.Error(ctx, NewStepNotFoundError(int(h)).Error())
		return step.StatusUnknown
	}

	status, err := s.detect(ctx, def)
	if err != nil {
		stepErr := NewCheckFailedError(def.ID.String(), err)
		s.logger.Error(ctx, fmt.Sprintf("Could not check whether %s is installed: %v", def.DisplayName(), err),
			ports.F("step", def.ID.String()),
			ports.F("code", stepErr.Code),
		)
		status = step.StatusUnknown
	} else if !status.IsValid() {
		s.logger.Warn(ctx, fmt.Sprintf("Check for %s returned an unexpected status %q", def.DisplayName(), status),
			ports.F("step", def.ID.String()),
		)
		status = step.StatusUnknown
	}

	s.statuses[h] = status
	return status
}

// Cached returns the memoized status of h without running its detector.
func (s *Session) Cached(h step.Handle) (step.InstallStatus, bool) {
	status, ok := s.statuses[h]
	return status, ok
}

// Recheck clears the memoized status of h and evaluates it again.
func (s *Session) Recheck(ctx context.Context, h step.Handle) step.InstallStatus {
	delete(s.statuses, h)
	return s.Status(ctx, h)
}

// Run brings h to its desired state, running dependencies first and asking
// the operator before installing. Failures are absorbed into the returned
// result and the memoized status; Run never panics on a failing callback.
// A step is attempted at most once per session; later calls return the
// recorded result.
func (s *Session) Run(ctx context.Context, h step.Handle) StepResult {
	if prior, ok := s.results[h]; ok {
		return prior
	}

	def, ok := s.graph.Get(h)
	if !ok {
		err := NewStepNotFoundError(int(h))
		s.logger.Error(ctx, err.Error())
		return NewStepResult(step.ID{}, step.StatusUnknown, err)
	}

	logger := s.logger.With(ports.F("step", def.ID.String()))
	ctx = ports.ContextWithLogger(ctx, logger)

	lc, err := newLifecycle(def.ID)
	if err != nil {
		logger.Warn(ctx, "run lifecycle unavailable", ports.F("error", err.Error()))
	}
	defer lc.stop()

	start := s.now()
	result := s.run(ctx, h, def, lc, logger).
		WithPhase(lc.phase()).
		WithDuration(s.now().Sub(start))

	s.results[h] = result
	s.attempted = append(s.attempted, h)

	logger.Debug(ctx, "step finished",
		ports.F("status", result.Status().String()),
		ports.F("phase", result.Phase().String()),
		ports.F("transitions", lc.transitions()),
		ports.F("duration", result.Duration()),
	)
	return result
}

func (s *Session) run(ctx context.Context, h step.Handle, def step.Definition, lc *lifecycle, logger ports.Logger) StepResult {
	name := def.DisplayName()

	// A declined or failed prerequisite vetoes this step without touching it.
	for _, dep := range def.DependsOn {
		depStatus := s.Status(ctx, dep)
		if !depStatus.Vetoes() {
			continue
		}
		depDef, _ := s.graph.Get(dep)
		lc.send(EventVeto)
		logger.Info(ctx, fmt.Sprintf("Skipping %s because %s was %s.", name, depDef.DisplayName(), depStatus),
			ports.F("dependency", depDef.ID.String()),
		)
		return NewStepResult(def.ID, s.peek(h), nil)
	}

	if s.Status(ctx, h) == step.StatusInstalled {
		lc.send(EventSatisfied)
		logger.Info(ctx, fmt.Sprintf("%s is already installed; skipping.", name))
		return NewStepResult(def.ID, step.StatusInstalled, nil)
	}

	lc.send(EventResolve)
	for _, dep := range def.DependsOn {
		if s.Status(ctx, dep) == step.StatusInstalled {
			continue
		}
		s.Run(ctx, dep)
		if s.Status(ctx, dep) == step.StatusInstalled {
			continue
		}

		depDef, _ := s.graph.Get(dep)
		lc.send(EventBlock)
		err := NewDependencyFailedError(def.ID.String(), depDef.ID.String())
		logger.Error(ctx, fmt.Sprintf("Dependency %s not installed; skipping %s.", depDef.DisplayName(), name),
			ports.F("dependency", depDef.ID.String()),
			ports.F("code", err.Code),
		)
		return NewStepResult(def.ID, s.peek(h), err)
	}

	lc.send(EventConfirm)
	confirmed, err := s.prompter.Confirm(ctx, fmt.Sprintf("Install %s?", name), def.Description, true)
	if err != nil {
		stepErr := NewPromptFailedError(def.ID.String(), err)
		s.statuses[h] = step.StatusDeclined
		lc.send(EventDecline)
		logger.Error(ctx, fmt.Sprintf("Could not read an answer for %s; treating it as declined.", name),
			ports.F("code", stepErr.Code),
			ports.F("error", err.Error()),
		)
		return NewStepResult(def.ID, step.StatusDeclined, stepErr)
	}
	if !confirmed {
		s.statuses[h] = step.StatusDeclined
		lc.send(EventDecline)
		logger.Info(ctx, fmt.Sprintf("Not installing %s.", name))
		return NewStepResult(def.ID, step.StatusDeclined, nil)
	}

	lc.send(EventInstall)
	previous := s.Status(ctx, h)
	if err := s.install(ctx, def); err != nil {
		stepErr := NewInstallFailedError(def.ID.String(), err)
		s.statuses[h] = step.StatusFailed
		lc.send(EventInstallFailed)
		logger.Error(ctx, fmt.Sprintf("%s failed to install: %v", name, err),
			ports.F("code", stepErr.Code),
		)
		return NewStepResult(def.ID, step.StatusFailed, stepErr)
	}

	lc.send(EventInstalled)
	current := s.Recheck(ctx, h)

	if previous != step.StatusNotInstalled {
		lc.send(EventSettle)
		logger.Info(ctx, fmt.Sprintf("Finished %s.", name),
			ports.F("previous_status", previous.String()),
			ports.F("status", current.String()),
		)
		return NewStepResult(def.ID, current, nil)
	}

	if current != step.StatusInstalled {
		stepErr := NewVerifyFailedError(def.ID.String(), current)
		s.statuses[h] = step.StatusFailed
		lc.send(EventUnverified)
		logger.Error(ctx, fmt.Sprintf("%s did not seem to install successfully.", name),
			ports.F("code", stepErr.Code),
			ports.F("status", current.String()),
		)
		return NewStepResult(def.ID, step.StatusFailed, stepErr)
	}

	lc.send(EventVerified)
	s.completed = append(s.completed, h)
	logger.Success(ctx, fmt.Sprintf("%s installed successfully!", name))
	return NewStepResult(def.ID, step.StatusInstalled, nil)
}

// peek returns the memoized status of h, or StatusUnknown if it was never checked.
func (s *Session) peek(h step.Handle) step.InstallStatus {
	if status, ok := s.statuses[h]; ok {
		return status
	}
	return step.StatusUnknown
}

// detect runs the detector and turns a panic into an error.
func (s *Session) detect(ctx context.Context, def step.Definition) (status step.InstallStatus, err error) {
	defer func() {
		if r := recover(); r != nil {
			status, err = step.StatusUnknown, fmt.Errorf("check panicked: %v", r)
		}
	}()
	return def.Check.Detect(ctx)
}

// install runs the install action and turns a panic into an error.
func (s *Session) install(ctx context.Context, def step.Definition) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("install panicked: %v", r)
		}
	}()
	return def.Install(ctx)
}

// Result returns the recorded result for h if it was attempted.
func (s *Session) Result(h step.Handle) (StepResult, bool) {
	result, ok := s.results[h]
	return result, ok
}

// Results returns the results of attempted steps in the order their runs finished.
func (s *Session) Results() []StepResult {
	results := make([]StepResult, 0, len(s.attempted))
	for _, h := range s.attempted {
		results = append(results, s.results[h])
	}
	return results
}

// Completed returns the steps installed during this session, in install order.
func (s *Session) Completed() []step.Handle {
	completed := make([]step.Handle, len(s.completed))
	copy(completed, s.completed)
	return completed
}
