package execution

import "github.com/felixgeelhaar/startquantum/internal/domain/step"

// PlanEntry pairs a step with its detected status.
type PlanEntry struct {
	handle     step.Handle
	definition step.Definition
	status     step.InstallStatus
}

// NewPlanEntry creates a new PlanEntry.
func NewPlanEntry(h step.Handle, def step.Definition, status step.InstallStatus) PlanEntry {
	return PlanEntry{
		handle:     h,
		definition: def,
		status:     status,
	}
}

// Handle returns the step's handle.
func (e PlanEntry) Handle() step.Handle {
	return e.handle
}

// Definition returns the step definition.
func (e PlanEntry) Definition() step.Definition {
	return e.definition
}

// Status returns the detected status.
func (e PlanEntry) Status() step.InstallStatus {
	return e.status
}

// NeedsInstall returns true if running the step would offer an install.
func (e PlanEntry) NeedsInstall() bool {
	return e.status != step.StatusInstalled
}

// PlanSummary provides aggregate statistics about the plan.
type PlanSummary struct {
	Total        int
	Installed    int
	NotInstalled int
	Unknown      int
}

// Plan lists every step of a graph with its detected status, in dependency order.
type Plan struct {
	entries []PlanEntry
}

// NewPlan creates an empty Plan.
func NewPlan() *Plan {
	return &Plan{
		entries: make([]PlanEntry, 0),
	}
}

// Add appends a plan entry.
func (p *Plan) Add(entry PlanEntry) {
	p.entries = append(p.entries, entry)
}

// Len returns the number of entries.
func (p *Plan) Len() int {
	return len(p.entries)
}

// IsEmpty returns true if there are no entries.
func (p *Plan) IsEmpty() bool {
	return len(p.entries) == 0
}

// Entries returns all plan entries.
func (p *Plan) Entries() []PlanEntry {
	return p.entries
}

// NeedsInstall returns entries that are not yet installed.
func (p *Plan) NeedsInstall() []PlanEntry {
	result := make([]PlanEntry, 0)
	for _, e := range p.entries {
		if e.NeedsInstall() {
			result = append(result, e)
		}
	}
	return result
}

// HasChanges returns true if any step is not installed.
func (p *Plan) HasChanges() bool {
	for _, e := range p.entries {
		if e.NeedsInstall() {
			return true
		}
	}
	return false
}

// Summary returns aggregate statistics.
func (p *Plan) Summary() PlanSummary {
	summary := PlanSummary{Total: len(p.entries)}
	for _, e := range p.entries {
		switch e.status {
		case step.StatusInstalled:
			summary.Installed++
		case step.StatusNotInstalled:
			summary.NotInstalled++
		case step.StatusUnknown:
			summary.Unknown++
		}
	}
	return summary
}
