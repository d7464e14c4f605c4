package execution

import (
	"context"
)

// Planner reports what a run would do without installing anything.
type Planner struct{}

// NewPlanner creates a new Planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// Plan checks every step of the session's graph through the session cache,
// so later runs reuse the detected statuses.
func (p *Planner) Plan(ctx context.Context, session *Session) *Plan {
	plan := NewPlan()
	graph := session.Graph()

	for _, h := range graph.Handles() {
		def, _ := graph.Get(h)
		plan.Add(NewPlanEntry(h, def, session.Status(ctx, h)))
	}

	return plan
}
