package execution_test

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/startquantum/internal/domain/execution"
	"github.com/felixgeelhaar/startquantum/internal/domain/step"
	"github.com/felixgeelhaar/startquantum/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticDef(id string, status step.InstallStatus, deps ...step.Handle) step.Definition {
	return step.Definition{
		ID:        step.MustNewID(id),
		Install:   func(context.Context) error { return nil },
		Check:     step.Static(status),
		DependsOn: deps,
	}
}

func TestPlan_Empty(t *testing.T) {
	t.Parallel()

	plan := execution.NewPlan()

	assert.True(t, plan.IsEmpty())
	assert.False(t, plan.HasChanges())
	assert.Equal(t, execution.PlanSummary{}, plan.Summary())
}

func TestPlanner_Plan(t *testing.T) {
	t.Parallel()

	graph := step.NewGraph()
	hConda := graph.MustAdd(staticDef("conda", step.StatusInstalled))
	graph.MustAdd(staticDef("conda:env", step.StatusNotInstalled, hConda))
	graph.MustAdd(staticDef("conda:shell-init", step.StatusUnknown, hConda))

	prompter := mocks.AlwaysYes()
	session := execution.NewSession(graph, prompter, mocks.NewLogger())

	plan := execution.NewPlanner().Plan(context.Background(), session)

	require.Equal(t, 3, plan.Len())
	assert.True(t, plan.HasChanges())
	assert.Equal(t, execution.PlanSummary{Total: 3, Installed: 1, NotInstalled: 1, Unknown: 1}, plan.Summary())

	entries := plan.Entries()
	assert.Equal(t, "conda", entries[0].Definition().ID.String())
	assert.False(t, entries[0].NeedsInstall())

	needs := plan.NeedsInstall()
	require.Len(t, needs, 2)
	assert.Equal(t, "conda:env", needs[0].Definition().ID.String())
	assert.Equal(t, step.StatusNotInstalled, needs[0].Status())

	assert.Empty(t, prompter.Calls(), "planning never prompts")

	cached, ok := session.Cached(entries[1].Handle())
	require.True(t, ok)
	assert.Equal(t, step.StatusNotInstalled, cached)
}
