package execution

import (
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/startquantum/internal/domain/step"
	"github.com/stretchr/testify/assert"
)

func TestStepResult(t *testing.T) {
	t.Parallel()

	id := step.MustNewID("vscode")
	err := errors.New("boom")

	result := NewStepResult(id, step.StatusFailed, err).
		WithPhase(PhaseFailed).
		WithDuration(2 * time.Second)

	assert.Equal(t, id, result.StepID())
	assert.Equal(t, step.StatusFailed, result.Status())
	assert.Equal(t, PhaseFailed, result.Phase())
	assert.Equal(t, err, result.Error())
	assert.Equal(t, 2*time.Second, result.Duration())
	assert.False(t, result.Installed())

	assert.True(t, NewStepResult(id, step.StatusInstalled, nil).Installed())
}
