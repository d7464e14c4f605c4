package step

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoDetector(t *testing.T) {
	d := NoDetector()
	assert.False(t, d.Present())

	status, err := d.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusUnknown, status)
}

func TestDetectWith_Nil(t *testing.T) {
	assert.False(t, DetectWith(nil).Present())
}

func TestDetector_And(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name    string
		first   Detector
		second  Detector
		want    InstallStatus
		wantErr error
		called  bool
	}{
		{"both installed", Static(StatusInstalled), Static(StatusInstalled), StatusInstalled, nil, true},
		{"second missing", Static(StatusInstalled), Static(StatusNotInstalled), StatusNotInstalled, nil, true},
		{"first missing", Static(StatusNotInstalled), Static(StatusInstalled), StatusNotInstalled, nil, false},
		{"first unknown", NoDetector(), Static(StatusInstalled), StatusUnknown, nil, false},
		{
			"first errors",
			DetectWith(func(context.Context) (InstallStatus, error) { return StatusUnknown, errBoom }),
			Static(StatusInstalled),
			StatusUnknown,
			errBoom,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			second := DetectWith(func(ctx context.Context) (InstallStatus, error) {
				called = true
				return tt.second.Detect(ctx)
			})

			status, err := tt.first.And(second).Detect(context.Background())
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.want, status)
			assert.Equal(t, tt.called, called)
		})
	}
}
