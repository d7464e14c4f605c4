package step

import "context"

// CheckFunc probes the host and reports a step's status.
type CheckFunc func(ctx context.Context) (InstallStatus, error)

// InstallFunc performs the side effects that satisfy a step.
type InstallFunc func(ctx context.Context) error

// Detector is either absent, in which case the status is always unknown,
// or wraps a CheckFunc.
type Detector struct {
	check CheckFunc
}

// NoDetector returns a Detector for steps that cannot be checked.
func NoDetector() Detector {
	return Detector{}
}

// DetectWith returns a Detector backed by fn. A nil fn yields NoDetector.
func DetectWith(fn CheckFunc) Detector {
	return Detector{check: fn}
}

// Present returns true if a check is configured.
func (d Detector) Present() bool {
	return d.check != nil
}

// Detect runs the check. Without a check it returns StatusUnknown and
// never touches the host.
func (d Detector) Detect(ctx context.Context) (InstallStatus, error) {
	if d.check == nil {
		return StatusUnknown, nil
	}
	return d.check(ctx)
}

// And combines two detectors: the receiver runs first and its result is
// returned unless it is StatusInstalled, in which case next decides.
// An absent receiver counts as StatusUnknown.
func (d Detector) And(next Detector) Detector {
	return DetectWith(func(ctx context.Context) (InstallStatus, error) {
		status, err := d.Detect(ctx)
		if err != nil || status != StatusInstalled {
			return status, err
		}
		return next.Detect(ctx)
	})
}

// Static returns a Detector that always reports status.
func Static(status InstallStatus) Detector {
	return DetectWith(func(context.Context) (InstallStatus, error) {
		return status, nil
	})
}
