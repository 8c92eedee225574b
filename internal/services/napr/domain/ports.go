package domain

import (
	"context"
	"errors"
)

// ErrStoreUnavailable marks a candidate query that could not complete
var ErrStoreUnavailable = errors.New("napr: store unavailable")

// StorageRepo answers the candidate query for a window.
// Rows come back ordered by actor; eligibility filtering is the repo's job
type StorageRepo interface {
	QueryInWindow(ctx context.Context, w TimeWindow) ([]CandidateRecord, error)
}

// Registrar performs the external registration for one item.
// nil means registered; any error means failed, its content is not interpreted
type Registrar interface {
	Register(ctx context.Context, itemID string) error
}

// Progress observes completed items; calls are serialized by the dispatcher
type Progress interface {
	Start(total int)
	Tick(o DispatchOutcome)
	Stop()
}

// OutcomeSink receives the finished report for auditing; failures never change the report
type OutcomeSink interface {
	Record(ctx context.Context, rep RunReport) error
}

// RunnerPort is the entrypoint exposed by the module
type RunnerPort interface {
	// Window resolves the operator override (both month and day, or neither) into a window.
	// A non-nil error is a warning: the returned window is the default one and is usable
	Window(month, day string) (TimeWindow, error)

	// Run selects, dispatches and returns the report for w
	Run(ctx context.Context, w TimeWindow, p Progress) (RunReport, error)
}
