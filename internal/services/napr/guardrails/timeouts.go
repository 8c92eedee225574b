// Package guardrails holds the safety helpers around a napr run: phase budgets and the day lease
package guardrails

import (
	"context"
	"time"
)

// Timeouts bounds the phases of one run. Zero means no extra limit at that level
type Timeouts struct {
	// Query caps the candidate selection
	Query time.Duration

	// Action caps one registration invocation
	Action time.Duration
}

// ForQuery returns a sub context for the selection bounded by Query and the parent deadline
func ForQuery(parent context.Context, t Timeouts) (context.Context, context.CancelFunc) {
	return withChildTimeout(parent, t.Query)
}

// ForAction returns a sub context for one registration bounded by Action and the parent deadline
func ForAction(parent context.Context, t Timeouts) (context.Context, context.CancelFunc) {
	return withChildTimeout(parent, t.Action)
}

// Remaining returns the time until the deadline on ctx or zero when none is set or already expired
func Remaining(ctx context.Context) time.Duration {
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 {
			return d
		}
	}
	return 0
}

// withChildTimeout picks the tighter of d and the parent remainder; it never extends the parent
func withChildTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(parent)
	}
	if rem := Remaining(parent); rem > 0 && rem < d {
		return context.WithTimeout(parent, rem)
	}
	return context.WithTimeout(parent, d)
}
