// Package domain defines the referral registration types and ports
package domain

import (
	"errors"
	"strconv"
	"time"
)

// ItemPrefix marks referral result ids for the registration command
const ItemPrefix = "n-"

// ReferralItemID builds the item id handed to the registration action
func ReferralItemID(resultID int64) string {
	return ItemPrefix + strconv.FormatInt(resultID, 10)
}

// TimeWindow is the inclusive range candidate records are selected from
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// ErrWindowInverted is returned for a window whose start is after its end
var ErrWindowInverted = errors.New("napr: window start after end")

// NewTimeWindow checks start <= end
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if start.After(end) {
		return TimeWindow{}, ErrWindowInverted
	}
	return TimeWindow{Start: start, End: end}, nil
}

// Valid reports start <= end on a non-zero window
func (w TimeWindow) Valid() bool {
	return !w.Start.IsZero() && !w.End.IsZero() && !w.Start.After(w.End)
}

// Day is the YYYY-MM-DD of the window start, used in titles and lease keys
func (w TimeWindow) Day() string { return w.Start.Format(time.DateOnly) }

// CandidateRecord is one raw row of the candidate query
type CandidateRecord struct {
	ActorID int64
	ItemID  string

	// Diagnosis is the measurement diagnosis text; informational only
	Diagnosis string
}

// WorkItem is one registration to perform, unique per actor
type WorkItem struct {
	ActorID int64
	ItemID  string
}

// Status is the binary outcome of one registration
type Status string

const (
	// StatusRegistered means the action reported success
	StatusRegistered Status = "REGISTERED"
	// StatusError means the action failed, timed out or never ran
	StatusError Status = "ERROR"
)

// DispatchOutcome is the immutable result for one work item
type DispatchOutcome struct {
	Seq     int
	ActorID int64
	ItemID  string
	Status  Status

	// Dispatched is false when the run was cancelled before the item started
	Dispatched bool
	Elapsed    time.Duration
}

// RunReport is the ordered outcome list of one invocation
type RunReport struct {
	RunID    string
	Window   TimeWindow
	Outcomes []DispatchOutcome
}

// Total is the number of outcomes (one per distinct actor)
func (r RunReport) Total() int { return len(r.Outcomes) }

// Empty reports the "no qualifying records" state
func (r RunReport) Empty() bool { return len(r.Outcomes) == 0 }

// Count returns how many outcomes have status s
func (r RunReport) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}
