package service

import (
	"strings"
	"time"

	perr "remd/internal/platform/errors"
	ptime "remd/internal/platform/time"
	dom "remd/internal/services/napr/domain"
)

// ResolveWindow turns the operator override into a window in now's location.
// The override is honoured only when month and day are both set; it applies to now's year.
// For a partial or malformed override the default (today) window is returned together
// with an InvalidArgument error the caller should surface as a warning
func ResolveWindow(now time.Time, month, day string) (dom.TimeWindow, error) {
	month, day = strings.TrimSpace(month), strings.TrimSpace(day)

	def := func() dom.TimeWindow {
		s, e := ptime.DayBounds(now)
		return dom.TimeWindow{Start: s, End: e}
	}

	switch {
	case month == "" && day == "":
		return def(), nil
	case month == "" || day == "":
		return def(), perr.InvalidArgf("napr: month and day must be given together (month=%q day=%q); using today", month, day)
	}

	d, err := ptime.CalendarDate(now.Year(), month, day, now.Location())
	if err != nil {
		return def(), perr.Wrap(err, perr.ErrorCodeInvalidArgument, "napr: bad window override; using today")
	}
	w, err := dom.NewTimeWindow(ptime.DayBounds(d))
	if err != nil {
		return def(), perr.Wrap(err, perr.ErrorCodeInvalidArgument, "napr: bad window override; using today")
	}
	return w, nil
}
