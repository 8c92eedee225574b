package testkit

import (
	"testing"
	"time"
)

func TestPanicHelpers(t *testing.T) {
	t.Parallel()

	MustPanic(t, func() { panic("boom") })
	MustNotPanic(t, func() {})
}

func TestContainHelpers(t *testing.T) {
	t.Parallel()

	MustContain(t, "register error", "error")
	MustNotContain(t, "register", "error")
}

func TestDate(t *testing.T) {
	t.Parallel()

	d := Date(t, "2024-03-12", nil)
	if d.Year() != 2024 || d.Month() != time.March || d.Day() != 12 || d.Hour() != 0 {
		t.Fatalf("Date(date only) = %v", d)
	}
	loc := time.FixedZone("MSK", 3*3600)
	dt := Date(t, "2024-03-12 23:59:59", loc)
	if dt.Location() != loc || dt.Hour() != 23 {
		t.Fatalf("Date(datetime) = %v", dt)
	}
}
