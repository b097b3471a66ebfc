// Package window implements the trailing-time admission window. Bounds are
// computed once per run so every admission decision uses the same cutoff even
// when the run takes minutes.
package window

import (
	"time"
)

type Bounds struct {
	Start time.Time
	End   time.Time

	loc *time.Location
}

// New computes the admission interval ending at now (in loc) and starting
// hours earlier.
func New(now time.Time, loc *time.Location, hours int) Bounds {
	if loc == nil {
		loc = time.UTC
	}
	end := now.In(loc)
	return Bounds{
		Start: end.Add(-time.Duration(hours) * time.Hour),
		End:   end,
		loc:   loc,
	}
}

// Admits reports whether the instant falls inside the closed interval
// [Start, End]. Comparison happens in the window's own timezone, not UTC.
// An unknown (nil) instant never admits.
func (b Bounds) Admits(t *time.Time) bool {
	if t == nil {
		return false
	}
	local := t.In(b.loc)
	return !local.Before(b.Start) && !local.After(b.End)
}

// Location returns the timezone the window was computed in.
func (b Bounds) Location() *time.Location {
	return b.loc
}
