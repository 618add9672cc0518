package schedule

import "time"

// Direction selects which way SnapToWindow moves an out-of-window instant.
type Direction int

const (
	// Forward moves to the next valid working instant.
	Forward Direction = iota
	// Backward moves to the previous valid working instant.
	Backward
)

// clockOf returns the offset of t from its local midnight.
func clockOf(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

// atClock returns t's day with the clock set to the given midnight offset.
func atClock(t time.Time, clock time.Duration) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.Add(clock)
}

// addWorkingDuration returns the instant reached after consuming exactly d
// of working time starting at t. Time outside the working window or on
// non-working days is skipped; a duration that does not fit in the
// remaining window spills into the next working day, correctly stepping
// over runs of consecutive non-working days. With the window disabled the
// result is plain instant arithmetic.
//
// The start is expected to be inside the window already (callers snap
// first); a start past the window's end simply contributes zero hours for
// that day.
func addWorkingDuration(t time.Time, d time.Duration, w window) time.Time {
	if !w.enabled {
		return t.Add(d)
	}

	cur := t
	remaining := d
	for remaining > 0 {
		for !w.days[cur.Weekday()] {
			cur = atClock(cur.AddDate(0, 0, 1), w.start)
		}

		left := w.end - clockOf(cur)
		if left < 0 {
			left = 0
		}
		if remaining <= left {
			return cur.Add(remaining)
		}
		remaining -= left
		cur = atClock(cur.AddDate(0, 0, 1), w.start)
	}
	return cur
}

// subtractWorkingDuration is the mirror of addWorkingDuration: the
// instant from which consuming exactly d of working time arrives at t.
// The backward pass uses it so that latest starts land on the same
// working instants the forward pass produces; plain subtraction would
// credit upstream tasks with phantom overnight slack and break the
// critical path into disconnected pieces.
func subtractWorkingDuration(t time.Time, d time.Duration, w window) time.Time {
	if !w.enabled {
		return t.Add(-d)
	}

	cur := t
	remaining := d
	for remaining > 0 {
		for !w.days[cur.Weekday()] {
			cur = atClock(cur.AddDate(0, 0, -1), w.end)
		}
		if clockOf(cur) > w.end {
			cur = atClock(cur, w.end)
		}

		avail := clockOf(cur) - w.start
		if avail < 0 {
			avail = 0
		}
		if remaining <= avail {
			return cur.Add(-remaining)
		}
		remaining -= avail
		cur = atClock(cur.AddDate(0, 0, -1), w.end)
	}
	return cur
}

// snapToWindow moves an arbitrary instant to the nearest valid working
// instant in the given direction. Forward snapping normalizes
// dependency-driven start times that land after hours or on a
// non-working day; backward snapping is the mirror, landing on the
// window's end (the last instant from which a task could still consume
// time on that day). With the window disabled t is returned unchanged.
func snapToWindow(t time.Time, w window, dir Direction) time.Time {
	if !w.enabled {
		return t
	}
	if dir == Backward {
		return snapBackward(t, w)
	}
	return snapForward(t, w)
}

func snapForward(t time.Time, w window) time.Time {
	cur := t
	for {
		if !w.days[cur.Weekday()] {
			cur = atClock(cur.AddDate(0, 0, 1), w.start)
			continue
		}
		c := clockOf(cur)
		if c < w.start {
			return atClock(cur, w.start)
		}
		if c >= w.end {
			cur = atClock(cur.AddDate(0, 0, 1), w.start)
			continue
		}
		return cur
	}
}

func snapBackward(t time.Time, w window) time.Time {
	cur := t
	for {
		if !w.days[cur.Weekday()] {
			cur = atClock(cur.AddDate(0, 0, -1), w.end)
			continue
		}
		c := clockOf(cur)
		if c > w.end {
			return atClock(cur, w.end)
		}
		if c < w.start {
			cur = atClock(cur.AddDate(0, 0, -1), w.end)
			continue
		}
		return cur
	}
}

// hoursBetween returns the whole hours from a to b, truncated toward zero.
func hoursBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours())
}

// calendarDaySpan returns the number of calendar days between the dates of
// a and b, ignoring time of day. A schedule running Monday into Wednesday
// spans two days regardless of the clock times involved.
func calendarDaySpan(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, a.Location())
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, b.Location())
	return int(bd.Sub(ad).Hours() / 24)
}
