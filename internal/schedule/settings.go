package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Settings controls a scheduling run. The zero value is not usable;
// construct with DefaultSettings and override fields as needed so that
// every field is defaulted up front, never partially applied
// mid-algorithm.
type Settings struct {
	// ProjectStart anchors the forward pass. If zero, the facade
	// substitutes the current time; tests should always inject a fixed
	// instant for determinism.
	ProjectStart time.Time

	// WorkingHoursStart and WorkingHoursEnd bound the daily working
	// window as "HH:MM" clock strings, start inclusive, end exclusive.
	WorkingHoursStart string
	WorkingHoursEnd   string

	// HoursPerDay is informational; actual day capacity is derived from
	// the working window. Surfaced in config and statistics only.
	HoursPerDay float64

	// WorkingDays is the set of weekdays on which work may be scheduled.
	WorkingDays []time.Weekday

	// RespectDependencies delays each task until its dependencies end.
	RespectDependencies bool

	// RespectWorkingHours restricts duration consumption to the working
	// window on working days. When false, durations are plain wall-clock
	// arithmetic.
	RespectWorkingHours bool
}

// DefaultSettings returns settings for a standard Monday–Friday,
// 09:00–17:00 working week.
func DefaultSettings() Settings {
	return Settings{
		WorkingHoursStart:   "09:00",
		WorkingHoursEnd:     "17:00",
		HoursPerDay:         8,
		WorkingDays:         []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		RespectDependencies: true,
		RespectWorkingHours: true,
	}
}

// window is the validated, normalized form of the working-time settings
// that the calendar arithmetic operates on. Clock offsets are durations
// from midnight.
type window struct {
	start   time.Duration
	end     time.Duration
	days    [7]bool
	enabled bool // false when RespectWorkingHours is off
}

// normalize validates the settings and compiles them into a window.
// An empty working-day set with RespectWorkingHours enabled would loop
// forever searching for a working day, so it is rejected here.
func (s Settings) normalize() (window, error) {
	w := window{enabled: s.RespectWorkingHours}
	if !s.RespectWorkingHours {
		return w, nil
	}

	var err error
	if w.start, err = parseClock(s.WorkingHoursStart); err != nil {
		return window{}, fmt.Errorf("%w: working_hours_start: %v", ErrConfiguration, err)
	}
	if w.end, err = parseClock(s.WorkingHoursEnd); err != nil {
		return window{}, fmt.Errorf("%w: working_hours_end: %v", ErrConfiguration, err)
	}
	if w.end <= w.start {
		return window{}, fmt.Errorf("%w: working window %s–%s is empty",
			ErrConfiguration, s.WorkingHoursStart, s.WorkingHoursEnd)
	}

	if len(s.WorkingDays) == 0 {
		return window{}, fmt.Errorf("%w: working_days is empty", ErrConfiguration)
	}
	for _, d := range s.WorkingDays {
		if d < time.Sunday || d > time.Saturday {
			return window{}, fmt.Errorf("%w: working day %d out of range 0–6", ErrConfiguration, d)
		}
		w.days[d] = true
	}
	return w, nil
}

// parseClock parses an "HH:MM" clock string into an offset from midnight.
func parseClock(clock string) (time.Duration, error) {
	h, m, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, fmt.Errorf("clock %q is not HH:MM", clock)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("clock %q has invalid hour", clock)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock %q has invalid minute", clock)
	}
	return time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute, nil
}
