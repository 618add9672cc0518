package schedule

import "time"

// computeEarliest runs the forward pass: for each task in topological
// order, the earliest start is the later of the project start and the
// ends of all its dependencies (when dependencies are respected), snapped
// forward into the working window, and the earliest end follows from
// consuming the task's duration as working time.
//
// Every ID in order must exist in byID, and order must place each task
// after its dependencies; both are guaranteed by the facade's validation.
func computeEarliest(order []int, byID map[int]Task, projectStart time.Time, s Settings, w window) map[int]Interval {
	times := make(map[int]Interval, len(order))

	for _, id := range order {
		task := byID[id]
		start := projectStart

		if s.RespectDependencies {
			for _, dep := range task.Dependencies {
				if end := times[dep].End; end.After(start) {
					start = end
				}
			}
		}
		start = snapToWindow(start, w, Forward)
		times[id] = Interval{
			Start: start,
			End:   addWorkingDuration(start, task.duration(), w),
		}
	}
	return times
}
