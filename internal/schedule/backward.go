package schedule

import (
	"time"

	"github.com/lodestarhq/lodestar/internal/dag"
)

// computeLatest runs the backward pass. The project end is the latest
// earliest-end over all tasks; walking the reversed dependency graph in
// reverse topological order, a task with no dependents may end at the
// project end, and any other task must end before its earliest-starting
// dependent begins.
//
// The latest start subtracts the duration in working time, mirroring the
// forward pass's addWorkingDuration, so tasks on the chain that
// determines the project end come out with latest start equal to their
// earliest start. The anchor itself is never re-snapped; it comes from
// the forward pass's already-snapped ends.
func computeLatest(order []int, byID map[int]Task, g *dag.Graph, earliest map[int]Interval, w window) map[int]Interval {
	var projectEnd time.Time
	for _, iv := range earliest {
		if iv.End.After(projectEnd) {
			projectEnd = iv.End
		}
	}

	latest := make(map[int]Interval, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		end := projectEnd

		for _, dep := range g.Dependents(id) {
			if start := latest[dep].Start; start.Before(end) {
				end = start
			}
		}
		latest[id] = Interval{
			Start: subtractWorkingDuration(end, byID[id].duration(), w),
			End:   end,
		}
	}
	return latest
}
