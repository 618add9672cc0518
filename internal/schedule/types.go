// Package schedule implements Critical Path Method scheduling for task
// graphs: a forward pass computing earliest start/end times under
// dependency and working-hours constraints, a backward pass computing
// latest times against the project end, and slack/critical-path
// derivation. The whole computation is pure and stateless; every call
// recomputes the full schedule from its inputs.
package schedule

import "time"

// Task is the scheduler's input: a unit of work with an estimated
// duration in work-hours and the IDs of tasks that must complete first.
type Task struct {
	ID            int
	Title         string
	DurationHours float64
	Dependencies  []int
}

// duration converts the work-hour estimate to a time.Duration.
func (t Task) duration() time.Duration {
	return time.Duration(t.DurationHours * float64(time.Hour))
}

// Interval is a half-open [Start, End) time range.
type Interval struct {
	Start time.Time
	End   time.Time
}

// ScheduledTask is a task annotated with the results of a scheduling run.
// EarliestStart/EarliestEnd are the scheduled times; the latest times and
// slack come from the backward pass.
type ScheduledTask struct {
	Task

	EarliestStart time.Time
	EarliestEnd   time.Time
	LatestStart   time.Time
	LatestEnd     time.Time

	// SlackHours is the whole hours the task's start can slip without
	// delaying the project end. Never negative.
	SlackHours int

	// Critical is true iff SlackHours is zero: delaying this task delays
	// the whole project.
	Critical bool
}

// CriticalTask is a critical-path entry in schedule order, for summaries.
type CriticalTask struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	DurationHours float64 `json:"duration"`
}

// Statistics summarizes a scheduling run for display.
type Statistics struct {
	ProjectStart       time.Time      `json:"projectStart"`
	ProjectEnd         time.Time      `json:"projectEnd"`
	TotalDays          int            `json:"totalDays"`
	CriticalPathLength int            `json:"criticalPathLength"`
	TotalTasks         int            `json:"totalTasks"`
	CriticalPathTasks  []CriticalTask `json:"criticalPathTasks"`
}
