package schedule

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lodestarhq/lodestar/internal/dag"
)

// Schedule computes a full CPM schedule for the given tasks. Input tasks
// are never mutated; the result is a fresh annotated list sorted by
// earliest start (ties broken by ID so identical inputs yield identical
// output).
//
// All input problems — duplicate or cyclic or unknown dependencies,
// non-positive durations, unusable settings — are detected before any
// pass runs, so the call either succeeds with a fully annotated list or
// fails with a typed error and no partial result.
func Schedule(tasks []Task, s Settings) ([]ScheduledTask, error) {
	w, err := s.normalize()
	if err != nil {
		return nil, err
	}

	byID, g, err := validate(tasks)
	if err != nil {
		return nil, err
	}

	order, err := g.TopologicalSort()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCyclicDependency, err)
	}

	projectStart := s.ProjectStart
	if projectStart.IsZero() {
		projectStart = time.Now().UTC()
	}

	earliest := computeEarliest(order, byID, projectStart, s, w)
	latest := computeLatest(order, byID, g, earliest, w)

	scheduled := make([]ScheduledTask, 0, len(tasks))
	for _, t := range tasks {
		e, l := earliest[t.ID], latest[t.ID]
		slack := slackHours(e, l)
		scheduled = append(scheduled, ScheduledTask{
			Task:          cloneTask(t),
			EarliestStart: e.Start,
			EarliestEnd:   e.End,
			LatestStart:   l.Start,
			LatestEnd:     l.End,
			SlackHours:    slack,
			Critical:      slack == 0,
		})
	}

	sort.SliceStable(scheduled, func(i, j int) bool {
		if !scheduled[i].EarliestStart.Equal(scheduled[j].EarliestStart) {
			return scheduled[i].EarliestStart.Before(scheduled[j].EarliestStart)
		}
		return scheduled[i].ID < scheduled[j].ID
	})
	return scheduled, nil
}

// validate runs the pre-pass over the task list: IDs must be unique,
// durations positive and finite, and every dependency must reference a
// task in the list. It returns the task index and the dependency graph
// ready for sorting.
func validate(tasks []Task) (map[int]Task, *dag.Graph, error) {
	byID := make(map[int]Task, len(tasks))
	g := dag.New()

	for _, t := range tasks {
		if t.DurationHours <= 0 || math.IsNaN(t.DurationHours) || math.IsInf(t.DurationHours, 0) {
			return nil, nil, fmt.Errorf("%w: task %d has duration %v", ErrInvalidDuration, t.ID, t.DurationHours)
		}
		if err := g.AddNode(t.ID); err != nil {
			return nil, nil, fmt.Errorf("%w: %d", ErrDuplicateTask, t.ID)
		}
		byID[t.ID] = t
	}

	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			if dep == t.ID {
				return nil, nil, fmt.Errorf("%w: task %d depends on itself", ErrCyclicDependency, t.ID)
			}
			if _, ok := byID[dep]; !ok {
				return nil, nil, fmt.Errorf("%w: task %d depends on %d", ErrUnknownDependency, t.ID, dep)
			}
			if err := g.AddEdge(t.ID, dep); err != nil {
				return nil, nil, err
			}
		}
	}
	return byID, g, nil
}

// cloneTask copies a task, including its dependency slice, so schedule
// results never alias caller-owned memory.
func cloneTask(t Task) Task {
	if len(t.Dependencies) > 0 {
		deps := make([]int, len(t.Dependencies))
		copy(deps, t.Dependencies)
		t.Dependencies = deps
	}
	return t
}

// ComputeStatistics summarizes a scheduled task list: project bounds,
// calendar-day span, and the critical path in schedule order.
func ComputeStatistics(scheduled []ScheduledTask) Statistics {
	stats := Statistics{TotalTasks: len(scheduled)}
	if len(scheduled) == 0 {
		return stats
	}

	stats.ProjectStart = scheduled[0].EarliestStart
	stats.ProjectEnd = scheduled[0].EarliestEnd
	for _, t := range scheduled {
		if t.EarliestStart.Before(stats.ProjectStart) {
			stats.ProjectStart = t.EarliestStart
		}
		if t.EarliestEnd.After(stats.ProjectEnd) {
			stats.ProjectEnd = t.EarliestEnd
		}
	}
	stats.TotalDays = calendarDaySpan(stats.ProjectStart, stats.ProjectEnd)

	for _, t := range scheduled {
		if !t.Critical {
			continue
		}
		stats.CriticalPathTasks = append(stats.CriticalPathTasks, CriticalTask{
			ID:            t.ID,
			Title:         t.Title,
			DurationHours: t.DurationHours,
		})
	}
	stats.CriticalPathLength = len(stats.CriticalPathTasks)
	return stats
}
