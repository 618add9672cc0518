// Package plan defines the project-plan document model: a named plan
// embedding its task list, the schedule settings stored alongside it, and
// parsing/validation for plan files. The scheduler consumes plans through
// the conversion helpers here and never sees the document fields it does
// not care about.
package plan

import (
	"time"

	"github.com/lodestarhq/lodestar/internal/schedule"
)

// Task is one unit of work in a plan document. The scheduling fields
// (scheduled_start onward) are populated by a scheduling run and
// overwritten in full on every run.
type Task struct {
	ID                     int     `json:"id" toml:"id"`
	Title                  string  `json:"title" toml:"title"`
	Description            string  `json:"description,omitempty" toml:"description,omitempty"`
	Category               string  `json:"category,omitempty" toml:"category,omitempty"`
	EstimatedDurationHours float64 `json:"estimated_duration_hours" toml:"estimated_duration_hours"`
	Dependencies           []int   `json:"dependencies" toml:"depends_on,omitempty"`
	Priority               string  `json:"priority,omitempty" toml:"priority,omitempty"`
	Assignee               string  `json:"assignee,omitempty" toml:"assignee,omitempty"`
	Status                 string  `json:"status,omitempty" toml:"status,omitempty"`

	ScheduledStart string `json:"scheduled_start,omitempty" toml:"scheduled_start,omitempty"`
	ScheduledEnd   string `json:"scheduled_end,omitempty" toml:"scheduled_end,omitempty"`
	SlackTime      int    `json:"slack_time" toml:"slack_time,omitempty"`
	IsCriticalPath bool   `json:"is_critical_path" toml:"is_critical_path,omitempty"`
}

// Settings is the schedule-settings block stored with a plan. All fields
// are optional; zero values fall back to the standard working week at
// conversion time.
type Settings struct {
	ProjectStart        time.Time `json:"project_start,omitempty" toml:"project_start,omitempty"`
	WorkingHoursStart   string    `json:"working_hours_start,omitempty" toml:"working_hours_start,omitempty"`
	WorkingHoursEnd     string    `json:"working_hours_end,omitempty" toml:"working_hours_end,omitempty"`
	HoursPerDay         float64   `json:"hours_per_day,omitempty" toml:"hours_per_day,omitempty"`
	WorkingDays         []int     `json:"working_days,omitempty" toml:"working_days,omitempty"`
	RespectDependencies *bool     `json:"respect_dependencies,omitempty" toml:"respect_dependencies,omitempty"`
	RespectWorkingHours *bool     `json:"respect_working_hours,omitempty" toml:"respect_working_hours,omitempty"`
}

// Plan is a project-plan document: metadata plus the embedded task list.
type Plan struct {
	ID        string    `json:"id,omitempty" toml:"-"`
	Name      string    `json:"name" toml:"name"`
	Summary   string    `json:"summary,omitempty" toml:"summary,omitempty"`
	Goal      string    `json:"goal,omitempty" toml:"goal,omitempty"`
	Settings  Settings  `json:"settings,omitempty" toml:"settings,omitempty"`
	Tasks     []Task    `json:"tasks" toml:"tasks"`
	CreatedAt time.Time `json:"created_at,omitempty" toml:"-"`
	UpdatedAt time.Time `json:"updated_at,omitempty" toml:"-"`
}

// ScheduleSettings merges the plan's stored settings over the scheduler
// defaults, producing a fully defaulted settings value.
func (s Settings) ScheduleSettings() schedule.Settings {
	return s.Overlay(schedule.DefaultSettings())
}

// Overlay applies the plan's stored settings on top of a fully defaulted
// base. Only fields the plan actually sets are overridden.
func (s Settings) Overlay(base schedule.Settings) schedule.Settings {
	out := base
	if !s.ProjectStart.IsZero() {
		out.ProjectStart = s.ProjectStart
	}
	if s.WorkingHoursStart != "" {
		out.WorkingHoursStart = s.WorkingHoursStart
	}
	if s.WorkingHoursEnd != "" {
		out.WorkingHoursEnd = s.WorkingHoursEnd
	}
	if s.HoursPerDay > 0 {
		out.HoursPerDay = s.HoursPerDay
	}
	if len(s.WorkingDays) > 0 {
		days := make([]time.Weekday, 0, len(s.WorkingDays))
		for _, d := range s.WorkingDays {
			days = append(days, time.Weekday(d))
		}
		out.WorkingDays = days
	}
	if s.RespectDependencies != nil {
		out.RespectDependencies = *s.RespectDependencies
	}
	if s.RespectWorkingHours != nil {
		out.RespectWorkingHours = *s.RespectWorkingHours
	}
	return out
}

// ScheduleTasks converts the plan's tasks to scheduler input.
func (p *Plan) ScheduleTasks() []schedule.Task {
	tasks := make([]schedule.Task, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		tasks = append(tasks, schedule.Task{
			ID:            t.ID,
			Title:         t.Title,
			DurationHours: t.EstimatedDurationHours,
			Dependencies:  t.Dependencies,
		})
	}
	return tasks
}

// ApplySchedule writes a scheduling result back onto the plan's tasks,
// overwriting any prior scheduling fields, and reorders the task list to
// match the schedule order. Instants are stored as RFC 3339 UTC strings.
func (p *Plan) ApplySchedule(scheduled []schedule.ScheduledTask) {
	byID := make(map[int]Task, len(p.Tasks))
	for _, t := range p.Tasks {
		byID[t.ID] = t
	}

	out := make([]Task, 0, len(scheduled))
	for _, s := range scheduled {
		t, ok := byID[s.ID]
		if !ok {
			continue
		}
		t.ScheduledStart = s.EarliestStart.UTC().Format(time.RFC3339)
		t.ScheduledEnd = s.EarliestEnd.UTC().Format(time.RFC3339)
		t.SlackTime = s.SlackHours
		t.IsCriticalPath = s.Critical
		out = append(out, t)
	}
	p.Tasks = out
}
