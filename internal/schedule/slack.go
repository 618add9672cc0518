package schedule

// slackHours derives per-task slack from the two passes: the whole hours
// between a task's earliest and latest start. A correct forward/backward
// pair never produces a negative difference; the clamp here only guards
// the display boundary, and the invariant itself is exercised by tests.
func slackHours(earliest, latest Interval) int {
	slack := hoursBetween(earliest.Start, latest.Start)
	if slack < 0 {
		slack = 0
	}
	return slack
}
