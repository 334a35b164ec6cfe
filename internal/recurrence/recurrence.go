// Package recurrence computes due dates and overdue status from a
// last-completion instant and an expected frequency. It is pure
// calendar arithmetic with no storage or clock dependencies.
package recurrence

import (
	"time"

	"howlongsince/internal/model"
)

// NextDueDate returns lastCompleted advanced by the frequency using
// calendar-aware addition: a month from Jan 31 follows Go's AddDate
// normalization rather than a fixed number of hours. Returns nil when
// either input is absent.
func NextDueDate(lastCompleted *time.Time, freq *model.ExpectedFrequency) *time.Time {
	if lastCompleted == nil || freq == nil {
		return nil
	}

	var due time.Time
	switch freq.Unit {
	case model.UnitDay:
		due = lastCompleted.AddDate(0, 0, freq.Value)
	case model.UnitWeek:
		due = lastCompleted.AddDate(0, 0, freq.Value*7)
	case model.UnitMonth:
		due = lastCompleted.AddDate(0, freq.Value, 0)
	case model.UnitYear:
		due = lastCompleted.AddDate(freq.Value, 0, 0)
	default:
		return nil
	}
	return &due
}

// IsOverdue reports whether now is strictly after the task's next due
// instant. Tasks without a frequency, and tasks that have never been
// completed, are never overdue regardless of age.
func IsOverdue(task model.Task, now time.Time) bool {
	due := NextDueDate(task.LastCompletedAt, task.ExpectedFrequency)
	if due == nil {
		return false
	}
	return now.After(*due)
}

// Status bundles the overdue verdict with the raw durations a caller
// needs to present it. Durations are unformatted; presentation belongs
// to the consumer.
type Status struct {
	Overdue             bool
	NextDue             *time.Time
	OverdueBy           time.Duration
	SinceLastCompletion time.Duration
}

// TaskStatus computes the full recurrence status of a task at the
// given instant.
func TaskStatus(task model.Task, now time.Time) Status {
	st := Status{
		NextDue: NextDueDate(task.LastCompletedAt, task.ExpectedFrequency),
	}
	if task.LastCompletedAt != nil {
		st.SinceLastCompletion = now.Sub(*task.LastCompletedAt)
	}
	if st.NextDue != nil && now.After(*st.NextDue) {
		st.Overdue = true
		st.OverdueBy = now.Sub(*st.NextDue)
	}
	return st
}
