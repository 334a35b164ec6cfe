package recurrence

import (
	"testing"
	"time"

	"howlongsince/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func freq(value int, unit model.FrequencyUnit) *model.ExpectedFrequency {
	return &model.ExpectedFrequency{Value: value, Unit: unit}
}

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name string
		last time.Time
		freq *model.ExpectedFrequency
		want time.Time
	}{
		{"one day", date(2024, time.March, 10), freq(1, model.UnitDay), date(2024, time.March, 11)},
		{"day across month boundary", date(2024, time.January, 31), freq(1, model.UnitDay), date(2024, time.February, 1)},
		{"two weeks", date(2024, time.March, 1), freq(2, model.UnitWeek), date(2024, time.March, 15)},
		{"month from Jan 31 normalizes", date(2024, time.January, 31), freq(1, model.UnitMonth), date(2024, time.March, 2)},
		{"month plain", date(2024, time.April, 15), freq(1, model.UnitMonth), date(2024, time.May, 15)},
		{"year over leap day", date(2024, time.February, 29), freq(1, model.UnitYear), date(2025, time.March, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDueDate(&tt.last, tt.freq)
			if got == nil {
				t.Fatal("expected a due date, got nil")
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextDueDateAbsentInputs(t *testing.T) {
	last := date(2024, time.March, 10)
	if got := NextDueDate(nil, freq(1, model.UnitDay)); got != nil {
		t.Errorf("nil last completion: got %v, want nil", got)
	}
	if got := NextDueDate(&last, nil); got != nil {
		t.Errorf("nil frequency: got %v, want nil", got)
	}
}

func TestIsOverdue(t *testing.T) {
	now := date(2024, time.June, 20)
	completed := func(daysAgo int) *time.Time {
		d := now.AddDate(0, 0, -daysAgo)
		return &d
	}

	tests := []struct {
		name string
		task model.Task
		want bool
	}{
		{"completed 8 days ago, weekly", model.Task{
			LastCompletedAt:   completed(8),
			ExpectedFrequency: freq(7, model.UnitDay),
		}, true},
		{"completed 6 days ago, weekly", model.Task{
			LastCompletedAt:   completed(6),
			ExpectedFrequency: freq(7, model.UnitDay),
		}, false},
		{"exactly due is not overdue", model.Task{
			LastCompletedAt:   completed(7),
			ExpectedFrequency: freq(7, model.UnitDay),
		}, false},
		{"never completed with frequency", model.Task{
			ExpectedFrequency: freq(1, model.UnitDay),
		}, false},
		{"no frequency", model.Task{
			LastCompletedAt: completed(400),
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOverdue(tt.task, now); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskStatus(t *testing.T) {
	now := date(2024, time.June, 20)
	last := now.AddDate(0, 0, -10)
	task := model.Task{
		LastCompletedAt:   &last,
		ExpectedFrequency: freq(7, model.UnitDay),
	}

	st := TaskStatus(task, now)
	if !st.Overdue {
		t.Fatal("expected overdue")
	}
	if st.NextDue == nil || !st.NextDue.Equal(last.AddDate(0, 0, 7)) {
		t.Errorf("next due: got %v", st.NextDue)
	}
	if want := 3 * 24 * time.Hour; st.OverdueBy != want {
		t.Errorf("overdue by: got %v, want %v", st.OverdueBy, want)
	}
	if want := 10 * 24 * time.Hour; st.SinceLastCompletion != want {
		t.Errorf("since last completion: got %v, want %v", st.SinceLastCompletion, want)
	}
}

func TestTaskStatusNeverCompleted(t *testing.T) {
	st := TaskStatus(model.Task{ExpectedFrequency: freq(1, model.UnitWeek)}, date(2024, time.June, 20))
	if st.Overdue || st.NextDue != nil || st.OverdueBy != 0 || st.SinceLastCompletion != 0 {
		t.Errorf("never-completed task must have empty status, got %+v", st)
	}
}
