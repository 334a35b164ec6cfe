package service

import (
	"testing"
	"time"
)

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "03:30", want: "0 30 3 * * *"},
		{in: "0:0", want: "0 0 0 * * *"},
		{in: "23:59", want: "0 59 23 * * *"},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "12", wantErr: true},
		{in: "-1:30", wantErr: true},
	}
	for _, tt := range tests {
		got, err := buildDailySpec(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("buildDailySpec(%q): expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("buildDailySpec(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("buildDailySpec(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScheduleIntervalRejectsNonPositive(t *testing.T) {
	s := NewSchedulerService(time.UTC)
	if _, err := s.ScheduleInterval(0, func() {}); err == nil {
		t.Error("expected error for zero interval")
	}
	if _, err := s.ScheduleInterval(-time.Hour, func() {}); err == nil {
		t.Error("expected error for negative interval")
	}
}

func TestScheduleDailyRegisters(t *testing.T) {
	s := NewSchedulerService(time.UTC)
	id, err := s.ScheduleDaily("02:15", func() {})
	if err != nil {
		t.Fatalf("schedule daily: %v", err)
	}
	if id == 0 {
		t.Error("expected a non-zero entry id")
	}
	if _, err := s.ScheduleDaily("25:00", func() {}); err == nil {
		t.Error("expected error for invalid time")
	}
}
