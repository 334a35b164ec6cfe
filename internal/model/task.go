package model

import "time"

// FrequencyUnit is the calendar unit of an expected frequency.
type FrequencyUnit string

const (
	UnitDay   FrequencyUnit = "day"
	UnitWeek  FrequencyUnit = "week"
	UnitMonth FrequencyUnit = "month"
	UnitYear  FrequencyUnit = "year"
)

// FrequencyUnits lists the accepted units in canonical order.
var FrequencyUnits = []FrequencyUnit{UnitDay, UnitWeek, UnitMonth, UnitYear}

// ValidFrequencyUnit reports whether u is one of the accepted units.
func ValidFrequencyUnit(u FrequencyUnit) bool {
	for _, known := range FrequencyUnits {
		if u == known {
			return true
		}
	}
	return false
}

// ExpectedFrequency describes how often a task should be performed,
// e.g. {2, week} for "every two weeks".
type ExpectedFrequency struct {
	Value int           `json:"value"`
	Unit  FrequencyUnit `json:"unit"`
}

// TimeCommitment is a rough effort bucket for a task.
type TimeCommitment string

const (
	Commitment15Min    TimeCommitment = "15min"
	Commitment30Min    TimeCommitment = "30min"
	Commitment1Hr      TimeCommitment = "1hr"
	Commitment2Hrs     TimeCommitment = "2hrs"
	Commitment4Hrs     TimeCommitment = "4hrs"
	Commitment5HrsPlus TimeCommitment = "5hrs+"
)

// TimeCommitments lists the buckets in ascending effort order.
var TimeCommitments = []TimeCommitment{
	Commitment15Min, Commitment30Min, Commitment1Hr,
	Commitment2Hrs, Commitment4Hrs, Commitment5HrsPlus,
}

// ValidTimeCommitment reports whether c is one of the six buckets.
func ValidTimeCommitment(c TimeCommitment) bool {
	for _, known := range TimeCommitments {
		if c == known {
			return true
		}
	}
	return false
}

// Task is a recurring chore. It holds a lookup-only reference to its
// category; deleting a category never cascades to its tasks.
type Task struct {
	ID                string             `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name              string             `gorm:"type:varchar(128)" json:"name"`
	Description       string             `gorm:"type:varchar(512)" json:"description"`
	CategoryID        string             `gorm:"type:varchar(36);index" json:"categoryId"`
	CreatedAt         time.Time          `json:"createdAt"`
	LastCompletedAt   *time.Time         `json:"lastCompletedAt"`
	ExpectedFrequency *ExpectedFrequency `gorm:"serializer:json" json:"expectedFrequency,omitempty"`
	TimeCommitment    *TimeCommitment    `gorm:"type:varchar(10)" json:"timeCommitment,omitempty"`
	IsArchived        bool               `gorm:"index;default:false" json:"isArchived"`
	Notes             string             `gorm:"type:varchar(512)" json:"notes"`
}

// TaskForm carries user-supplied task fields; identifier and creation
// instant are assigned by the service.
type TaskForm struct {
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	CategoryID        string             `json:"categoryId"`
	ExpectedFrequency *ExpectedFrequency `json:"expectedFrequency,omitempty"`
	TimeCommitment    *TimeCommitment    `json:"timeCommitment,omitempty"`
	Notes             string             `json:"notes"`
}

// TaskStats aggregates completion figures across all non-archived tasks.
type TaskStats struct {
	TotalTasks            int     `json:"totalTasks"`
	CompletedToday        int     `json:"completedToday"`
	OverdueTasks          int     `json:"overdueTasks"`
	AverageCompletionDays float64 `json:"averageCompletionTime"`
}
