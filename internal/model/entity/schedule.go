package entity

import "time"

// Job is a residential field visit slotted into the weekly board.
type Job struct {
	ID         string    `json:"id" gorm:"primaryKey;size:32"`
	ClientName string    `json:"client_name" gorm:"size:128;not null"`
	City       string    `json:"city" gorm:"size:64"`
	Date       time.Time `json:"date" gorm:"not null;index"`
	TimeSlot   string    `json:"time_slot" gorm:"size:32"`
	Team       string    `json:"team" gorm:"size:64;not null;default:Team Alpha"`
	Status     string    `json:"status" gorm:"size:16;not null;default:Survey"`
	Type       string    `json:"type" gorm:"size:16;not null;default:Residential"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}

// Job status
const (
	JobStatusSurvey   = "Survey"
	JobStatusInstall  = "Install"
	JobStatusCleaning = "Cleaning"
)

// ScheduleTask is one bar on the industrial Gantt board: an activity of a
// project carried out by a team over a span of days.
type ScheduleTask struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	ProjectID    string    `json:"project_id" gorm:"size:32;not null;index"`
	ActivityName string    `json:"activity_name" gorm:"size:128;not null"`
	StartDate    time.Time `json:"start_date" gorm:"not null;index"`
	DurationDays int       `json:"duration_days" gorm:"not null;default:20"`
	TeamID       string    `json:"team_id" gorm:"size:32"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (ScheduleTask) TableName() string {
	return "schedule_tasks"
}

// minBarWidthPct keeps very short tasks visible on the board.
const minBarWidthPct = 2.0

// BarGeometry positions a task bar inside the displayed month. Tasks that
// begin before the month are clamped to day 1; tasks that begin after it are
// not visible. Percentages are relative to the month's day count.
func BarGeometry(start time.Time, durationDays, year int, month time.Month) (leftPct, widthPct float64, visible bool) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, start.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	days := monthEnd.Add(-24 * time.Hour).Day()

	if !start.Before(monthEnd) {
		return 0, 0, false
	}
	startDay := 1
	if !start.Before(monthStart) {
		startDay = start.Day()
	} else if start.AddDate(0, 0, durationDays).Before(monthStart) {
		return 0, 0, false
	}

	widthDays := durationDays
	if startDay+widthDays-1 > days {
		widthDays = days - startDay + 1
	}
	if widthDays < 1 {
		return 0, 0, false
	}

	leftPct = float64(startDay-1) / float64(days) * 100
	widthPct = float64(widthDays) / float64(days) * 100
	if widthPct < minBarWidthPct {
		widthPct = minBarWidthPct
	}
	return leftPct, widthPct, true
}
