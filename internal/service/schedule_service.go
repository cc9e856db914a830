package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
)

// ScheduleService manages the residential weekly board and the industrial
// Gantt board.
type ScheduleService struct {
	repo *repository.ScheduleRepository
}

func NewScheduleService(repo *repository.ScheduleRepository) *ScheduleService {
	return &ScheduleService{repo: repo}
}

// CreateJobRequest is the residential job payload.
type CreateJobRequest struct {
	ClientName string `json:"client_name" binding:"required"`
	City       string `json:"city"`
	Date       string `json:"date" binding:"required"`
	TimeSlot   string `json:"time_slot"`
	Team       string `json:"team"`
	Status     string `json:"status"`
}

// UpdateJobRequest carries optional job field updates.
type UpdateJobRequest struct {
	ClientName *string `json:"client_name"`
	City       *string `json:"city"`
	Date       *string `json:"date"`
	TimeSlot   *string `json:"time_slot"`
	Team       *string `json:"team"`
	Status     *string `json:"status"`
}

// CreateTaskRequest is the industrial schedule task payload.
type CreateTaskRequest struct {
	ProjectID    string `json:"project_id" binding:"required"`
	ActivityName string `json:"activity_name" binding:"required"`
	StartDate    string `json:"start_date" binding:"required"`
	DurationDays int    `json:"duration_days"`
	TeamID       string `json:"team_id"`
}

// UpdateTaskRequest carries optional task field updates.
type UpdateTaskRequest struct {
	ActivityName *string `json:"activity_name"`
	StartDate    *string `json:"start_date"`
	DurationDays *int    `json:"duration_days"`
	TeamID       *string `json:"team_id"`
}

// WeekDay is one column of the weekly board.
type WeekDay struct {
	Date time.Time    `json:"date"`
	Name string       `json:"name"`
	Jobs []entity.Job `json:"jobs"`
}

// GanttBar is one positioned row of the Gantt board.
type GanttBar struct {
	Task     entity.ScheduleTask `json:"task"`
	LeftPct  float64             `json:"left_pct"`
	WidthPct float64             `json:"width_pct"`
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

func (s *ScheduleService) CreateJob(ctx context.Context, req *CreateJobRequest) (*entity.Job, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	job := &entity.Job{
		ID:         generateID(),
		ClientName: req.ClientName,
		City:       req.City,
		Date:       date,
		TimeSlot:   req.TimeSlot,
		Team:       req.Team,
		Status:     req.Status,
		Type:       entity.TypeResidential,
	}
	if job.Team == "" {
		job.Team = "Team Alpha"
	}
	if job.Status == "" {
		job.Status = entity.JobStatusSurvey
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

func (s *ScheduleService) UpdateJob(ctx context.Context, id string, req *UpdateJobRequest) (*entity.Job, error) {
	job, err := s.repo.FindJobByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ClientName != nil {
		job.ClientName = *req.ClientName
	}
	if req.City != nil {
		job.City = *req.City
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		job.Date = date
	}
	if req.TimeSlot != nil {
		job.TimeSlot = *req.TimeSlot
	}
	if req.Team != nil {
		job.Team = *req.Team
	}
	if req.Status != nil {
		job.Status = *req.Status
	}

	if err := s.repo.UpdateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

func (s *ScheduleService) DeleteJob(ctx context.Context, id string) error {
	if _, err := s.repo.FindJobByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteJob(ctx, id)
}

// WeekBoard returns the Monday-first week containing the given date, with
// jobs bucketed per day and ordered by time slot.
func (s *ScheduleService) WeekBoard(ctx context.Context, anchor string) ([]WeekDay, error) {
	day := time.Now()
	if anchor != "" {
		parsed, err := parseDate(anchor)
		if err != nil {
			return nil, err
		}
		day = parsed
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	// back up to Monday
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)

	jobs, err := s.repo.ListJobsBetween(ctx, monday, monday.AddDate(0, 0, 7))
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	week := make([]WeekDay, 7)
	for i := range week {
		date := monday.AddDate(0, 0, i)
		week[i] = WeekDay{
			Date: date,
			Name: date.Weekday().String(),
			Jobs: []entity.Job{},
		}
	}
	for _, job := range jobs {
		i := int(job.Date.Sub(monday).Hours() / 24)
		if i >= 0 && i < 7 {
			week[i].Jobs = append(week[i].Jobs, job)
		}
	}
	return week, nil
}

func (s *ScheduleService) CreateTask(ctx context.Context, req *CreateTaskRequest) (*entity.ScheduleTask, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	task := &entity.ScheduleTask{
		ID:           generateID(),
		ProjectID:    req.ProjectID,
		ActivityName: req.ActivityName,
		StartDate:    start,
		DurationDays: req.DurationDays,
		TeamID:       req.TeamID,
	}
	if task.DurationDays <= 0 {
		task.DurationDays = 20
	}

	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("create schedule task: %w", err)
	}
	return task, nil
}

func (s *ScheduleService) UpdateTask(ctx context.Context, id string, req *UpdateTaskRequest) (*entity.ScheduleTask, error) {
	task, err := s.repo.FindTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ActivityName != nil {
		task.ActivityName = *req.ActivityName
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		task.StartDate = start
	}
	if req.DurationDays != nil && *req.DurationDays > 0 {
		task.DurationDays = *req.DurationDays
	}
	if req.TeamID != nil {
		task.TeamID = *req.TeamID
	}

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("update schedule task: %w", err)
	}
	return task, nil
}

func (s *ScheduleService) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.repo.FindTaskByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteTask(ctx, id)
}

// GanttBoard positions every task overlapping the displayed month.
func (s *ScheduleService) GanttBoard(ctx context.Context, year int, month time.Month) ([]GanttBar, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	tasks, err := s.repo.ListTasksOverlapping(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("list schedule tasks: %w", err)
	}

	bars := make([]GanttBar, 0, len(tasks))
	for _, task := range tasks {
		left, width, visible := entity.BarGeometry(task.StartDate, task.DurationDays, year, month)
		if !visible {
			continue
		}
		bars = append(bars, GanttBar{Task: task, LeftPct: left, WidthPct: width})
	}
	return bars, nil
}
