package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"gorm.io/gorm"
)

// ScheduleRepository handles residential jobs and industrial schedule tasks.
type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) FindJobByID(ctx context.Context, id string) (*entity.Job, error) {
	var job entity.Job
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *ScheduleRepository) CreateJob(ctx context.Context, job *entity.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *ScheduleRepository) UpdateJob(ctx context.Context, job *entity.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *ScheduleRepository) DeleteJob(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Job{}, "id = ?", id).Error
}

// ListJobsBetween returns jobs dated inside [from, to), earliest slot first.
func (r *ScheduleRepository) ListJobsBetween(ctx context.Context, from, to time.Time) ([]entity.Job, error) {
	var jobs []entity.Job
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC, time_slot ASC").
		Find(&jobs).Error
	return jobs, err
}

func (r *ScheduleRepository) FindTaskByID(ctx context.Context, id string) (*entity.ScheduleTask, error) {
	var task entity.ScheduleTask
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *ScheduleRepository) CreateTask(ctx context.Context, task *entity.ScheduleTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *ScheduleRepository) UpdateTask(ctx context.Context, task *entity.ScheduleTask) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *ScheduleRepository) DeleteTask(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.ScheduleTask{}, "id = ?", id).Error
}

// ListTasksOverlapping returns tasks whose span touches [from, to).
func (r *ScheduleRepository) ListTasksOverlapping(ctx context.Context, from, to time.Time) ([]entity.ScheduleTask, error) {
	var tasks []entity.ScheduleTask
	err := r.db.WithContext(ctx).
		Where("start_date < ?", to).
		Order("start_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	// the end date is derived from duration_days, so the tail cut happens here
	out := tasks[:0]
	for _, t := range tasks {
		if t.StartDate.AddDate(0, 0, t.DurationDays).After(from) {
			out = append(out, t)
		}
	}
	return out, nil
}
