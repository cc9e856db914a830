package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"gorm.io/gorm"
)

// LeadRepository handles lead persistence.
type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	var lead entity.Lead
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&lead).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	return r.db.WithContext(ctx).Save(lead).Error
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Lead{}).
		Where("id = ?", id).
		Update("deleted_at", time.Now()).Error
}

func (r *LeadRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Lead, int64, error) {
	var leads []entity.Lead
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Lead{}).Where("deleted_at IS NULL")

	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("name LIKE ? OR phone LIKE ? OR city LIKE ?", like, like, like)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if leadType, ok := filters["type"].(string); ok && leadType != "" {
		query = query.Where("type = ?", leadType)
	}
	if source, ok := filters["source"].(string); ok && source != "" {
		query = query.Where("source = ?", source)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&leads).Error

	return leads, total, err
}

// CountByStatus counts non-deleted leads in the given status.
func (r *LeadRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Lead{}).
		Where("deleted_at IS NULL AND status = ?", status).
		Count(&count).Error
	return count, err
}

// CountCreatedBetween counts non-deleted leads created inside [from, to).
func (r *LeadRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Lead{}).
		Where("deleted_at IS NULL AND created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

// Recent returns the newest non-deleted leads.
func (r *LeadRepository) Recent(ctx context.Context, limit int) ([]entity.Lead, error) {
	var leads []entity.Lead
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("created_at DESC").
		Limit(limit).
		Find(&leads).Error
	return leads, err
}

// ConvertToProject creates the project and marks the lead won in one
// transaction. The status update is conditional on the lead not being won
// yet, so two sessions converting the same lead cannot both create a
// project; the loser rolls back and gets ErrAlreadyConverted.
func (r *LeadRepository) ConvertToProject(ctx context.Context, leadID string, project *entity.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Lead{}).
			Where("id = ? AND deleted_at IS NULL AND status <> ?", leadID, entity.LeadStatusWon).
			Updates(map[string]interface{}{
				"status":     entity.LeadStatusWon,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var lead entity.Lead
			if err := tx.Where("id = ? AND deleted_at IS NULL", leadID).First(&lead).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			return ErrAlreadyConverted
		}
		return tx.Create(project).Error
	})
}
