package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"gorm.io/gorm"
)

// ProjectRepository handles installation projects, their consumed materials
// and attached documents.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	var project entity.Project
	err := r.db.WithContext(ctx).
		Preload("Materials", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Documents", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Project{}).
		Where("id = ?", id).
		Update("deleted_at", time.Now()).Error
}

func (r *ProjectRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Project, int64, error) {
	var projects []entity.Project
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Project{}).Where("deleted_at IS NULL")

	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("client_name LIKE ? OR location LIKE ?", like, like)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if stage, ok := filters["stage"].(string); ok && stage != "" {
		query = query.Where("stage = ?", stage)
	}
	if projectType, ok := filters["type"].(string); ok && projectType != "" {
		query = query.Where("type = ?", projectType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&projects).Error

	return projects, total, err
}

func (r *ProjectRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Project{}).
		Where("deleted_at IS NULL AND status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *ProjectRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Project{}).
		Where("deleted_at IS NULL AND created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *ProjectRepository) Recent(ctx context.Context, limit int) ([]entity.Project, error) {
	var projects []entity.Project
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("created_at DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

// StageCount is one row of the stage distribution report.
type StageCount struct {
	Stage string `json:"stage"`
	Count int64  `json:"count"`
}

// CountByStage returns project counts per stage inside [from, to), largest first.
func (r *ProjectRepository) CountByStage(ctx context.Context, from, to time.Time, limit int) ([]StageCount, error) {
	var rows []StageCount
	err := r.db.WithContext(ctx).
		Model(&entity.Project{}).
		Select("stage, count(*) as count").
		Where("deleted_at IS NULL AND created_at >= ? AND created_at < ?", from, to).
		Group("stage").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// SumCapacityBetween totals installed capacity of projects created inside [from, to).
func (r *ProjectRepository) SumCapacityBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&entity.Project{}).
		Select("COALESCE(SUM(capacity), 0)").
		Where("deleted_at IS NULL AND created_at >= ? AND created_at < ?", from, to).
		Scan(&total).Error
	return total, err
}

// ListMaterials returns the materials consumed by a project, newest first.
func (r *ProjectRepository) ListMaterials(ctx context.Context, projectID string) ([]entity.ProjectMaterial, error) {
	var materials []entity.ProjectMaterial
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&materials).Error
	return materials, err
}

// CreateDocument inserts a document row.
func (r *ProjectRepository) CreateDocument(ctx context.Context, doc *entity.ProjectDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// FindDocumentByID loads one document row.
func (r *ProjectRepository) FindDocumentByID(ctx context.Context, id string) (*entity.ProjectDocument, error) {
	var doc entity.ProjectDocument
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// ListDocuments returns a project's documents, newest first.
func (r *ProjectRepository) ListDocuments(ctx context.Context, projectID string) ([]entity.ProjectDocument, error) {
	var docs []entity.ProjectDocument
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

// DeleteDocument removes a document row.
func (r *ProjectRepository) DeleteDocument(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.ProjectDocument{}, "id = ?", id).Error
}
