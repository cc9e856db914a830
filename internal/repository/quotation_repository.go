package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"gorm.io/gorm"
)

// QuotationRepository handles quote document persistence.
type QuotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) *QuotationRepository {
	return &QuotationRepository{db: db}
}

func (r *QuotationRepository) FindByID(ctx context.Context, id string) (*entity.Quotation, error) {
	var quote entity.Quotation
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&quote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &quote, nil
}

func (r *QuotationRepository) Create(ctx context.Context, quote *entity.Quotation) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *QuotationRepository) Update(ctx context.Context, quote *entity.Quotation) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

func (r *QuotationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Quotation{}).
		Where("id = ?", id).
		Update("deleted_at", time.Now()).Error
}

func (r *QuotationRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Quotation, int64, error) {
	var quotes []entity.Quotation
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Quotation{}).Where("deleted_at IS NULL")

	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		query = query.Where("client_name LIKE ?", "%"+keyword+"%")
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if quoteType, ok := filters["type"].(string); ok && quoteType != "" {
		query = query.Where("type = ?", quoteType)
	}
	if from, ok := filters["from"].(time.Time); ok && !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}
	if to, ok := filters["to"].(time.Time); ok && !to.IsZero() {
		query = query.Where("created_at <= ?", to)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&quotes).Error

	return quotes, total, err
}

// ListByStatusBetween returns quotes in the given status created inside [from, to).
func (r *QuotationRepository) ListByStatusBetween(ctx context.Context, status string, from, to time.Time) ([]entity.Quotation, error) {
	var quotes []entity.Quotation
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL AND status = ? AND created_at >= ? AND created_at < ?", status, from, to).
		Find(&quotes).Error
	return quotes, err
}
