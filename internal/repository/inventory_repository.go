package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"gorm.io/gorm"
)

// InventoryRepository handles stocked items and the movement ledger.
type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) FindByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *InventoryRepository) Update(ctx context.Context, item *entity.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *InventoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entity.InventoryItem{}).
		Where("id = ?", id).
		Update("deleted_at", time.Now()).Error
}

func (r *InventoryRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.InventoryItem, int64, error) {
	var items []entity.InventoryItem
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.InventoryItem{}).Where("deleted_at IS NULL")

	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("name LIKE ? OR category LIKE ?", like, like)
	}
	if category, ok := filters["category"].(string); ok && category != "" {
		query = query.Where("category = ?", category)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if lowStock, ok := filters["low_stock"].(bool); ok && lowStock {
		query = query.Where("stock < min_level")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// ListAll returns every non-deleted item, for exports.
func (r *InventoryRepository) ListAll(ctx context.Context) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("name ASC").
		Find(&items).Error
	return items, err
}

// ListAlerts returns items whose stock has fallen below the minimum level.
func (r *InventoryRepository) ListAlerts(ctx context.Context) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL AND stock < min_level").
		Order("stock ASC").
		Find(&items).Error
	return items, err
}

// CountLowStock counts items whose stock has fallen below the minimum level.
func (r *InventoryRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.InventoryItem{}).
		Where("deleted_at IS NULL AND stock < min_level").
		Count(&count).Error
	return count, err
}

// Restock adds quantity to an item and appends a ledger row in one transaction.
func (r *InventoryRepository) Restock(ctx context.Context, id string, quantity int, movement *entity.StockMovement) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND deleted_at IS NULL", id).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		item.Stock += quantity
		item.Status = entity.StockStatus(item.Stock, item.MinLevel)
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		movement.ItemName = item.Name
		return tx.Create(movement).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Allocate deducts stock for a project inside one transaction. The decrement
// is conditional on the row still holding enough stock, so two concurrent
// allocations of the last unit cannot both succeed.
func (r *InventoryRepository) Allocate(ctx context.Context, itemID string, quantity int, material *entity.ProjectMaterial, movement *entity.StockMovement) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.InventoryItem{}).
			Where("id = ? AND deleted_at IS NULL AND stock >= ?", itemID, quantity).
			Updates(map[string]interface{}{
				"stock":      gorm.Expr("stock - ?", quantity),
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Where("id = ? AND deleted_at IS NULL", itemID).First(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			return ErrInsufficientStock
		}

		if err := tx.Where("id = ?", itemID).First(&item).Error; err != nil {
			return err
		}
		item.Status = entity.StockStatus(item.Stock, item.MinLevel)
		if err := tx.Model(&entity.InventoryItem{}).
			Where("id = ?", itemID).
			Update("status", item.Status).Error; err != nil {
			return err
		}

		if err := tx.Create(material).Error; err != nil {
			return err
		}
		movement.ItemName = item.Name
		return tx.Create(movement).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListMovements returns ledger rows, newest first, optionally for one item.
func (r *InventoryRepository) ListMovements(ctx context.Context, itemID string, page, pageSize int) ([]entity.StockMovement, int64, error) {
	var movements []entity.StockMovement
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockMovement{})
	if itemID != "" {
		query = query.Where("item_id = ?", itemID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&movements).Error

	return movements, total, err
}
