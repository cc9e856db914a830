package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
	"github.com/xuri/excelize/v2"
)

// InventoryService manages stocked items and the movement ledger.
type InventoryService struct {
	repo *repository.InventoryRepository
}

func NewInventoryService(repo *repository.InventoryRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

// CreateItemRequest is the item creation payload.
type CreateItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Stock    int    `json:"stock" binding:"gte=0"`
	MinLevel int    `json:"min_level"`
	Price    string `json:"price"`
	Location string `json:"location"`
}

// UpdateItemRequest carries optional item field updates. Status is derived,
// never accepted from the client.
type UpdateItemRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Stock    *int    `json:"stock"`
	MinLevel *int    `json:"min_level"`
	Price    *string `json:"price"`
	Location *string `json:"location"`
}

// RestockRequest adds stock to an item.
type RestockRequest struct {
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Note     string `json:"note"`
}

// UnitPrice parses a display price like "₹14,500" by stripping every rune
// that is not a digit or a dot.
func UnitPrice(price string) float64 {
	var b strings.Builder
	for _, r := range price {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// normalizePrice ensures the stored display string carries the rupee prefix.
func normalizePrice(price string) string {
	price = strings.TrimSpace(price)
	if price == "" || strings.HasPrefix(price, "₹") {
		return price
	}
	return "₹" + price
}

func (s *InventoryService) Create(ctx context.Context, req *CreateItemRequest) (*entity.InventoryItem, error) {
	item := &entity.InventoryItem{
		ID:       generateID(),
		Name:     req.Name,
		Category: req.Category,
		Stock:    req.Stock,
		MinLevel: req.MinLevel,
		Price:    normalizePrice(req.Price),
		Location: req.Location,
	}
	if item.Category == "" {
		item.Category = "Solar Panels"
	}
	if item.Location == "" {
		item.Location = "Warehouse A"
	}
	if item.MinLevel == 0 {
		item.MinLevel = 10
	}
	item.Status = entity.StockStatus(item.Stock, item.MinLevel)

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create inventory item: %w", err)
	}
	return item, nil
}

func (s *InventoryService) Get(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *InventoryService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (map[string]interface{}, error) {
	items, total, err := s.repo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return map[string]interface{}{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	}, nil
}

func (s *InventoryService) Update(ctx context.Context, id string, req *UpdateItemRequest) (*entity.InventoryItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Stock != nil {
		item.Stock = *req.Stock
	}
	if req.MinLevel != nil {
		item.MinLevel = *req.MinLevel
	}
	if req.Price != nil {
		item.Price = normalizePrice(*req.Price)
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	item.Status = entity.StockStatus(item.Stock, item.MinLevel)

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update inventory item: %w", err)
	}
	return item, nil
}

func (s *InventoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Restock adds quantity and re-derives the display status.
func (s *InventoryService) Restock(ctx context.Context, id, userID string, req *RestockRequest) (*entity.InventoryItem, error) {
	movement := &entity.StockMovement{
		ID:           generateID(),
		ItemID:       id,
		MovementType: entity.MovementRestock,
		Quantity:     req.Quantity,
		Note:         req.Note,
		CreatedBy:    userID,
	}
	item, err := s.repo.Restock(ctx, id, req.Quantity, movement)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Alerts returns items that have fallen below their minimum level.
func (s *InventoryService) Alerts(ctx context.Context) ([]entity.InventoryItem, error) {
	return s.repo.ListAlerts(ctx)
}

// ListMovements returns ledger rows, newest first.
func (s *InventoryService) ListMovements(ctx context.Context, itemID string, page, pageSize int) (map[string]interface{}, error) {
	movements, total, err := s.repo.ListMovements(ctx, itemID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return map[string]interface{}{
		"items":     movements,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	}, nil
}

// ExportXLSX writes the current inventory into an xlsx workbook.
func (s *InventoryService) ExportXLSX(ctx context.Context) (*bytes.Buffer, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Inventory"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Name", "Category", "Stock", "Min Level", "Price", "Location", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, item := range items {
		values := []interface{}{item.Name, item.Category, item.Stock, item.MinLevel, item.Price, item.Location, item.Status}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
