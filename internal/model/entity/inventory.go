package entity

import "time"

// InventoryItem is a stocked material (panel, inverter, battery, structure).
// Price is the display string shown across the portal, e.g. "₹14,500".
type InventoryItem struct {
	ID        string     `json:"id" gorm:"primaryKey;size:32"`
	Name      string     `json:"name" gorm:"size:128;not null"`
	Category  string     `json:"category" gorm:"size:64;not null;default:Solar Panels"`
	Stock     int        `json:"stock" gorm:"not null;default:0"`
	MinLevel  int        `json:"min_level" gorm:"not null;default:10"`
	Price     string     `json:"price" gorm:"size:32"`
	Location  string     `json:"location" gorm:"size:64;not null;default:Warehouse A"`
	Status    string     `json:"status" gorm:"size:16;not null;default:In Stock"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

// Stock status
const (
	StockStatusInStock  = "In Stock"
	StockStatusLowStock = "Low Stock"
)

// StockStatus derives the display status from the current level.
func StockStatus(stock, minLevel int) string {
	if stock > minLevel {
		return StockStatusInStock
	}
	return StockStatusLowStock
}

// StockMovement is an append-only ledger row. Quantity is signed: positive
// for restocks, negative for allocations.
type StockMovement struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	ItemID       string    `json:"item_id" gorm:"size:32;not null;index"`
	ItemName     string    `json:"item_name" gorm:"size:128"`
	MovementType string    `json:"movement_type" gorm:"size:16;not null"`
	Quantity     int       `json:"quantity" gorm:"not null"`
	Reference    string    `json:"reference" gorm:"size:64"`
	Note         string    `json:"note" gorm:"size:256"`
	CreatedBy    string    `json:"created_by" gorm:"size:32"`
	CreatedAt    time.Time `json:"created_at"`
}

func (StockMovement) TableName() string {
	return "stock_movements"
}

// Movement type
const (
	MovementRestock    = "restock"
	MovementAllocation = "allocation"
	MovementAdjustment = "adjustment"
)
