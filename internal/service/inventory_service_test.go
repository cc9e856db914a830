package service

import (
	"context"
	"testing"

	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupInventoryService(t *testing.T) (*InventoryService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewInventoryService(repos.Inventory), db
}

func TestUnitPrice(t *testing.T) {
	cases := []struct {
		price string
		want  float64
	}{
		{"₹14,500", 14500},
		{"₹1,83,641", 183641},
		{"14500", 14500},
		{"₹ 2,499.50", 2499.50},
		{"", 0},
		{"N/A", 0},
	}
	for _, tc := range cases {
		if got := UnitPrice(tc.price); got != tc.want {
			t.Errorf("UnitPrice(%q) = %v, want %v", tc.price, got, tc.want)
		}
	}
}

func TestNormalizePrice(t *testing.T) {
	assert.Equal(t, "₹14,500", normalizePrice("14,500"))
	assert.Equal(t, "₹14,500", normalizePrice("₹14,500"))
	assert.Equal(t, "₹14,500", normalizePrice("  14,500 "))
	assert.Equal(t, "", normalizePrice(""))
}

func TestInventoryCreateDefaults(t *testing.T) {
	svc, _ := setupInventoryService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, &CreateItemRequest{Name: "540W Mono Panel", Stock: 50, Price: "14,500"})
	require.NoError(t, err)

	assert.Equal(t, "Solar Panels", item.Category)
	assert.Equal(t, "Warehouse A", item.Location)
	assert.Equal(t, 10, item.MinLevel)
	assert.Equal(t, "₹14,500", item.Price)
	assert.Equal(t, entity.StockStatusInStock, item.Status)
}

func TestInventoryUpdateRederivesStatus(t *testing.T) {
	svc, db := setupInventoryService(t)
	ctx := context.Background()
	testutil.SeedInventoryItem(t, db, "item-001", "540W Mono Panel", 50, 10, "₹14,500")

	stock := 8
	item, err := svc.Update(ctx, "item-001", &UpdateItemRequest{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, entity.StockStatusLowStock, item.Status)
}

func TestInventoryRestock(t *testing.T) {
	svc, db := setupInventoryService(t)
	ctx := context.Background()
	testutil.SeedInventoryItem(t, db, "item-001", "540W Mono Panel", 5, 10, "₹14,500")

	item, err := svc.Restock(ctx, "item-001", "user-001", &RestockRequest{Quantity: 20, Note: "PO-1042"})
	require.NoError(t, err)

	assert.Equal(t, 25, item.Stock)
	assert.Equal(t, entity.StockStatusInStock, item.Status)

	result, err := svc.ListMovements(ctx, "item-001", 1, 10)
	require.NoError(t, err)
	movements := result["items"].([]entity.StockMovement)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementRestock, movements[0].MovementType)
	assert.Equal(t, 20, movements[0].Quantity)
	assert.Equal(t, "PO-1042", movements[0].Note)
}

func TestInventoryAlerts(t *testing.T) {
	svc, db := setupInventoryService(t)
	ctx := context.Background()
	testutil.SeedInventoryItem(t, db, "item-001", "540W Mono Panel", 50, 10, "₹14,500")
	testutil.SeedInventoryItem(t, db, "item-002", "Inverter 5kW", 3, 10, "₹45,000")

	alerts, err := svc.Alerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "item-002", alerts[0].ID)
}

func TestInventoryExportXLSX(t *testing.T) {
	svc, db := setupInventoryService(t)
	ctx := context.Background()
	testutil.SeedInventoryItem(t, db, "item-001", "540W Mono Panel", 50, 10, "₹14,500")

	buf, err := svc.ExportXLSX(ctx)
	require.NoError(t, err)
	assert.Greater(t, buf.Len(), 0)
}
