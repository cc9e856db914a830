package handler

import (
	"net/http"
	"testing"

	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/service"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/testutil"
)

func setupInventoryTest(t *testing.T) (*testutil.TestEnv, *InventoryHandler) {
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	svc := service.NewInventoryService(repos.Inventory)
	h := NewInventoryHandler(svc)

	api := testutil.AuthGroup(router, "/api/v1")
	inventory := api.Group("/inventory")
	{
		inventory.GET("", h.List)
		inventory.POST("", h.Create)
		inventory.GET("/alerts", h.Alerts)
		inventory.GET("/movements", h.Movements)
		inventory.GET("/export", h.Export)
		inventory.GET("/:id", h.Get)
		inventory.PUT("/:id", h.Update)
		inventory.DELETE("/:id", h.Delete)
		inventory.POST("/:id/restock", h.Restock)
	}

	return &testutil.TestEnv{DB: db, Router: router, T: t}, h
}

func TestInventoryHandlerCreate(t *testing.T) {
	env, _ := setupInventoryTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/inventory", map[string]interface{}{
		"name":  "540W Mono Panel",
		"stock": 50,
		"price": "14,500",
	}, token)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["price"] != "₹14,500" {
		t.Errorf("Expected normalized price, got %v", data["price"])
	}
	if data["category"] != "Solar Panels" {
		t.Errorf("Expected default category, got %v", data["category"])
	}
	if data["status"] != entity.StockStatusInStock {
		t.Errorf("Expected In Stock, got %v", data["status"])
	}
}

func TestInventoryHandlerRestock(t *testing.T) {
	env, _ := setupInventoryTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedInventoryItem(t, env.DB, "item-001", "Inverter 5kW", 5, 10, "₹45,000")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/inventory/item-001/restock", map[string]interface{}{
		"quantity": 20,
		"note":     "PO-1042",
	}, token)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["stock"].(float64) != 25 {
		t.Errorf("Expected stock 25, got %v", data["stock"])
	}
	if data["status"] != entity.StockStatusInStock {
		t.Errorf("Expected In Stock after restock, got %v", data["status"])
	}
}

func TestInventoryHandlerRestockRejectsZero(t *testing.T) {
	env, _ := setupInventoryTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedInventoryItem(t, env.DB, "item-001", "Inverter 5kW", 5, 10, "₹45,000")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/inventory/item-001/restock", map[string]interface{}{
		"quantity": 0,
	}, token)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestInventoryHandlerAlerts(t *testing.T) {
	env, _ := setupInventoryTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedInventoryItem(t, env.DB, "item-001", "540W Mono Panel", 50, 10, "₹14,500")
	testutil.SeedInventoryItem(t, env.DB, "item-002", "Inverter 5kW", 3, 10, "₹45,000")

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/inventory/alerts", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("Expected 1 alert, got %d", len(data))
	}
	item := data[0].(map[string]interface{})
	if item["id"] != "item-002" {
		t.Errorf("Expected item-002 in alerts, got %v", item["id"])
	}
}

func TestInventoryHandlerExport(t *testing.T) {
	env, _ := setupInventoryTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedInventoryItem(t, env.DB, "item-001", "540W Mono Panel", 50, 10, "₹14,500")

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/inventory/export", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.Len() == 0 {
		t.Error("Expected a non-empty workbook")
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("Expected a Content-Disposition header")
	}
}

func TestInventoryHandlerNotFound(t *testing.T) {
	env, _ := setupInventoryTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/inventory/missing", nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
