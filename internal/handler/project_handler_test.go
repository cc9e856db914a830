package handler

import (
	"net/http"
	"testing"

	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/service"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/testutil"
)

func setupProjectTest(t *testing.T) (*testutil.TestEnv, *ProjectHandler) {
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	svc := service.NewProjectService(repos.Project, repos.Inventory)
	h := NewProjectHandler(svc)

	api := testutil.AuthGroup(router, "/api/v1")
	projects := api.Group("/projects")
	{
		projects.GET("", h.List)
		projects.POST("", h.Create)
		projects.GET("/:id", h.Get)
		projects.PUT("/:id", h.Update)
		projects.DELETE("/:id", h.Delete)
		projects.GET("/:id/materials", h.ListMaterials)
		projects.POST("/:id/materials", h.AllocateMaterial)
	}

	return &testutil.TestEnv{DB: db, Router: router, T: t}, h
}

func TestProjectHandlerCreate(t *testing.T) {
	env, _ := setupProjectTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/projects", map[string]interface{}{
		"client_name": "Mehta Residence",
		"location":    "Ahmedabad",
		"capacity":    5,
	}, token)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["stage"] != entity.StageSiteSurvey {
		t.Errorf("Expected stage Site Survey, got %v", data["stage"])
	}
	if data["progress"].(float64) != 10 {
		t.Errorf("Expected progress 10, got %v", data["progress"])
	}
}

func TestProjectHandlerUpdateIgnoresClientProgress(t *testing.T) {
	env, _ := setupProjectTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedProject(t, env.DB, "proj-001", "Mehta Residence")

	// progress in the body is not a recognised field; stage drives it
	w := testutil.DoRequest(env.Router, "PUT", "/api/v1/projects/proj-001", map[string]interface{}{
		"stage":    entity.StageDesign,
		"progress": 95,
	}, token)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["progress"].(float64) != 30 {
		t.Errorf("Expected progress 30, got %v", data["progress"])
	}
}

func TestProjectHandlerAllocateMaterial(t *testing.T) {
	env, _ := setupProjectTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedProject(t, env.DB, "proj-001", "Mehta Residence")
	testutil.SeedInventoryItem(t, env.DB, "item-001", "540W Mono Panel", 50, 10, "₹14,500")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/projects/proj-001/materials", map[string]interface{}{
		"item_id":  "item-001",
		"quantity": 10,
	}, token)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["cost"].(float64) != 145000 {
		t.Errorf("Expected cost 145000, got %v", data["cost"])
	}
	if data["item_name"] != "540W Mono Panel" {
		t.Errorf("Expected item name on the usage row, got %v", data["item_name"])
	}
}

func TestProjectHandlerAllocateInsufficientStock(t *testing.T) {
	env, _ := setupProjectTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedProject(t, env.DB, "proj-001", "Mehta Residence")
	testutil.SeedInventoryItem(t, env.DB, "item-001", "Inverter 5kW", 2, 10, "₹45,000")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/projects/proj-001/materials", map[string]interface{}{
		"item_id":  "item-001",
		"quantity": 3,
	}, token)

	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestProjectHandlerListMaterialsUnknownProject(t *testing.T) {
	env, _ := setupProjectTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/projects/missing/materials", nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
