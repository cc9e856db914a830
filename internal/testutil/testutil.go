package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/middleware"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const JWTSecret = "tara-solar-erp-jwt-secret-2024"

// TestEnv holds test environment resources.
type TestEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
	T      *testing.T
}

// SetupTestDB opens an isolated in-memory sqlite database with the full
// schema migrated. Each test gets its own database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Lead{},
		&entity.Project{},
		&entity.ProjectMaterial{},
		&entity.ProjectDocument{},
		&entity.InventoryItem{},
		&entity.StockMovement{},
		&entity.Team{},
		&entity.Job{},
		&entity.ScheduleTask{},
		&entity.Quotation{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})

	return db
}

// SetupRouter creates a gin test router.
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group guarded by the JWT middleware.
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken signs a valid access token for tests.
func GenerateTestToken(userID, name, email, role string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"uid":   userID,
		"name":  name,
		"email": email,
		"role":  role,
		"iss":   "tara-solar-erp",
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
		"jti":   fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DefaultTestToken returns a token for a default admin test user.
func DefaultTestToken() string {
	return GenerateTestToken("test-user-001", "Test Admin", "admin@test.com", "Admin")
}

// DoRequest executes an HTTP request against the test router.
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response envelope.
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedLead inserts a lead.
func SeedLead(t *testing.T, db *gorm.DB, id, name, capacity, status string) *entity.Lead {
	t.Helper()
	lead := &entity.Lead{
		ID:        id,
		Name:      name,
		Phone:     "9876500000",
		City:      "Ahmedabad",
		Capacity:  capacity,
		Type:      entity.TypeResidential,
		Status:    status,
		Source:    entity.LeadSourceWebsite,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(lead).Error; err != nil {
		t.Fatalf("Failed to seed lead: %v", err)
	}
	return lead
}

// SeedProject inserts an in-progress project.
func SeedProject(t *testing.T, db *gorm.DB, id, clientName string) *entity.Project {
	t.Helper()
	project := &entity.Project{
		ID:         id,
		ClientName: clientName,
		Location:   "Ahmedabad",
		Capacity:   5,
		Type:       entity.TypeResidential,
		Status:     entity.ProjectStatusInProgress,
		Stage:      entity.StageSiteSurvey,
		Progress:   10,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("Failed to seed project: %v", err)
	}
	return project
}

// SeedInventoryItem inserts a stocked item.
func SeedInventoryItem(t *testing.T, db *gorm.DB, id, name string, stock, minLevel int, price string) *entity.InventoryItem {
	t.Helper()
	item := &entity.InventoryItem{
		ID:        id,
		Name:      name,
		Category:  "Solar Panels",
		Stock:     stock,
		MinLevel:  minLevel,
		Price:     price,
		Location:  "Warehouse A",
		Status:    entity.StockStatus(stock, minLevel),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("Failed to seed inventory item: %v", err)
	}
	return item
}

// SeedTeam inserts a field crew.
func SeedTeam(t *testing.T, db *gorm.DB, id, name, status string) *entity.Team {
	t.Helper()
	team := &entity.Team{
		ID:        id,
		Name:      name,
		Leader:    "R. Patel",
		Members:   4,
		Location:  entity.TeamHomeBase,
		Specialty: "Rooftop",
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(team).Error; err != nil {
		t.Fatalf("Failed to seed team: %v", err)
	}
	return team
}
