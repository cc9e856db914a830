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

func setupProjectService(t *testing.T) (*ProjectService, *repository.Repositories, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewProjectService(repos.Project, repos.Inventory), repos, db
}

func TestProjectUpdateDerivesProgress(t *testing.T) {
	svc, _, db := setupProjectService(t)
	ctx := context.Background()
	testutil.SeedProject(t, db, "proj-001", "Mehta Residence")

	stage := entity.StageInstallation
	project, err := svc.Update(ctx, "proj-001", &UpdateProjectRequest{Stage: &stage})
	require.NoError(t, err)
	assert.Equal(t, 80, project.Progress)
}

func TestProjectCompletedForcesFullProgress(t *testing.T) {
	svc, _, db := setupProjectService(t)
	ctx := context.Background()
	testutil.SeedProject(t, db, "proj-001", "Mehta Residence")

	status := entity.ProjectStatusCompleted
	stage := entity.StageDesign
	project, err := svc.Update(ctx, "proj-001", &UpdateProjectRequest{Status: &status, Stage: &stage})
	require.NoError(t, err)

	assert.Equal(t, entity.StageCompleted, project.Stage)
	assert.Equal(t, 100, project.Progress)
}

func TestAllocateMaterialDeductsStockAndFreezesCost(t *testing.T) {
	svc, repos, db := setupProjectService(t)
	ctx := context.Background()
	testutil.SeedProject(t, db, "proj-001", "Mehta Residence")
	testutil.SeedInventoryItem(t, db, "item-001", "540W Mono Panel", 50, 10, "₹14,500")

	material, err := svc.AllocateMaterial(ctx, "proj-001", "user-001", &AllocateMaterialRequest{
		ItemID:   "item-001",
		Quantity: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 145000.0, material.Cost)

	item, err := repos.Inventory.FindByID(ctx, "item-001")
	require.NoError(t, err)
	assert.Equal(t, 40, item.Stock)

	// later price changes must not touch the recorded cost
	newPrice := "₹20,000"
	item.Price = newPrice
	require.NoError(t, repos.Inventory.Update(ctx, item))

	materials, err := svc.ListMaterials(ctx, "proj-001")
	require.NoError(t, err)
	require.Len(t, materials, 1)
	assert.Equal(t, 145000.0, materials[0].Cost)

	movements, _, err := repos.Inventory.ListMovements(ctx, "item-001", 1, 10)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementAllocation, movements[0].MovementType)
	assert.Equal(t, -10, movements[0].Quantity)
	assert.Equal(t, "proj-001", movements[0].Reference)
}

func TestAllocateMaterialInsufficientStock(t *testing.T) {
	svc, repos, db := setupProjectService(t)
	ctx := context.Background()
	testutil.SeedProject(t, db, "proj-001", "Mehta Residence")
	testutil.SeedInventoryItem(t, db, "item-001", "540W Mono Panel", 5, 10, "₹14,500")

	_, err := svc.AllocateMaterial(ctx, "proj-001", "user-001", &AllocateMaterialRequest{
		ItemID:   "item-001",
		Quantity: 6,
	})
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)

	// a failed allocation leaves no trace
	item, err := repos.Inventory.FindByID(ctx, "item-001")
	require.NoError(t, err)
	assert.Equal(t, 5, item.Stock)

	materials, err := svc.ListMaterials(ctx, "proj-001")
	require.NoError(t, err)
	assert.Empty(t, materials)
}

func TestAllocateMaterialLastUnitOnlyOnce(t *testing.T) {
	svc, _, db := setupProjectService(t)
	ctx := context.Background()
	testutil.SeedProject(t, db, "proj-001", "Mehta Residence")
	testutil.SeedProject(t, db, "proj-002", "Joshi Factory")
	testutil.SeedInventoryItem(t, db, "item-001", "Inverter 5kW", 1, 0, "₹45,000")

	_, firstErr := svc.AllocateMaterial(ctx, "proj-001", "user-001", &AllocateMaterialRequest{
		ItemID:   "item-001",
		Quantity: 1,
	})
	_, secondErr := svc.AllocateMaterial(ctx, "proj-002", "user-001", &AllocateMaterialRequest{
		ItemID:   "item-001",
		Quantity: 1,
	})

	require.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, repository.ErrInsufficientStock)
}

func TestAllocateMaterialUpdatesStockStatus(t *testing.T) {
	svc, repos, db := setupProjectService(t)
	ctx := context.Background()
	testutil.SeedProject(t, db, "proj-001", "Mehta Residence")
	testutil.SeedInventoryItem(t, db, "item-001", "540W Mono Panel", 12, 10, "₹14,500")

	_, err := svc.AllocateMaterial(ctx, "proj-001", "user-001", &AllocateMaterialRequest{
		ItemID:   "item-001",
		Quantity: 4,
	})
	require.NoError(t, err)

	item, err := repos.Inventory.FindByID(ctx, "item-001")
	require.NoError(t, err)
	assert.Equal(t, entity.StockStatusLowStock, item.Status)
}
