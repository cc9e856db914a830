package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
)

// ProjectService manages installation projects and their material usage.
type ProjectService struct {
	repo          *repository.ProjectRepository
	inventoryRepo *repository.InventoryRepository
}

func NewProjectService(repo *repository.ProjectRepository, inventoryRepo *repository.InventoryRepository) *ProjectService {
	return &ProjectService{repo: repo, inventoryRepo: inventoryRepo}
}

// CreateProjectRequest is the project creation payload.
type CreateProjectRequest struct {
	ClientName string  `json:"client_name" binding:"required"`
	Location   string  `json:"location"`
	Capacity   float64 `json:"capacity"`
	Type       string  `json:"type"`
}

// UpdateProjectRequest carries optional project field updates. Progress is
// never accepted from the client; it follows stage and status.
type UpdateProjectRequest struct {
	ClientName *string  `json:"client_name"`
	Location   *string  `json:"location"`
	Capacity   *float64 `json:"capacity"`
	Type       *string  `json:"type"`
	Status     *string  `json:"status"`
	Stage      *string  `json:"stage"`
}

// AllocateMaterialRequest reserves stock for a project.
type AllocateMaterialRequest struct {
	ItemID   string `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

func (s *ProjectService) Create(ctx context.Context, req *CreateProjectRequest) (*entity.Project, error) {
	project := &entity.Project{
		ID:         generateID(),
		ClientName: req.ClientName,
		Location:   req.Location,
		Capacity:   req.Capacity,
		Type:       req.Type,
		Status:     entity.ProjectStatusInProgress,
		Stage:      entity.StageSiteSurvey,
	}
	if project.Type == "" {
		project.Type = entity.TypeResidential
	}
	project.Progress = entity.StageProgress(project.Stage, project.Status)

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*entity.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (map[string]interface{}, error) {
	projects, total, err := s.repo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return map[string]interface{}{
		"items":     projects,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	}, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, req *UpdateProjectRequest) (*entity.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ClientName != nil {
		project.ClientName = *req.ClientName
	}
	if req.Location != nil {
		project.Location = *req.Location
	}
	if req.Capacity != nil {
		project.Capacity = *req.Capacity
	}
	if req.Type != nil {
		project.Type = *req.Type
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.Stage != nil {
		project.Stage = *req.Stage
	}

	// completed projects always read as fully done
	if project.Status == entity.ProjectStatusCompleted {
		project.Stage = entity.StageCompleted
	}
	project.Progress = entity.StageProgress(project.Stage, project.Status)

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AllocateMaterial deducts stock and records the usage in one transaction.
// The recorded cost freezes the item's unit price at allocation time.
func (s *ProjectService) AllocateMaterial(ctx context.Context, projectID, userID string, req *AllocateMaterialRequest) (*entity.ProjectMaterial, error) {
	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	item, err := s.inventoryRepo.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	material := &entity.ProjectMaterial{
		ID:        generateID(),
		ProjectID: project.ID,
		ItemID:    item.ID,
		ItemName:  item.Name,
		Quantity:  req.Quantity,
		Cost:      UnitPrice(item.Price) * float64(req.Quantity),
		DateUsed:  time.Now(),
	}
	movement := &entity.StockMovement{
		ID:           generateID(),
		ItemID:       item.ID,
		MovementType: entity.MovementAllocation,
		Quantity:     -req.Quantity,
		Reference:    project.ID,
		Note:         fmt.Sprintf("Allocated to %s", project.ClientName),
		CreatedBy:    userID,
	}

	if _, err := s.inventoryRepo.Allocate(ctx, item.ID, req.Quantity, material, movement); err != nil {
		return nil, err
	}
	return material, nil
}

// ListMaterials returns the materials consumed by a project.
func (s *ProjectService) ListMaterials(ctx context.Context, projectID string) ([]entity.ProjectMaterial, error) {
	if _, err := s.repo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListMaterials(ctx, projectID)
}
