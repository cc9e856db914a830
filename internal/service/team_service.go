package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
)

// ErrTeamNotAvailable is returned when assigning a team that is deployed
// or on leave.
var ErrTeamNotAvailable = errors.New("team not available")

// TeamService manages field crews and their project assignments.
type TeamService struct {
	repo        *repository.TeamRepository
	projectRepo *repository.ProjectRepository
}

func NewTeamService(repo *repository.TeamRepository, projectRepo *repository.ProjectRepository) *TeamService {
	return &TeamService{repo: repo, projectRepo: projectRepo}
}

// CreateTeamRequest is the team creation payload.
type CreateTeamRequest struct {
	Name      string `json:"name" binding:"required"`
	Leader    string `json:"leader"`
	Members   int    `json:"members"`
	Contact   string `json:"contact"`
	Location  string `json:"location"`
	Specialty string `json:"specialty"`
}

// UpdateTeamRequest carries optional team field updates.
type UpdateTeamRequest struct {
	Name      *string `json:"name"`
	Leader    *string `json:"leader"`
	Members   *int    `json:"members"`
	Contact   *string `json:"contact"`
	Location  *string `json:"location"`
	Specialty *string `json:"specialty"`
	Status    *string `json:"status"`
}

// AssignTeamRequest deploys a team to a project.
type AssignTeamRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
}

func (s *TeamService) Create(ctx context.Context, req *CreateTeamRequest) (*entity.Team, error) {
	team := &entity.Team{
		ID:        generateID(),
		Name:      req.Name,
		Leader:    req.Leader,
		Members:   req.Members,
		Contact:   req.Contact,
		Location:  req.Location,
		Specialty: req.Specialty,
		Status:    entity.TeamStatusAvailable,
	}
	if team.Location == "" {
		team.Location = entity.TeamHomeBase
	}

	if err := s.repo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	return team, nil
}

func (s *TeamService) Get(ctx context.Context, id string) (*entity.Team, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TeamService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (map[string]interface{}, error) {
	teams, total, err := s.repo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return map[string]interface{}{
		"items":     teams,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	}, nil
}

func (s *TeamService) Update(ctx context.Context, id string, req *UpdateTeamRequest) (*entity.Team, error) {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Leader != nil {
		team.Leader = *req.Leader
	}
	if req.Members != nil {
		team.Members = *req.Members
	}
	if req.Contact != nil {
		team.Contact = *req.Contact
	}
	if req.Location != nil {
		team.Location = *req.Location
	}
	if req.Specialty != nil {
		team.Specialty = *req.Specialty
	}
	if req.Status != nil {
		team.Status = *req.Status
	}

	if err := s.repo.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("update team: %w", err)
	}
	return team, nil
}

func (s *TeamService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Assign deploys an available team to a project site.
func (s *TeamService) Assign(ctx context.Context, id string, req *AssignTeamRequest) (*entity.Team, error) {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if team.Status != entity.TeamStatusAvailable {
		return nil, ErrTeamNotAvailable
	}
	project, err := s.projectRepo.FindByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	team.Status = entity.TeamStatusDeployed
	team.ProjectID = project.ID
	team.Location = fmt.Sprintf("Site: Project #%s", project.ID)

	if err := s.repo.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("assign team: %w", err)
	}
	return team, nil
}

// Release returns a deployed team to the home base.
func (s *TeamService) Release(ctx context.Context, id string) (*entity.Team, error) {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	team.Status = entity.TeamStatusAvailable
	team.ProjectID = ""
	team.Location = entity.TeamHomeBase

	if err := s.repo.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("release team: %w", err)
	}
	return team, nil
}

// Stats counts teams per status.
func (s *TeamService) Stats(ctx context.Context) (map[string]int64, error) {
	stats := make(map[string]int64, 3)
	for _, status := range []string{entity.TeamStatusDeployed, entity.TeamStatusAvailable, entity.TeamStatusOnLeave} {
		count, err := s.repo.CountByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("count teams: %w", err)
		}
		stats[status] = count
	}
	return stats, nil
}
