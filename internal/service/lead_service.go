package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
)

// ErrLeadAlreadyConverted is returned when converting a lead that is
// already marked won.
var ErrLeadAlreadyConverted = errors.New("lead already converted")

// LeadService manages sales leads and their conversion into projects.
type LeadService struct {
	repo *repository.LeadRepository
}

func NewLeadService(repo *repository.LeadRepository) *LeadService {
	return &LeadService{repo: repo}
}

// CreateLeadRequest is the lead creation payload.
type CreateLeadRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	Capacity string `json:"capacity"`
	Type     string `json:"type"`
	Source   string `json:"source"`
	Notes    string `json:"notes"`
}

// UpdateLeadRequest carries optional lead field updates.
type UpdateLeadRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	City     *string `json:"city"`
	Capacity *string `json:"capacity"`
	Type     *string `json:"type"`
	Status   *string `json:"status"`
	Source   *string `json:"source"`
	Notes    *string `json:"notes"`
}

// QuoteRequestInput is the public website enquiry payload.
type QuoteRequestInput struct {
	Name            string `json:"name" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	City            string `json:"city"`
	BillAmount      string `json:"bill_amount"`
	RoofArea        string `json:"roof_area"`
	PanelPreference string `json:"panel_preference"`
}

func (s *LeadService) Create(ctx context.Context, req *CreateLeadRequest) (*entity.Lead, error) {
	lead := &entity.Lead{
		ID:       generateID(),
		Name:     req.Name,
		Phone:    req.Phone,
		City:     req.City,
		Capacity: req.Capacity,
		Type:     req.Type,
		Status:   entity.LeadStatusNew,
		Source:   req.Source,
		Notes:    req.Notes,
	}
	if lead.Type == "" {
		lead.Type = entity.TypeResidential
	}
	if lead.Source == "" {
		lead.Source = entity.LeadSourceWebsite
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

// CreateFromQuoteRequest turns a public website enquiry into a new lead.
func (s *LeadService) CreateFromQuoteRequest(ctx context.Context, req *QuoteRequestInput) (*entity.Lead, error) {
	notes := fmt.Sprintf("Monthly bill: %s; Roof area: %s; Panel preference: %s",
		req.BillAmount, req.RoofArea, req.PanelPreference)

	lead := &entity.Lead{
		ID:     generateID(),
		Name:   req.Name,
		Phone:  req.Phone,
		City:   req.City,
		Type:   entity.TypeResidential,
		Status: entity.LeadStatusNew,
		Source: entity.LeadSourceQuoteRequest,
		Notes:  notes,
	}
	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

func (s *LeadService) Get(ctx context.Context, id string) (*entity.Lead, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *LeadService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (map[string]interface{}, error) {
	leads, total, err := s.repo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return map[string]interface{}{
		"items":     leads,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	}, nil
}

func (s *LeadService) Update(ctx context.Context, id string, req *UpdateLeadRequest) (*entity.Lead, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		lead.Name = *req.Name
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
	}
	if req.City != nil {
		lead.City = *req.City
	}
	if req.Capacity != nil {
		lead.Capacity = *req.Capacity
	}
	if req.Type != nil {
		lead.Type = *req.Type
	}
	if req.Status != nil {
		lead.Status = *req.Status
	}
	if req.Source != nil {
		lead.Source = *req.Source
	}
	if req.Notes != nil {
		lead.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, lead); err != nil {
		return nil, fmt.Errorf("update lead: %w", err)
	}
	return lead, nil
}

func (s *LeadService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Convert creates an installation project from a lead and marks the lead
// won, atomically. A lead can only be converted once. An unparseable
// capacity string converts as zero.
func (s *LeadService) Convert(ctx context.Context, id string) (*entity.Project, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead.Status == entity.LeadStatusWon {
		return nil, ErrLeadAlreadyConverted
	}

	capacity, err := strconv.ParseFloat(lead.Capacity, 64)
	if err != nil {
		capacity = 0
	}

	project := &entity.Project{
		ID:         generateID(),
		ClientName: lead.Name,
		Location:   lead.City,
		Capacity:   capacity,
		Type:       lead.Type,
		Status:     entity.ProjectStatusInProgress,
		Stage:      entity.StageSiteSurvey,
		Progress:   entity.StageProgress(entity.StageSiteSurvey, entity.ProjectStatusInProgress),
		LeadID:     lead.ID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.repo.ConvertToProject(ctx, lead.ID, project); err != nil {
		// another session won the conditional status update first
		if errors.Is(err, repository.ErrAlreadyConverted) {
			return nil, ErrLeadAlreadyConverted
		}
		return nil, fmt.Errorf("convert lead: %w", err)
	}
	return project, nil
}
