package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/service"
)

// LeadHandler handles the leads CRM and the public quote-request intake.
type LeadHandler struct {
	svc *service.LeadService
}

func NewLeadHandler(svc *service.LeadService) *LeadHandler {
	return &LeadHandler{svc: svc}
}

func (h *LeadHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{
		"keyword": c.Query("keyword"),
		"status":  c.Query("status"),
		"type":    c.Query("type"),
		"source":  c.Query("source"),
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, result)
}

func (h *LeadHandler) Create(c *gin.Context) {
	var req service.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	lead, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Created(c, lead)
}

func (h *LeadHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Lead ID is required")
		return
	}

	lead, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		NotFound(c, "Lead not found")
		return
	}

	Success(c, lead)
}

func (h *LeadHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Lead ID is required")
		return
	}

	var req service.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	lead, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Lead not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, lead)
}

func (h *LeadHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Lead ID is required")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Lead not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, nil)
}

// Convert turns a lead into an installation project.
func (h *LeadHandler) Convert(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Lead ID is required")
		return
	}

	project, err := h.svc.Convert(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "Lead not found")
		case errors.Is(err, service.ErrLeadAlreadyConverted):
			Conflict(c, "Lead already converted")
		default:
			InternalError(c, err.Error())
		}
		return
	}

	Created(c, project)
}

// QuoteRequest is the unauthenticated website enquiry endpoint.
func (h *LeadHandler) QuoteRequest(c *gin.Context) {
	var req service.QuoteRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	lead, err := h.svc.CreateFromQuoteRequest(c.Request.Context(), &req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Created(c, lead)
}
