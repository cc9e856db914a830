package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/service"
)

// TeamHandler handles field crews and their deployments.
type TeamHandler struct {
	svc *service.TeamService
}

func NewTeamHandler(svc *service.TeamService) *TeamHandler {
	return &TeamHandler{svc: svc}
}

func (h *TeamHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{
		"keyword":   c.Query("keyword"),
		"status":    c.Query("status"),
		"specialty": c.Query("specialty"),
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, result)
}

func (h *TeamHandler) Create(c *gin.Context) {
	var req service.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	team, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Created(c, team)
}

func (h *TeamHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Team ID is required")
		return
	}

	team, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		NotFound(c, "Team not found")
		return
	}

	Success(c, team)
}

func (h *TeamHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Team ID is required")
		return
	}

	var req service.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	team, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Team not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, team)
}

func (h *TeamHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Team ID is required")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Team not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, nil)
}

// Assign deploys a team to a project site.
func (h *TeamHandler) Assign(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Team ID is required")
		return
	}

	var req service.AssignTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	team, err := h.svc.Assign(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "Team or project not found")
		case errors.Is(err, service.ErrTeamNotAvailable):
			Conflict(c, "Team is not available")
		default:
			InternalError(c, err.Error())
		}
		return
	}

	Success(c, team)
}

// Release returns a team to the home base.
func (h *TeamHandler) Release(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Team ID is required")
		return
	}

	team, err := h.svc.Release(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Team not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, team)
}

// Stats returns team counts per status.
func (h *TeamHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, stats)
}
