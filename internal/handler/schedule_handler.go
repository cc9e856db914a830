package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/service"
)

// ScheduleHandler handles the residential weekly board and the industrial
// Gantt board.
type ScheduleHandler struct {
	svc *service.ScheduleService
}

func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

// Week returns the weekly board containing the given date.
func (h *ScheduleHandler) Week(c *gin.Context) {
	week, err := h.svc.WeekBoard(c.Request.Context(), c.Query("date"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, week)
}

func (h *ScheduleHandler) CreateJob(c *gin.Context) {
	var req service.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	job, err := h.svc.CreateJob(c.Request.Context(), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Created(c, job)
}

func (h *ScheduleHandler) UpdateJob(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Job ID is required")
		return
	}

	var req service.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	job, err := h.svc.UpdateJob(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Job not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, job)
}

func (h *ScheduleHandler) DeleteJob(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Job ID is required")
		return
	}

	if err := h.svc.DeleteJob(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Job not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, nil)
}

// Gantt returns positioned task bars for the requested month.
func (h *ScheduleHandler) Gantt(c *gin.Context) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if y := c.Query("year"); y != "" {
		v, err := strconv.Atoi(y)
		if err != nil {
			BadRequest(c, "Invalid year")
			return
		}
		year = v
	}
	if m := c.Query("month"); m != "" {
		v, err := strconv.Atoi(m)
		if err != nil || v < 1 || v > 12 {
			BadRequest(c, "Invalid month")
			return
		}
		month = v
	}

	bars, err := h.svc.GanttBoard(c.Request.Context(), year, time.Month(month))
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, gin.H{"year": year, "month": month, "bars": bars})
}

func (h *ScheduleHandler) CreateTask(c *gin.Context) {
	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	task, err := h.svc.CreateTask(c.Request.Context(), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Created(c, task)
}

func (h *ScheduleHandler) UpdateTask(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Task ID is required")
		return
	}

	var req service.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	task, err := h.svc.UpdateTask(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Task not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, task)
}

func (h *ScheduleHandler) DeleteTask(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Task ID is required")
		return
	}

	if err := h.svc.DeleteTask(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Task not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, nil)
}
