package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/service"
)

// InventoryHandler handles stocked items, restocks and the movement ledger.
type InventoryHandler struct {
	svc *service.InventoryService
}

func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{
		"keyword":   c.Query("keyword"),
		"category":  c.Query("category"),
		"status":    c.Query("status"),
		"low_stock": c.Query("low_stock") == "true",
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, result)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req service.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Created(c, item)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Item ID is required")
		return
	}

	item, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		NotFound(c, "Item not found")
		return
	}

	Success(c, item)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Item ID is required")
		return
	}

	var req service.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Item not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, item)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Item ID is required")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Item not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, nil)
}

// Restock adds stock to an item.
func (h *InventoryHandler) Restock(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Item ID is required")
		return
	}

	var req service.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.svc.Restock(c.Request.Context(), id, GetUserID(c), &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Item not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, item)
}

// Alerts lists items below their minimum level.
func (h *InventoryHandler) Alerts(c *gin.Context) {
	items, err := h.svc.Alerts(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, items)
}

// Movements lists the stock ledger.
func (h *InventoryHandler) Movements(c *gin.Context) {
	page, pageSize := GetPagination(c)

	result, err := h.svc.ListMovements(c.Request.Context(), c.Query("item_id"), page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, result)
}

// Export streams the inventory as an xlsx workbook.
func (h *InventoryHandler) Export(c *gin.Context) {
	buf, err := h.svc.ExportXLSX(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	filename := fmt.Sprintf("inventory_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
