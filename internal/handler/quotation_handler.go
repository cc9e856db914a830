package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/service"
)

// QuotationHandler handles quote generation and lifecycle.
type QuotationHandler struct {
	svc *service.QuotationService
}

func NewQuotationHandler(svc *service.QuotationService) *QuotationHandler {
	return &QuotationHandler{svc: svc}
}

func (h *QuotationHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{
		"keyword": c.Query("keyword"),
		"status":  c.Query("status"),
		"type":    c.Query("type"),
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, filters,
		c.Query("range"), c.Query("from"), c.Query("to"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, result)
}

func (h *QuotationHandler) Create(c *gin.Context) {
	var req service.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	quote, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Created(c, quote)
}

func (h *QuotationHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Quotation ID is required")
		return
	}

	quote, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		NotFound(c, "Quotation not found")
		return
	}

	Success(c, quote)
}

// Render re-renders the document from the stored snapshot.
func (h *QuotationHandler) Render(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Quotation ID is required")
		return
	}

	doc, err := h.svc.Render(c.Request.Context(), id)
	if err != nil {
		NotFound(c, "Quotation not found")
		return
	}

	Success(c, doc)
}

// PDF streams the quote as a PDF document.
func (h *QuotationHandler) PDF(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Quotation ID is required")
		return
	}

	buf, err := h.svc.RenderPDF(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Quotation not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="quotation_%s.pdf"`, id))
	c.Data(200, "application/pdf", buf.Bytes())
}

// UpdateStatus moves a quote through Generated/Sent/Accepted/Rejected.
func (h *QuotationHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Quotation ID is required")
		return
	}

	var req service.UpdateQuotationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	quote, err := h.svc.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Quotation not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, quote)
}

func (h *QuotationHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Quotation ID is required")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Quotation not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, nil)
}
