package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/config"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/service"
)

// Handlers aggregates all HTTP handlers.
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Lead      *LeadHandler
	Project   *ProjectHandler
	Inventory *InventoryHandler
	Team      *TeamHandler
	Schedule  *ScheduleHandler
	Quotation *QuotationHandler
	Document  *DocumentHandler
	Report    *ReportHandler
}

// NewHandlers creates all handlers.
func NewHandlers(svc *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(svc.Auth),
		User:      NewUserHandler(svc.User),
		Lead:      NewLeadHandler(svc.Lead),
		Project:   NewProjectHandler(svc.Project),
		Inventory: NewInventoryHandler(svc.Inventory),
		Team:      NewTeamHandler(svc.Team),
		Schedule:  NewScheduleHandler(svc.Schedule),
		Quotation: NewQuotationHandler(svc.Quotation),
		Document:  NewDocumentHandler(svc.Document),
		Report:    NewReportHandler(svc.Report),
	}
}

// Response is the common response envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created writes a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error response; the HTTP status is the leading three
// digits of the business code.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest writes a 400 response.
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

// Forbidden writes a 403 response.
func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

// NotFound writes a 404 response.
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// Conflict writes a 409 response.
func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

// InternalError writes a 500 response.
func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// GetUserID reads the authenticated user ID from the context.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// GetPagination reads page/page_size query params with sane bounds.
func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}
