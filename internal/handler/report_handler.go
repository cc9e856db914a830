package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/service"
)

// ReportHandler serves the dashboard metrics and date-ranged reports.
type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Dashboard returns the landing-page metric block.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dash, err := h.svc.GetDashboard(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, dash)
}

// Report returns the business summary for a named date range.
func (h *ReportHandler) Report(c *gin.Context) {
	report, err := h.svc.GetReport(c.Request.Context(),
		c.Query("range"), c.Query("from"), c.Query("to"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, report)
}
