package handler

import (
	appreport "github.com/autoparts/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler exposes the statistics endpoints
type ReportHandler struct {
	BaseHandler
	reports *appreport.Service
}

// NewReportHandler creates a report handler
func NewReportHandler(reports *appreport.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Overview handles GET /stats/overview
func (h *ReportHandler) Overview(c *gin.Context) {
	overview, err := h.reports.Overview(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, overview)
}

// Traffic handles GET /stats/traffic
func (h *ReportHandler) Traffic(c *gin.Context) {
	traffic, err := h.reports.Traffic(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, traffic)
}
