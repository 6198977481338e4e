package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chronicle-app/chronicle-api/pkg/response"
)

type weekExporter interface {
	WeekCSV(ctx context.Context, ref time.Time) ([]byte, error)
	WeekPDF(ctx context.Context, ref time.Time) ([]byte, error)
	WeekICS(ctx context.Context, ref time.Time) ([]byte, error)
}

// ExportHandler exposes week export endpoints.
type ExportHandler struct {
	service weekExporter
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc weekExporter) *ExportHandler {
	return &ExportHandler{service: svc}
}

// WeekCSV godoc
// @Summary Export the week as CSV
// @Tags Export
// @Produce text/csv
// @Param date query string false "Reference date (RFC3339 or YYYY-MM-DD, default now)"
// @Success 200 {string} string "CSV payload"
// @Router /export/week.csv [get]
func (h *ExportHandler) WeekCSV(c *gin.Context) {
	ref, ok := parseReferenceTime(c)
	if !ok {
		return
	}
	payload, err := h.service.WeekCSV(c.Request.Context(), ref)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveAttachment(c, payload, "text/csv", "week.csv")
}

// WeekPDF godoc
// @Summary Export the week as PDF
// @Tags Export
// @Produce application/pdf
// @Param date query string false "Reference date (RFC3339 or YYYY-MM-DD, default now)"
// @Success 200 {string} string "PDF payload"
// @Router /export/week.pdf [get]
func (h *ExportHandler) WeekPDF(c *gin.Context) {
	ref, ok := parseReferenceTime(c)
	if !ok {
		return
	}
	payload, err := h.service.WeekPDF(c.Request.Context(), ref)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveAttachment(c, payload, "application/pdf", "week.pdf")
}

// WeekICS godoc
// @Summary Export the week as an iCalendar feed
// @Tags Export
// @Produce text/calendar
// @Param date query string false "Reference date (RFC3339 or YYYY-MM-DD, default now)"
// @Success 200 {string} string "ICS payload"
// @Router /export/week.ics [get]
func (h *ExportHandler) WeekICS(c *gin.Context) {
	ref, ok := parseReferenceTime(c)
	if !ok {
		return
	}
	payload, err := h.service.WeekICS(c.Request.Context(), ref)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveAttachment(c, payload, "text/calendar", "week.ics")
}

func serveAttachment(c *gin.Context, payload []byte, contentType, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
