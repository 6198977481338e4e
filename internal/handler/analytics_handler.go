package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chronicle-app/chronicle-api/internal/dto"
	appErrors "github.com/chronicle-app/chronicle-api/pkg/errors"
	"github.com/chronicle-app/chronicle-api/pkg/response"
)

type analyticsProvider interface {
	Day(ctx context.Context, ref time.Time, includeSystem bool) (*dto.AnalyticsResponse, error)
	Week(ctx context.Context, ref time.Time, includeSystem bool) (*dto.AnalyticsResponse, error)
}

// AnalyticsHandler exposes schedule analytics endpoints.
type AnalyticsHandler struct {
	service analyticsProvider
}

// NewAnalyticsHandler constructs the handler.
func NewAnalyticsHandler(svc analyticsProvider) *AnalyticsHandler {
	return &AnalyticsHandler{service: svc}
}

// Day godoc
// @Summary Category breakdown for one day
// @Description Shares are percentages of the full 1440-minute day.
// @Tags Analytics
// @Produce json
// @Param date query string false "Reference date (RFC3339 or YYYY-MM-DD, default now)"
// @Param system query bool false "Include system metrics snapshot"
// @Success 200 {object} response.Envelope
// @Router /analytics/day [get]
func (h *AnalyticsHandler) Day(c *gin.Context) {
	ref, ok := parseReferenceTime(c)
	if !ok {
		return
	}
	result, err := h.service.Day(c.Request.Context(), ref, c.Query("system") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Week godoc
// @Summary Category breakdown for one week
// @Description Shares are percentages of the full Sunday-aligned week.
// @Tags Analytics
// @Produce json
// @Param date query string false "Reference date (RFC3339 or YYYY-MM-DD, default now)"
// @Param system query bool false "Include system metrics snapshot"
// @Success 200 {object} response.Envelope
// @Router /analytics/week [get]
func (h *AnalyticsHandler) Week(c *gin.Context) {
	ref, ok := parseReferenceTime(c)
	if !ok {
		return
	}
	result, err := h.service.Week(c.Request.Context(), ref, c.Query("system") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// parseReferenceTime reads the optional date query parameter. It
// writes the error response itself and reports success via ok.
func parseReferenceTime(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now().UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be RFC3339 or YYYY-MM-DD"))
	return time.Time{}, false
}
