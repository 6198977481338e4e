package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chronicle-app/chronicle-api/internal/dto"
	appErrors "github.com/chronicle-app/chronicle-api/pkg/errors"
	"github.com/chronicle-app/chronicle-api/pkg/response"
)

type timeSlotManager interface {
	List(ctx context.Context) ([]dto.TimeSlotResponse, error)
	Create(ctx context.Context, req dto.TimeSlotRequest) (*dto.TimeSlotResponse, error)
	Update(ctx context.Context, id int64, req dto.TimeSlotRequest) (*dto.TimeSlotResponse, error)
	Delete(ctx context.Context, id int64) error
	WeekOccurrences(ctx context.Context, ref time.Time) ([]dto.OccurrenceResponse, error)
}

// TimeSlotHandler exposes recurring slot endpoints.
type TimeSlotHandler struct {
	service timeSlotManager
}

// NewTimeSlotHandler constructs the handler.
func NewTimeSlotHandler(svc timeSlotManager) *TimeSlotHandler {
	return &TimeSlotHandler{service: svc}
}

// List godoc
// @Summary List recurring time slots
// @Tags TimeSlots
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timeslots [get]
func (h *TimeSlotHandler) List(c *gin.Context) {
	slots, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// Create godoc
// @Summary Create a recurring time slot
// @Tags TimeSlots
// @Accept json
// @Produce json
// @Param payload body dto.TimeSlotRequest true "Time slot payload"
// @Success 201 {object} response.Envelope
// @Router /timeslots [post]
func (h *TimeSlotHandler) Create(c *gin.Context) {
	var req dto.TimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid time slot payload"))
		return
	}
	slot, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// Update godoc
// @Summary Replace a recurring time slot
// @Tags TimeSlots
// @Accept json
// @Produce json
// @Param id path int true "Time slot ID"
// @Param payload body dto.TimeSlotRequest true "Time slot payload"
// @Success 200 {object} response.Envelope
// @Router /timeslots/{id} [put]
func (h *TimeSlotHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id must be numeric"))
		return
	}
	var req dto.TimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid time slot payload"))
		return
	}
	slot, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// Delete godoc
// @Summary Delete a recurring time slot
// @Tags TimeSlots
// @Param id path int true "Time slot ID"
// @Success 204
// @Router /timeslots/{id} [delete]
func (h *TimeSlotHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id must be numeric"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Week godoc
// @Summary Expand slots into occurrences for one week
// @Tags TimeSlots
// @Produce json
// @Param date query string false "Reference date (RFC3339 or YYYY-MM-DD, default now)"
// @Success 200 {object} response.Envelope
// @Router /timeslots/week [get]
func (h *TimeSlotHandler) Week(c *gin.Context) {
	ref, ok := parseReferenceTime(c)
	if !ok {
		return
	}
	occurrences, err := h.service.WeekOccurrences(c.Request.Context(), ref)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, occurrences, nil)
}
