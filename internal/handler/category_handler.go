package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chronicle-app/chronicle-api/internal/dto"
	appErrors "github.com/chronicle-app/chronicle-api/pkg/errors"
	"github.com/chronicle-app/chronicle-api/pkg/response"
)

type categoryManager interface {
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Save(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, title string) error
}

// CategoryHandler exposes category palette endpoints.
type CategoryHandler struct {
	service categoryManager
}

// NewCategoryHandler constructs the handler.
func NewCategoryHandler(svc categoryManager) *CategoryHandler {
	return &CategoryHandler{service: svc}
}

// List godoc
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, categories, nil)
}

// Save godoc
// @Summary Create or recolor a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param payload body dto.CategoryRequest true "Category payload"
// @Success 201 {object} response.Envelope
// @Router /categories [post]
func (h *CategoryHandler) Save(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid category payload"))
		return
	}
	category, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category)
}

// Delete godoc
// @Summary Delete a category by title
// @Tags Categories
// @Param title path string true "Category title"
// @Success 204
// @Router /categories/{title} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("title")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
