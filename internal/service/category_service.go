package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/chronicle-app/chronicle-api/internal/dto"
	"github.com/chronicle-app/chronicle-api/internal/models"
	appErrors "github.com/chronicle-app/chronicle-api/pkg/errors"
)

type categoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByTitle(ctx context.Context, title string) (*models.Category, error)
	Upsert(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, title string) (bool, error)
	ColorMap(ctx context.Context) (map[string]string, error)
}

// CategoryService manages the category palette used to color events.
type CategoryService struct {
	repo      categoryRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCategoryService constructs the service.
func NewCategoryService(repo categoryRepository, validate *validator.Validate, logger *zap.Logger) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CategoryService{repo: repo, validator: validate, logger: logger}
}

// List returns every category.
func (s *CategoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list categories")
	}
	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, dto.CategoryResponse{
			ID:    category.ID,
			Title: category.Title,
			Color: category.Color,
		})
	}
	return responses, nil
}

// Save creates the category or recolors an existing title.
func (s *CategoryService) Save(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid category payload")
	}

	category := models.Category{Title: req.Title, Color: req.Color}
	if err := s.repo.Upsert(ctx, &category); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist category")
	}

	return &dto.CategoryResponse{ID: category.ID, Title: category.Title, Color: category.Color}, nil
}

// Delete removes a category by title. Events keep their category text;
// they simply lose the color mapping.
func (s *CategoryService) Delete(ctx context.Context, title string) error {
	found, err := s.repo.Delete(ctx, title)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete category")
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "category not found")
	}
	return nil
}

// ColorMap exposes the title to color mapping for event decoration.
func (s *CategoryService) ColorMap(ctx context.Context) (map[string]string, error) {
	return s.repo.ColorMap(ctx)
}
